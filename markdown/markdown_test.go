package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jordyvandomselaar/novela/components"
)

func mustRender(t *testing.T, content string) string {
	t.Helper()
	got, err := RenderString(content)
	require.NoError(t, err)
	return got
}

func TestRenderHeadingsGetIDs(t *testing.T) {
	got := mustRender(t, "## Getting started")
	require.Contains(t, got, `<h2 id="getting-started">Getting started</h2>`)
}

func TestRenderInlineFormatting(t *testing.T) {
	got := mustRender(t, "text **bold** and *italic*")
	require.Contains(t, got, "<strong>bold</strong>")
	require.Contains(t, got, "<em>italic</em>")
}

func TestRenderGFMTable(t *testing.T) {
	got := mustRender(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	require.Contains(t, got, "<table>")
	require.Contains(t, got, "<td>1</td>")
}

func TestRenderOmitsRawHTML(t *testing.T) {
	got := mustRender(t, "<script>alert(1)</script>")
	require.NotContains(t, got, "<script>")
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got := mustRender(t, "```go\nfmt.Println(\"hello\")\n```")
	require.Contains(t, got, `class="language-go"`)
}

func TestRenderTipCallout(t *testing.T) {
	got := mustRender(t, "Before\n\n:::tip Note\nRemember to hydrate\n:::\n\nAfter")

	require.Contains(t, got,
		`<div class="Image__Small"><div class="novela-tip novela-tip--small"><strong>Note</strong><p>Remember to hydrate</p>`)
	before := strings.Index(got, "Before")
	tip := strings.Index(got, "Image__Small")
	after := strings.Index(got, "After")
	require.True(t, before < tip && tip < after, got)
}

func TestRenderTipDefaultTitleAndMediumSize(t *testing.T) {
	got := mustRender(t, ":::tip:medium\nbody\n:::")
	require.Contains(t, got, `<div class="Image__Medium">`)
	require.Contains(t, got, "<strong>Tip</strong>")
}

func TestRenderUnclosedTipRunsToEnd(t *testing.T) {
	got := mustRender(t, ":::tip\nlast words")
	require.Contains(t, got, "<strong>Tip</strong><p>last words</p>")
	require.True(t, strings.HasSuffix(strings.TrimSpace(got), "</div></div>"), got)
}

func TestRenderIgnoresCalloutInsideCodeFence(t *testing.T) {
	got := mustRender(t, "```\n:::tip\n:::\n```")
	require.NotContains(t, got, "Image__Small")
	require.Contains(t, got, ":::tip")
}

func TestRenderLongerFenceHidesShorterFenceAndCallout(t *testing.T) {
	got := mustRender(t, "````\n```\n:::tip X\n````\n")
	require.NotContains(t, got, "Image__Small")
	require.Contains(t, got, ":::tip X")
}

func TestSplitCalloutsFenceClosesOnMatchingRunOnly(t *testing.T) {
	segs := splitCallouts("~~~~\n```\n~~~ info\n:::tip A\n~~~~~\n:::tip B\nx\n:::")

	require.Len(t, segs, 2)
	require.False(t, segs[0].callout)
	require.Contains(t, segs[0].body, ":::tip A")
	require.True(t, segs[1].callout)
	require.Equal(t, "B", segs[1].props.Title)
}

func TestRenderMDXTipBlock(t *testing.T) {
	got := mustRender(t, "<Tip title=\"Note\">\n\nRemember to hydrate\n\n</Tip>")
	require.Contains(t, got,
		`<div class="Image__Small"><div class="novela-tip novela-tip--small"><strong>Note</strong><p>Remember to hydrate</p>`)
	require.NotContains(t, got, "</Tip>")
}

func TestSplitCalloutsMDXTipAttributes(t *testing.T) {
	segs := splitCallouts("<Tip size=\"medium\" title=\"Big one\">\nx\n</Tip>\nafter")

	require.Len(t, segs, 2)
	require.True(t, segs[0].callout)
	require.Equal(t, components.Medium, segs[0].props.Size)
	require.Equal(t, "Big one", segs[0].props.Title)
	require.Equal(t, "x", segs[0].body)
	require.Equal(t, "after", segs[1].body)
}

func TestSplitCalloutsKeepsNestedOpenerLiteral(t *testing.T) {
	segs := splitCallouts(":::tip Outer\n:::tip Inner\nx\n:::\ny\n:::\nz")

	require.Len(t, segs, 2)
	require.True(t, segs[0].callout)
	require.Equal(t, "Outer", segs[0].props.Title)
	require.Equal(t, ":::tip Inner\nx\n:::\ny", segs[0].body)
	require.False(t, segs[1].callout)
	require.Equal(t, "z", segs[1].body)
}

func TestSplitCalloutsParsesSize(t *testing.T) {
	segs := splitCallouts(":::tip:MEDIUM Big one\nx\n:::")
	require.Len(t, segs, 1)
	require.Equal(t, components.Medium, segs[0].props.Size)
	require.Equal(t, "Big one", segs[0].props.Title)
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("hello").Render(context.Background(), &buf))
	require.Equal(t, "<p>hello</p>\n", buf.String())
}

func TestPlainTextStripsPunctuation(t *testing.T) {
	got := PlainText("# Title\n\n:::tip Hint\n**bold**\n:::")
	require.Equal(t, []string{"Title", "Hint", "bold"}, strings.Fields(got))
}
