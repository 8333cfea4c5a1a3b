// Package markdown renders post bodies to HTML as templ components.
//
// Besides GitHub-flavoured markdown, bodies may contain tip callouts:
//
//	:::tip Remember
//	Drink **water**.
//	:::
//
// An opener of the form ":::tip:medium Title" selects the medium variant.
// The title is optional and defaults to "Tip". The MDX form
//
//	<Tip title="Remember" size="medium">
//	Drink **water**.
//	</Tip>
//
// is accepted as well.
package markdown

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/jordyvandomselaar/novela/components"
)

var (
	reTipOpen = regexp.MustCompile(`^:::tip(?::([A-Za-z]+))?(?:\s+(.*))?$`)
	reTipTag  = regexp.MustCompile(`^<Tip((?:\s+\w+="[^"]*")*)\s*>$`)
	reTipAttr = regexp.MustCompile(`(\w+)="([^"]*)"`)

	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(ctx, w, content)
	})
}

// RenderString renders content and returns the HTML.
func RenderString(content string) (string, error) {
	var buf bytes.Buffer
	if err := Render(context.Background(), &buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes the HTML for content to w. Callout bodies are rendered as
// independent documents, so reference-style links do not cross a callout
// boundary.
func Render(ctx context.Context, w io.Writer, content string) error {
	for _, seg := range splitCallouts(content) {
		if !seg.callout {
			if err := md.Convert([]byte(seg.body), w); err != nil {
				return err
			}
			continue
		}
		var inner bytes.Buffer
		if err := md.Convert([]byte(seg.body), &inner); err != nil {
			return err
		}
		tip := components.Tip(seg.props, templ.Raw(inner.String()))
		if err := tip.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

type segment struct {
	callout bool
	props   components.TipProps
	body    string
}

// splitCallouts cuts content into plain markdown and callout bodies. Fenced
// code is never scanned for callout markers. A nested opener and its closer
// stay in the outer body as literal text; an unclosed callout runs to the end.
func splitCallouts(content string) []segment {
	var (
		segs    []segment
		plain   []string
		body    []string
		current *segment
		fence   codeFence
		depth   int
	)

	flushPlain := func() {
		if len(plain) > 0 {
			segs = append(segs, segment{body: strings.Join(plain, "\n")})
			plain = nil
		}
	}
	closeCallout := func() {
		current.body = strings.Join(body, "\n")
		segs = append(segs, *current)
		current = nil
		body = nil
		depth = 0
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if open, ok := fenceMarker(trimmed); ok || fence.n > 0 {
			switch {
			case fence.n == 0:
				fence = open
			case fence.closedBy(trimmed):
				fence = codeFence{}
			}
		} else {
			props, isOpen := tipOpener(trimmed)
			if isOpen {
				if current == nil {
					flushPlain()
					current = &segment{callout: true, props: props}
					continue
				}
				depth++
			} else if isTipCloser(trimmed) && current != nil {
				if depth == 0 {
					closeCallout()
					continue
				}
				depth--
			}
		}

		if current != nil {
			body = append(body, line)
		} else {
			plain = append(plain, line)
		}
	}

	if current != nil {
		closeCallout()
	}
	flushPlain()
	return segs
}

// codeFence is an open fenced code block: its fence character and the
// length of the opening run. The zero value means no block is open.
type codeFence struct {
	char byte
	n    int
}

// fenceMarker reports whether line opens a fenced code block.
func fenceMarker(line string) (codeFence, bool) {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return codeFence{}, false
	}
	n := runLength(line, line[0])
	if n < 3 {
		return codeFence{}, false
	}
	if line[0] == '`' && strings.Contains(line[n:], "`") {
		return codeFence{}, false
	}
	return codeFence{char: line[0], n: n}, true
}

// closedBy reports whether line closes f: a run of the same character at
// least as long as the opener, with nothing after it.
func (f codeFence) closedBy(line string) bool {
	n := runLength(line, f.char)
	return n >= f.n && strings.TrimSpace(line[n:]) == ""
}

func runLength(line string, c byte) int {
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return n
}

// tipOpener recognises both ":::tip[:size] Title" and the MDX form
// <Tip title="Title" size="medium">.
func tipOpener(line string) (components.TipProps, bool) {
	if m := reTipOpen.FindStringSubmatch(line); m != nil {
		return components.TipProps{
			Size:  components.ParseSize(m[1]),
			Title: strings.TrimSpace(m[2]),
		}, true
	}
	m := reTipTag.FindStringSubmatch(line)
	if m == nil {
		return components.TipProps{}, false
	}
	var props components.TipProps
	for _, a := range reTipAttr.FindAllStringSubmatch(m[1], -1) {
		switch a[1] {
		case "title":
			props.Title = a[2]
		case "size":
			props.Size = components.ParseSize(a[2])
		}
	}
	return props, true
}

func isTipCloser(line string) bool {
	return line == ":::" || line == "</Tip>"
}

// PlainText strips callout markers and markdown punctuation closely enough to
// count words.
func PlainText(content string) string {
	var b strings.Builder
	for _, seg := range splitCallouts(content) {
		if seg.callout {
			b.WriteString(seg.props.Title)
			b.WriteByte('\n')
		}
		b.WriteString(seg.body)
		b.WriteByte('\n')
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '_', '`', '>', '[', ']', '(', ')', '|', '~':
			return ' '
		}
		return r
	}, b.String())
}
