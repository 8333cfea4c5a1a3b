package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Site: config.SiteMetadata{
			Title:   "Novela",
			Name:    "Narative",
			SiteURL: "https://novela.example.com",
			Hero:    config.Hero{Heading: "Perspectives on technology", MaxWidth: 652},
			Social:  []config.SocialLink{{Name: "github", URL: "https://github.com/narative"}},
		},
		Plugins: []config.Plugin{
			&config.ThemeOptions{AuthorsPage: true},
			&config.ManifestOptions{Name: "Novela", Icon: "icon.png", ThemeColor: "#fff", Display: "standalone"},
			&config.AnalyticsOptions{
				TrackingIDs:  []string{"G-TEST"},
				PluginConfig: config.AnalyticsBehaviour{Exclude: []string{"/preview/**"}},
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var samplePost = content.Post{
	Slug:       "why-you-should-hydrate",
	Title:      "Why you should hydrate",
	Authors:    []string{"Jordy"},
	Date:       time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
	Hero:       "/why-you-should-hydrate/images/hero.jpg",
	Excerpt:    "Water matters.",
	HTML:       `<div class="Image__Small"><div class="novela-tip novela-tip--small"><strong>Note</strong><p>Remember to hydrate</p></div></div>`,
	TimeToRead: 2,
	AssetDir:   "/content/posts/hydrate",
}

var sampleAuthor = content.Author{Slug: "jordy", Name: "Jordy", Bio: "Writes <things>.", Avatar: "/jordy.jpg"}

func TestPaths(t *testing.T) {
	theme := config.DefaultTheme()
	require.Equal(t, "/", HomePath(theme))
	require.Equal(t, "/", PagePath(theme, 1))
	require.Equal(t, "/page/3/", PagePath(theme, 3))
	require.Equal(t, "/hello/", PostPath(theme, "hello"))
	require.Equal(t, "/authors/ann/", AuthorPath(theme, "ann"))

	theme.BasePath = "/blog"
	require.Equal(t, "/blog/", HomePath(theme))
	require.Equal(t, "/blog/page/2/", PagePath(theme, 2))
	require.Equal(t, "/blog/hello/", PostPath(theme, "hello"))
	require.Equal(t, "/blog/why-you-should-hydrate/images/hero.jpg", HeroURL(theme, samplePost))
}

func TestBuildURL(t *testing.T) {
	require.Equal(t, "https://x.dev/", BuildURL("https://x.dev"))
	require.Equal(t, "https://x.dev/a/b/", BuildURL("https://x.dev", "a", "b"))
	require.Equal(t, "https://x.dev/rss.xml", BuildURL("https://x.dev", "/rss.xml"))
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "March 1st, 2020", FormatDate(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "June 22nd, 2021", FormatDate(time.Date(2021, 6, 22, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "May 13th, 2019", FormatDate(time.Date(2019, 5, 13, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "", FormatDate(time.Time{}))
}

func TestHomeRendersHeroAndArticles(t *testing.T) {
	g := Globals{Config: testConfig(), Path: "/"}
	got := render(t, Home(g, HomePage{
		Posts:   []content.Post{samplePost},
		Authors: []content.Author{sampleAuthor},
		Page:    1,
		Pages:   2,
	}))

	require.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	require.Contains(t, got, `<h1 class="hero-heading" style="max-width:652px">Perspectives on technology</h1>`)
	require.Contains(t, got, `href="/authors/jordy/"`)
	require.Contains(t, got, `href="/why-you-should-hydrate/"`)
	require.Contains(t, got, "March 1st, 2020 &middot; 2 min read")
	require.Contains(t, got, `<a rel="next" href="/page/2/">`)
	require.NotContains(t, got, `rel="prev"`)
	require.Contains(t, got, `<img class="logo" src="/logo.jpg" alt="" style="height:100px"/>`)
	require.Contains(t, got, `<link rel="manifest" href="/manifest.webmanifest"/>`)
	require.Contains(t, got, "googletagmanager.com/gtag/js?id=G-TEST")
	require.Contains(t, got, ".novela-tip--small")
}

func TestPostRendersTipAndJSONLD(t *testing.T) {
	g := Globals{Config: testConfig(), Path: "/why-you-should-hydrate/"}
	got := render(t, Post(g, PostPage{Post: samplePost, Authors: []content.Author{sampleAuthor}}))

	require.Contains(t, got, "<strong>Note</strong><p>Remember to hydrate</p>")
	require.Contains(t, got, `"@type":"BlogPosting"`)
	require.Contains(t, got, `<meta property="og:type" content="article"/>`)
	require.Contains(t, got, `<meta property="og:image" content="https://novela.example.com/why-you-should-hydrate/images/hero.jpg"/>`)
	require.Contains(t, got, `<link rel="canonical" href="https://novela.example.com/why-you-should-hydrate/"/>`)
	require.Contains(t, got, "<title>Why you should hydrate - Novela</title>")
}

func TestPostUsesCanonicalURL(t *testing.T) {
	post := samplePost
	post.CanonicalURL = "https://elsewhere.example.com/hydrate"
	got := render(t, Post(Globals{Config: testConfig(), Path: "/x/"}, PostPage{Post: post}))
	require.Contains(t, got, `<link rel="canonical" href="https://elsewhere.example.com/hydrate"/>`)
}

func TestAuthorEscapesBio(t *testing.T) {
	got := render(t, Author(Globals{Config: testConfig(), Path: "/authors/jordy/"}, AuthorPage{
		Author: sampleAuthor,
		Posts:  []content.Post{samplePost},
	}))
	require.Contains(t, got, "Writes &lt;things&gt;.")
	require.Contains(t, got, `href="/why-you-should-hydrate/"`)
}

func TestAnalyticsSkippedOnExcludedPath(t *testing.T) {
	got := render(t, PreviewLogin(Globals{Config: testConfig(), Path: "/preview/login/"}, true, "tok"))
	require.NotContains(t, got, "googletagmanager")
	require.Contains(t, got, "Wrong password.")
	require.Contains(t, got, `<input type="hidden" name="_csrf" value="tok"/>`)
}

func TestJSONLDCannotCloseScript(t *testing.T) {
	cfg := testConfig()
	cfg.Site.Description = "</script><script>alert(1)"
	got := render(t, NotFound(Globals{Config: cfg, Path: "/missing/"}))
	require.NotContains(t, got, "</script><script>alert(1)")
	require.Contains(t, got, "Page not found")
}
