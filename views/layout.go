package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/jordyvandomselaar/novela/analytics"
	"github.com/jordyvandomselaar/novela/components"
	"github.com/jordyvandomselaar/novela/manifest"
)

// StylesheetPath is where the embedded theme stylesheet is served.
const StylesheetPath = "/public/novela.css"

// Layout wraps body in the document shell shared by every page.
func Layout(g Globals, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		site := g.Config.Site
		theme := g.Theme()
		gtag, _ := g.Config.Analytics()

		title := meta.Title
		if title == "" {
			title = site.Title
		} else if title != site.Title {
			title += " - " + site.Title
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		canonical := meta.URL
		if canonical == "" {
			canonical = BuildURL(site.SiteURL, g.Path)
		}

		p := newPrinter(ctx, w)
		p.raw("<!DOCTYPE html>")
		p.raw(`<html lang="en"><head><meta charset="utf-8"/>`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		p.raw("<title>")
		p.text(title)
		p.raw("</title>")
		p.raw(`<meta name="description"`)
		p.attr("content", desc)
		p.raw("/>")
		p.raw(`<link rel="canonical"`)
		p.attr("href", canonical)
		p.raw("/>")
		p.raw(`<meta property="og:title"`)
		p.attr("content", title)
		p.raw(`/><meta property="og:description"`)
		p.attr("content", desc)
		p.raw(`/><meta property="og:url"`)
		p.attr("content", canonical)
		p.raw(`/><meta property="og:type"`)
		p.attr("content", ogType)
		p.raw("/>")
		if meta.Image != "" {
			p.raw(`<meta property="og:image"`)
			p.attr("content", meta.Image)
			p.raw("/>")
		}
		p.raw(`<meta name="twitter:card" content="summary_large_image"/>`)
		p.raw(`<link rel="alternate" type="application/rss+xml"`)
		p.attr("title", site.Title)
		p.attr("href", "/rss.xml")
		p.raw("/>")
		if m, ok := g.Config.Manifest(); ok {
			p.raw(`<link rel="manifest"`)
			p.attr("href", manifest.Path)
			p.raw("/>")
			if m.ThemeColor != "" {
				p.raw(`<meta name="theme-color"`)
				p.attr("content", m.ThemeColor)
				p.raw("/>")
			}
			p.raw(`<link rel="icon"`)
			p.attr("href", manifest.IconPath(48))
			p.raw("/>")
		}
		p.raw(`<link rel="stylesheet"`)
		p.attr("href", StylesheetPath)
		p.raw("/>")
		p.render(components.TipStyles())
		jsonLD := meta.JSONLD
		if jsonLD == "" {
			jsonLD = WebsiteJsonLD(site)
		}
		p.raw(`<script type="application/ld+json">`)
		p.raw(scriptSafe(jsonLD))
		p.raw("</script>")
		headTag := gtag != nil && gtag.PluginConfig.Head
		if headTag {
			p.render(analytics.Snippet(gtag, g.Path, g.DNT))
		}
		p.raw("</head><body>")

		p.raw(`<header class="nav"><a class="nav-logo"`)
		p.attr("href", HomePath(theme))
		p.attr("aria-label", site.Title)
		p.raw(">")
		p.render(components.Logo(theme.Logo))
		p.raw("</a>")
		socialLinks(p, site.Social)
		p.raw("</header>")
		if g.Preview {
			p.raw(`<div class="preview-banner">Preview mode: secret posts are listed.</div>`)
		}

		p.raw("<main>")
		p.render(body)
		p.raw("</main>")

		p.raw(`<footer class="footer"><span>&copy; `)
		p.text(site.Name)
		p.raw("</span>")
		socialLinks(p, site.Social)
		p.raw("</footer>")
		if gtag != nil && !headTag {
			p.render(analytics.Snippet(gtag, g.Path, g.DNT))
		}
		p.raw("</body></html>")
		return p.err
	})
}
