package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

// Home renders one page of the article listing with the hero on top.
func Home(g Globals, page HomePage) templ.Component {
	site := g.Config.Site
	theme := g.Theme()
	meta := PageMeta{}
	if page.Page > 1 {
		meta.Title = "Page " + strconv.Itoa(page.Page)
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<section class="hero"><h1 class="hero-heading"`)
		p.attr("style", "max-width:"+strconv.Itoa(site.Hero.MaxWidth)+"px")
		p.raw(">")
		p.text(site.Hero.Heading)
		p.raw("</h1>")
		if theme.AuthorsPage && len(page.Authors) > 0 {
			p.raw(`<ul class="hero-authors">`)
			for _, a := range page.Authors {
				p.raw("<li><a")
				p.attr("href", AuthorPath(theme, a.Slug))
				p.raw(">")
				avatar(p, a)
				p.text(a.Name)
				p.raw("</a></li>")
			}
			p.raw("</ul>")
		}
		p.raw("</section>")

		if len(page.Posts) == 0 {
			p.raw(`<p class="empty">No articles yet.</p>`)
		} else {
			articleList(p, theme, page.Posts)
		}

		if page.Pages > 1 {
			p.raw(`<nav class="paginator">`)
			if page.HasPrev() {
				p.raw(`<a rel="prev"`)
				p.attr("href", PagePath(theme, page.Page-1))
				p.raw(">Prev</a>")
			}
			p.printf(`<span>%d of %d</span>`, page.Page, page.Pages)
			if page.HasNext() {
				p.raw(`<a rel="next"`)
				p.attr("href", PagePath(theme, page.Page+1))
				p.raw(">Next</a>")
			}
			p.raw("</nav>")
		}
		return p.err
	})
	return Layout(g, meta, body)
}

// Post renders a single article.
func Post(g Globals, page PostPage) templ.Component {
	theme := g.Theme()
	post := page.Post
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		OGType:      "article",
		URL:         post.CanonicalURL,
		JSONLD:      BlogPostingJsonLD(g.Config, post, page.Authors),
	}
	if hero := HeroURL(theme, post); hero != "" {
		meta.Image = BuildURL(g.Config.Site.SiteURL, hero)
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<article class="post"><header class="post-hero"><h1>`)
		p.text(post.Title)
		p.raw(`</h1><div class="post-meta">`)
		for i, a := range page.Authors {
			if i > 0 {
				p.raw(", ")
			}
			if theme.AuthorsPage {
				p.raw("<a")
				p.attr("href", AuthorPath(theme, a.Slug))
				p.raw(">")
				avatar(p, a)
				p.text(a.Name)
				p.raw("</a>")
			} else {
				avatar(p, a)
				p.text(a.Name)
			}
		}
		p.raw(`<span class="post-date">`)
		postMeta(p, post)
		p.raw("</span></div>")
		if hero := HeroURL(theme, post); hero != "" {
			p.raw(`<img class="post-hero-image"`)
			p.attr("src", hero)
			p.attr("alt", post.Title)
			p.raw("/>")
		}
		p.raw(`</header><div class="post-body">`)
		p.render(templ.Raw(post.HTML))
		p.raw("</div></article>")

		if len(page.Next) > 0 {
			p.raw(`<section class="next"><h2>More articles from `)
			p.text(g.Config.Site.Name)
			p.raw("</h2>")
			articleList(p, theme, page.Next)
			p.raw("</section>")
		}
		return p.err
	})
	return Layout(g, meta, body)
}

// Author renders an author's bio followed by their articles.
func Author(g Globals, page AuthorPage) templ.Component {
	theme := g.Theme()
	a := page.Author
	meta := PageMeta{Title: a.Name, Description: a.Bio, OGType: "profile"}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<section class="author-hero">`)
		avatar(p, a)
		p.raw("<h1>")
		p.text(a.Name)
		p.raw("</h1><p>")
		p.text(a.Bio)
		p.raw("</p>")
		socialLinks(p, a.Social)
		p.raw("</section>")
		articleList(p, theme, page.Posts)
		return p.err
	})
	return Layout(g, meta, body)
}

// NotFound renders the 404 page.
func NotFound(g Globals) templ.Component {
	return message(g, "Page not found", "The page you were looking for does not exist.")
}

// ServerError renders the 5xx page.
func ServerError(g Globals) templ.Component {
	return message(g, "Something went wrong", "Please try again in a moment.")
}

func message(g Globals, title, text string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<section class="message"><h1>`)
		p.text(title)
		p.raw("</h1><p>")
		p.text(text)
		p.raw(`</p><a`)
		p.attr("href", HomePath(g.Theme()))
		p.raw(">Back to articles</a></section>")
		return p.err
	})
	return Layout(g, PageMeta{Title: title}, body)
}

// PreviewLoginPath is where the preview login form posts.
const PreviewLoginPath = "/preview/login/"

// PreviewLogin renders the password form that unlocks secret posts.
func PreviewLogin(g Globals, showError bool, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<section class="message"><h1>Preview</h1>`)
		if showError {
			p.raw(`<p class="error">Wrong password.</p>`)
		}
		p.raw(`<form method="post"`)
		p.attr("action", PreviewLoginPath)
		p.raw(`><input type="hidden" name="_csrf"`)
		p.attr("value", csrfToken)
		p.raw(`/><label>Password <input type="password" name="password" autocomplete="current-password" required/></label>`)
		p.raw(`<button type="submit">Log in</button></form></section>`)
		return p.err
	})
	return Layout(g, PageMeta{Title: "Preview"}, body)
}

func articleList(p *printer, theme *config.ThemeOptions, posts []content.Post) {
	p.raw(`<div class="articles">`)
	for _, post := range posts {
		href := PostPath(theme, post.Slug)
		p.raw(`<a class="article"`)
		p.attr("href", href)
		p.raw(">")
		if hero := HeroURL(theme, post); hero != "" {
			p.raw("<img")
			p.attr("src", hero)
			p.raw(` alt="" loading="lazy"/>`)
		}
		p.raw("<h2>")
		p.text(post.Title)
		p.raw("</h2><p>")
		p.text(post.Excerpt)
		p.raw(`</p><div class="article-meta">`)
		postMeta(p, post)
		p.raw("</div></a>")
	}
	p.raw("</div>")
}

// postMeta writes "March 1st, 2020 · 3 min read".
func postMeta(p *printer, post content.Post) {
	if d := FormatDate(post.Date); d != "" {
		p.text(d)
		p.raw(" &middot; ")
	}
	p.printf("%d min read", post.TimeToRead)
}

func avatar(p *printer, a content.Author) {
	if a.Avatar == "" {
		return
	}
	p.raw(`<img class="avatar"`)
	p.attr("src", a.Avatar)
	p.raw(` alt=""/>`)
}

func socialLinks(p *printer, links []config.SocialLink) {
	if len(links) == 0 {
		return
	}
	p.raw(`<ul class="social">`)
	for _, l := range links {
		p.raw(`<li><a rel="noopener" target="_blank"`)
		p.attr("href", l.URL)
		p.raw(">")
		p.text(l.Name)
		p.raw("</a></li>")
	}
	p.raw("</ul>")
}
