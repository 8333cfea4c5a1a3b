package views

import (
	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

// Globals carries what every page needs from the site and the request.
// Handlers build one per request; the static build builds one per route.
type Globals struct {
	Config  *config.Config
	Path    string // request path, used for canonical URLs and analytics excludes
	DNT     bool   // the request carried "DNT: 1"
	Preview bool   // a preview session is active, secret posts are listed
}

// Theme is shorthand for g.Config.Theme().
func (g Globals) Theme() *config.ThemeOptions {
	return g.Config.Theme()
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// HomePage is one page of the post listing.
type HomePage struct {
	Posts   []content.Post
	Authors []content.Author // shown in the hero when the authors page is enabled
	Page    int              // 1-based
	Pages   int
}

// HasPrev reports whether a newer page exists.
func (h HomePage) HasPrev() bool { return h.Page > 1 }

// HasNext reports whether an older page exists.
func (h HomePage) HasNext() bool { return h.Page < h.Pages }

// PostPage is a single article with its resolved authors and a few posts to
// read next.
type PostPage struct {
	Post    content.Post
	Authors []content.Author
	Next    []content.Post
}

// AuthorPage lists an author's public posts.
type AuthorPage struct {
	Author content.Author
	Posts  []content.Post
}
