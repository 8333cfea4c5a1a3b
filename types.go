package novela

import (
	"github.com/a-h/templ"

	"github.com/jordyvandomselaar/novela/views"
)

// ViewFuncs holds the components the engine calls when rendering pages.
// Any nil field falls back to the matching component in package views, so a
// site can replace single pages and keep the rest of the theme.
type ViewFuncs struct {
	Home         func(g views.Globals, page views.HomePage) templ.Component
	Post         func(g views.Globals, page views.PostPage) templ.Component
	Author       func(g views.Globals, page views.AuthorPage) templ.Component
	PreviewLogin func(g views.Globals, showError bool, csrfToken string) templ.Component
	NotFound     func(g views.Globals) templ.Component
	ServerError  func(g views.Globals) templ.Component
}

// DefaultViews returns the Novela theme components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:         views.Home,
		Post:         views.Post,
		Author:       views.Author,
		PreviewLogin: views.PreviewLogin,
		NotFound:     views.NotFound,
		ServerError:  views.ServerError,
	}
}

func (v ViewFuncs) withDefaults() ViewFuncs {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.Author == nil {
		v.Author = d.Author
	}
	if v.PreviewLogin == nil {
		v.PreviewLogin = d.PreviewLogin
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
	return v
}

// BuildReport summarises a static export.
type BuildReport struct {
	Pages int // HTML pages rendered
	Files int // every file written, pages included
}
