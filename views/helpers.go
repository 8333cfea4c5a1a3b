package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") && path.Ext(u.Path) == "" {
		u.Path += "/"
	}
	return u.String()
}

// routePath joins parts into an absolute path with a trailing slash.
func routePath(parts ...string) string {
	p := path.Join(append([]string{"/"}, parts...)...)
	if p != "/" {
		p += "/"
	}
	return p
}

// HomePath is the first listing page.
func HomePath(t *config.ThemeOptions) string {
	return routePath(t.BasePath)
}

// PagePath is the listing page n. Page 1 is the home page.
func PagePath(t *config.ThemeOptions, n int) string {
	if n <= 1 {
		return HomePath(t)
	}
	return routePath(t.BasePath, "page", strconv.Itoa(n))
}

// PostPath is the route of a post.
func PostPath(t *config.ThemeOptions, slug string) string {
	return routePath(t.BasePath, slug)
}

// AuthorPath is the route of an author page.
func AuthorPath(t *config.ThemeOptions, slug string) string {
	return routePath(t.AuthorsPath, slug)
}

// HeroURL moves a co-located hero image under the base path, where the post
// and its assets are served.
func HeroURL(t *config.ThemeOptions, p content.Post) string {
	if p.Hero == "" || p.AssetDir == "" || !strings.HasPrefix(p.Hero, "/"+p.Slug+"/") {
		return p.Hero
	}
	return path.Join(t.BasePath, p.Hero)
}

// FormatDate renders dates the way Novela does: "March 1st, 2020".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January ") + strconv.Itoa(t.Day()) + ordinal(t.Day()) + t.Format(", 2006")
}

func ordinal(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// scriptSafe keeps a JSON document from closing its <script> element early.
func scriptSafe(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using site metadata.
func WebsiteJsonLD(site config.SiteMetadata) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Title,
		"url":      BuildURL(site.SiteURL, "/"),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg *config.Config, post content.Post, authors []content.Author) string {
	postURL := BuildURL(cfg.Site.SiteURL, PostPath(cfg.Theme(), post.Slug))
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": post.Excerpt,
		"url":         postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Site.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if !post.Date.IsZero() {
		data["datePublished"] = post.Date.Format(time.RFC3339)
	}
	if hero := HeroURL(cfg.Theme(), post); hero != "" {
		data["image"] = BuildURL(cfg.Site.SiteURL, hero)
	}
	if len(authors) > 0 {
		people := make([]map[string]string, 0, len(authors))
		for _, a := range authors {
			people = append(people, map[string]string{"@type": "Person", "name": a.Name})
		}
		data["author"] = people
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
