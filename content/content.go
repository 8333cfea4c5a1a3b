// Package content reads posts and authors from the theme's content
// directories.
package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jordyvandomselaar/novela/config"
)

// Post is one markdown article.
type Post struct {
	Slug         string
	Title        string
	Authors      []string // author names, as written in frontmatter
	Date         time.Time
	Hero         string // URL path of the hero image, empty when none
	Excerpt      string
	Secret       bool
	CanonicalURL string
	Body         string // markdown source, frontmatter stripped
	HTML         string
	TimeToRead   int // minutes
	SourcePath   string
	AssetDir     string // directory holding co-located images, empty for flat files
}

// Author is one person who writes posts.
type Author struct {
	Slug     string
	Name     string
	Bio      string
	Avatar   string
	Featured bool
	Social   []config.SocialLink
}

// Set is the loaded, cross-checked content of a site.
type Set struct {
	Posts   []Post
	Authors []Author
}

// ErrDuplicateSlug is wrapped when two posts or two authors share a slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Load reads posts and authors and checks that every post author exists.
// A missing authors directory is only an error if a post names an author.
func Load(postsDir, authorsDir string) (*Set, error) {
	posts, err := LoadPosts(postsDir)
	if err != nil {
		return nil, err
	}
	authors, err := LoadAuthors(authorsDir)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(authors))
	for _, a := range authors {
		known[strings.ToLower(a.Name)] = true
	}
	var errs []error
	for _, p := range posts {
		for _, name := range p.Authors {
			if !known[strings.ToLower(name)] {
				errs = append(errs, fmt.Errorf("content: %s: unknown author %q", p.SourcePath, name))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Set{Posts: posts, Authors: authors}, nil
}

// SortPosts orders posts newest first. Undated posts go last, by title.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Date, posts[j].Date
		switch {
		case a.IsZero() && b.IsZero():
			return posts[i].Title < posts[j].Title
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		}
		return a.After(b)
	})
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
