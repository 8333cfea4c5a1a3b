package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jordyvandomselaar/novela/markdown"
)

const (
	wordsPerMinute = 265
	excerptLength  = 140
)

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

type postMatter struct {
	Title        string `yaml:"title"`
	Slug         string `yaml:"slug"`
	Author       any    `yaml:"author"`
	Date         string `yaml:"date"`
	Hero         string `yaml:"hero"`
	Excerpt      string `yaml:"excerpt"`
	Secret       bool   `yaml:"secret"`
	CanonicalURL string `yaml:"canonical_url"`
}

// LoadPosts walks dir for .md and .mdx files. A file named index.md(x) takes
// its fallback title from its directory, and the directory's other files are
// served next to the post. A missing dir yields no posts.
func LoadPosts(dir string) ([]Post, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var posts []Post
	seen := map[string]string{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}
		post, err := readPost(p)
		if err != nil {
			return err
		}
		if prev, dup := seen[post.Slug]; dup {
			return fmt.Errorf("content: %s and %s: %w %q", prev, p, ErrDuplicateSlug, post.Slug)
		}
		seen[post.Slug] = p
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return posts, nil
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

func readPost(p string) (Post, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return Post{}, fmt.Errorf("content: read %s: %w", p, err)
	}

	var fm postMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return Post{}, fmt.Errorf("content: frontmatter %s: %w", p, err)
	}

	base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	assetDir := ""
	if strings.EqualFold(base, "index") {
		assetDir = filepath.Dir(p)
		base = filepath.Base(assetDir)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = titleFromName(base)
	}

	slug := Slugify(fm.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		slug = Slugify(base)
	}
	if slug == "" {
		return Post{}, fmt.Errorf("content: %s: cannot derive a slug", p)
	}

	var date time.Time
	if s := strings.TrimSpace(fm.Date); s != "" {
		date, err = parseDate(s)
		if err != nil {
			return Post{}, fmt.Errorf("content: %s: %w", p, err)
		}
	}

	src := string(body)
	html, err := markdown.RenderString(src)
	if err != nil {
		return Post{}, fmt.Errorf("content: render %s: %w", p, err)
	}
	plain := markdown.PlainText(src)

	excerpt := strings.TrimSpace(fm.Excerpt)
	if excerpt == "" {
		excerpt = truncateWords(plain, excerptLength)
	}

	return Post{
		Slug:         slug,
		Title:        title,
		Authors:      authorNames(fm.Author),
		Date:         date,
		Hero:         heroURL(slug, assetDir, fm.Hero),
		Excerpt:      excerpt,
		Secret:       fm.Secret,
		CanonicalURL: strings.TrimSpace(fm.CanonicalURL),
		Body:         src,
		HTML:         html,
		TimeToRead:   timeToRead(plain),
		SourcePath:   p,
		AssetDir:     assetDir,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, use YYYY-MM-DD", s)
}

func titleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// authorNames accepts "A", "A, B" or a YAML list.
func authorNames(v any) []string {
	var names []string
	switch t := v.(type) {
	case string:
		names = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
	}
	var out []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// heroURL rewrites a path relative to the post directory into a URL under the
// post's own route. Absolute paths and URLs are kept.
func heroURL(slug, assetDir, hero string) string {
	hero = strings.TrimSpace(hero)
	if hero == "" || strings.HasPrefix(hero, "/") || strings.Contains(hero, "://") {
		return hero
	}
	if assetDir == "" {
		return "/" + path.Clean(hero)
	}
	return "/" + slug + "/" + path.Clean(strings.TrimPrefix(hero, "./"))
}

func timeToRead(plain string) int {
	words := len(strings.Fields(plain))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

func truncateWords(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= limit {
		return s
	}
	cut := strings.LastIndex(s[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return strings.TrimRight(s[:cut], ",.;:") + "…"
}
