package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"

	"github.com/jordyvandomselaar/novela/config"
)

type authorMatter struct {
	Name     string `yaml:"name"`
	Slug     string `yaml:"slug"`
	Bio      string `yaml:"bio"`
	Avatar   string `yaml:"avatar"`
	Featured bool   `yaml:"featured"`
	Social   []struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"social"`
}

// LoadAuthors reads authors from dir. A .yml/.yaml file holds a list of
// authors; a .md file holds one author in its frontmatter, with the body used
// as the bio when no bio is set. Featured authors sort first.
func LoadAuthors(dir string) ([]Author, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var authors []Author
	seen := map[string]string{}
	add := func(src string, m authorMatter) error {
		a, err := toAuthor(m)
		if err != nil {
			return fmt.Errorf("content: %s: %w", src, err)
		}
		if prev, dup := seen[a.Slug]; dup {
			return fmt.Errorf("content: %s and %s: %w %q", prev, src, ErrDuplicateSlug, a.Slug)
		}
		seen[a.Slug] = src
		authors = append(authors, a)
		return nil
	}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yml", ".yaml":
			raw, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("content: read %s: %w", p, err)
			}
			var list []authorMatter
			if err := yaml.Unmarshal(raw, &list); err != nil {
				return fmt.Errorf("content: parse %s: %w", p, err)
			}
			for _, m := range list {
				if err := add(p, m); err != nil {
					return err
				}
			}
		case ".md", ".mdx":
			raw, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("content: read %s: %w", p, err)
			}
			var m authorMatter
			body, err := frontmatter.Parse(bytes.NewReader(raw), &m)
			if err != nil {
				return fmt.Errorf("content: frontmatter %s: %w", p, err)
			}
			if m.Bio == "" {
				m.Bio = strings.TrimSpace(string(body))
			}
			return add(p, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(authors, func(i, j int) bool {
		if authors[i].Featured != authors[j].Featured {
			return authors[i].Featured
		}
		return authors[i].Name < authors[j].Name
	})
	return authors, nil
}

func toAuthor(m authorMatter) (Author, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return Author{}, errors.New("author without a name")
	}
	slug := Slugify(m.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	a := Author{
		Slug:     slug,
		Name:     name,
		Bio:      strings.TrimSpace(m.Bio),
		Avatar:   strings.TrimSpace(m.Avatar),
		Featured: m.Featured,
	}
	for _, s := range m.Social {
		link := config.SocialLink{Name: s.Name, URL: s.URL}
		if link.Name == "" {
			link.Name = platformFromURL(s.URL)
		}
		a.Social = append(a.Social, link)
	}
	return a, nil
}

// platformFromURL guesses "github" from https://github.com/x.
func platformFromURL(u string) string {
	host := u
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexByte(host, '.'); i >= 0 {
		host = host[:i]
	}
	return host
}
