package novela

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

const (
	hydratePost = `---
title: Why you should hydrate
author: Jordy van Domselaar
date: 2020-03-01
hero: ./images/hero.jpg
excerpt: Water matters.
---

Intro paragraph.

:::tip Note
Remember to hydrate
:::
`
	olderPost = `---
title: Getting started
author: Jordy van Domselaar, Ann Example
date: 2020-02-01
---
First words.
`
	secretPost = `---
title: Unreleased thoughts
author: Ann Example
date: 2020-04-01
secret: true
---
Hidden until ready.
`
	undatedPost = `---
title: Undated notes
author: Ann Example
---
Whenever.
`
	authorsYAML = `
- name: Jordy van Domselaar
  bio: Writes things.
  avatar: /avatars/jordy.jpg
  featured: true
  social:
    - url: https://github.com/jordyvandomselaar
- name: Ann Example
  bio: Guest writer.
`
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func iconPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 97, G: 102, B: 220, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fixture struct {
	root   string
	posts  string
	static string
	cfg    *config.Config
}

// newFixture lays out a small site: four posts (one secret, one undated, one
// with co-located assets), two authors, a static dir and an icon.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root:   root,
		posts:  filepath.Join(root, "content", "posts"),
		static: filepath.Join(root, "static"),
	}
	writeFile(t, filepath.Join(f.posts, "2020-03-01-hydrate", "index.md"), []byte(hydratePost))
	writeFile(t, filepath.Join(f.posts, "2020-03-01-hydrate", "images", "hero.jpg"), []byte("jpeg"))
	writeFile(t, filepath.Join(f.posts, "getting-started.md"), []byte(olderPost))
	writeFile(t, filepath.Join(f.posts, "secret.md"), []byte(secretPost))
	writeFile(t, filepath.Join(f.posts, "undated.md"), []byte(undatedPost))
	writeFile(t, filepath.Join(root, "content", "authors", "authors.yml"), []byte(authorsYAML))
	writeFile(t, filepath.Join(f.static, "logo.jpg"), []byte("logo"))
	writeFile(t, filepath.Join(root, "icon.png"), iconPNG(t))

	f.cfg = &config.Config{
		Site: config.SiteMetadata{
			Title:       "Novela",
			Name:        "Narative",
			SiteURL:     "https://novela.example.com",
			Description: "A blog.",
			Hero:        config.Hero{Heading: "Perspectives on technology"},
			Social:      []config.SocialLink{{Name: "github", URL: "https://github.com/narative"}},
		},
		Plugins: []config.Plugin{
			&config.ThemeOptions{
				ContentPosts:   f.posts,
				ContentAuthors: filepath.Join(root, "content", "authors"),
				AuthorsPage:    true,
				PageLength:     2,
			},
			&config.ManifestOptions{Name: "Novela", Icon: filepath.Join(root, "icon.png")},
			&config.CMSOptions{},
			&config.AnalyticsOptions{
				TrackingIDs:  []string{"G-TEST"},
				PluginConfig: config.AnalyticsBehaviour{RespectDNT: true, Exclude: []string{"/preview/**"}},
			},
		},
		Server: config.Server{
			DatabasePath:  filepath.Join(root, "data", "index.db"),
			StaticDir:     f.static,
			AdminPassword: "letmein",
			SessionSecret: "0123456789abcdef0123456789abcdef",
			CacheTTL:      time.Minute,
		},
	}
	f.cfg.ApplyDefaults()
	require.NoError(t, f.cfg.Validate())
	return f
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fixture) site(t *testing.T) *Site {
	t.Helper()
	s, err := NewSite(f.cfg, ViewFuncs{}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func postSlugs(posts []content.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}
