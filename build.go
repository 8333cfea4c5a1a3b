package novela

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/jordyvandomselaar/novela/cms"
	"github.com/jordyvandomselaar/novela/manifest"
	"github.com/jordyvandomselaar/novela/views"
)

// Build exports the whole site as static files under outDir. Every route is
// written as <route>/index.html, next to the feed, sitemap, robots.txt,
// manifest, icons, CMS files, post assets and the static directory.
// The context is checked between files.
func (s *Site) Build(ctx context.Context, outDir string) (BuildReport, error) {
	b := &builder{ctx: ctx, out: outDir}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return b.report, fmt.Errorf("novela: build: %w", err)
	}

	steps := []struct {
		name string
		run  func(*builder) error
	}{
		{"static", s.buildStatic},
		{"listing", s.buildListing},
		{"posts", s.buildPosts},
		{"authors", s.buildAuthors},
		{"feeds", s.buildFeeds},
		{"manifest", s.buildManifest},
		{"cms", s.buildCMS},
	}
	for _, step := range steps {
		if err := step.run(b); err != nil {
			return b.report, fmt.Errorf("novela: build %s: %w", step.name, err)
		}
	}
	s.Logger.Info("site built", "path", outDir, "pages", b.report.Pages, "count", b.report.Files)
	return b.report, nil
}

type builder struct {
	ctx    context.Context
	out    string
	report BuildReport
}

// write creates the file at the URL path rel under the output directory.
func (b *builder) write(rel string, fill func(io.Writer) error) error {
	if err := b.ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(b.out, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	b.report.Files++
	return nil
}

func (b *builder) bytes(rel string, data []byte) error {
	return b.write(rel, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (b *builder) page(route string, c templ.Component) error {
	if err := b.write(path.Join(route, "index.html"), func(w io.Writer) error {
		return c.Render(b.ctx, w)
	}); err != nil {
		return err
	}
	b.report.Pages++
	return nil
}

// copyTree copies the regular files under src to the URL path prefix.
func (b *builder) copyTree(src, prefix string, skip func(string) bool) error {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (skip != nil && skip(p)) {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		return b.write(path.Join(prefix, filepath.ToSlash(rel)), func(w io.Writer) error {
			f, err := os.Open(p)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(w, f)
			return err
		})
	})
}

func (s *Site) buildStatic(b *builder) error {
	if err := b.copyTree(s.StaticDir, "/", nil); err != nil {
		return err
	}
	return fs.WalkDir(EmbeddedAssets, "embedded", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := EmbeddedAssets.ReadFile(p)
		if err != nil {
			return err
		}
		return b.bytes(path.Join("/public", strings.TrimPrefix(p, "embedded/")), data)
	})
}

func (s *Site) buildListing(b *builder) error {
	theme := s.Config.Theme()
	for n := 1; ; n++ {
		page, err := s.HomePage(n, false)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return err
		}
		route := views.PagePath(theme, n)
		if err := b.page(route, s.Views.Home(s.globals(route, false, false), page)); err != nil {
			return err
		}
	}
	return b.write("/404.html", func(w io.Writer) error {
		return s.Views.NotFound(s.globals("/404.html", false, false)).Render(b.ctx, w)
	})
}

// buildPosts writes every post, secret ones included, since secret posts
// stay reachable by their URL.
func (s *Site) buildPosts(b *builder) error {
	theme := s.Config.Theme()
	posts, err := s.Cache.ListPosts(true)
	if err != nil {
		return err
	}
	for _, p := range posts {
		page, err := s.PostPage(p.Slug, false)
		if err != nil {
			return err
		}
		route := views.PostPath(theme, p.Slug)
		if err := b.page(route, s.Views.Post(s.globals(route, false, false), page)); err != nil {
			return err
		}
		if p.AssetDir != "" {
			if err := b.copyTree(p.AssetDir, route, isMarkdownFile); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Site) buildAuthors(b *builder) error {
	theme := s.Config.Theme()
	if !theme.AuthorsPage {
		return nil
	}
	authors, err := s.Cache.ListAuthors()
	if err != nil {
		return err
	}
	for _, a := range authors {
		page, err := s.AuthorPage(a.Slug, false)
		if err != nil {
			return err
		}
		route := views.AuthorPath(theme, a.Slug)
		if err := b.page(route, s.Views.Author(s.globals(route, false, false), page)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) buildFeeds(b *builder) error {
	if err := b.write("/rss.xml", s.writeRSS); err != nil {
		return err
	}
	if err := b.write("/sitemap.xml", s.writeSitemap); err != nil {
		return err
	}
	// A robots.txt from the static directory wins.
	if _, err := os.Stat(filepath.Join(b.out, "robots.txt")); err == nil {
		return nil
	}
	return b.bytes("/robots.txt", []byte(robotsTxt(s.Config)))
}

func (s *Site) buildManifest(b *builder) error {
	opts, ok := s.Config.Manifest()
	if !ok {
		return nil
	}
	data, err := manifest.BuildManifest(opts).JSON()
	if err != nil {
		return err
	}
	if err := b.bytes(manifest.Path, data); err != nil {
		return err
	}
	icons, err := s.Icons()
	if err != nil {
		return err
	}
	for _, size := range manifest.IconSizes {
		p := manifest.IconPath(size)
		if err := b.bytes(p, icons[p]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) buildCMS(b *builder) error {
	opts, ok := s.Config.CMS()
	if !ok {
		return nil
	}
	root := cms.Root(opts)
	var page bytes.Buffer
	if err := cms.AdminPage(opts).Render(b.ctx, &page); err != nil {
		return err
	}
	if err := b.bytes(path.Join(root, "index.html"), page.Bytes()); err != nil {
		return err
	}
	data, err := cms.Config(opts, s.Config.Theme(), s.Config.Server.StaticDir)
	if err != nil {
		return err
	}
	return b.bytes(path.Join(root, cms.ConfigFile), data)
}
