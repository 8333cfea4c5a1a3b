package novela

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWritesEveryRoute(t *testing.T) {
	s := newFixture(t).site(t)
	out := filepath.Join(t.TempDir(), "public")

	report, err := s.Build(context.Background(), out)
	require.NoError(t, err)

	for _, rel := range []string{
		"index.html",
		"page/2/index.html",
		"why-you-should-hydrate/index.html",
		"why-you-should-hydrate/images/hero.jpg",
		"getting-started/index.html",
		"undated-notes/index.html",
		"unreleased-thoughts/index.html",
		"authors/jordy-van-domselaar/index.html",
		"authors/ann-example/index.html",
		"404.html",
		"rss.xml",
		"sitemap.xml",
		"robots.txt",
		"manifest.webmanifest",
		"icons/icon-48x48.png",
		"icons/icon-512x512.png",
		"admin/index.html",
		"admin/config.yml",
		"public/novela.css",
		"logo.jpg",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
	assert.NoFileExists(t, filepath.Join(out, "why-you-should-hydrate", "index.md"))

	// Four posts, two listing pages and two authors.
	assert.Equal(t, 8, report.Pages)
	assert.Greater(t, report.Files, report.Pages)

	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), "Why you should hydrate")
	assert.NotContains(t, string(home), "Unreleased thoughts")
}

func TestBuildKeepsStaticRobots(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.static, "robots.txt"), []byte("custom\n"))
	s := f.site(t)
	out := t.TempDir()

	_, err := s.Build(context.Background(), out)
	require.NoError(t, err)

	robots, err := os.ReadFile(filepath.Join(out, "robots.txt"))
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(robots))
}

func TestBuildWithoutPlugins(t *testing.T) {
	f := newFixture(t)
	f.cfg.Plugins = f.cfg.Plugins[:1]
	s := f.site(t)
	out := t.TempDir()

	_, err := s.Build(context.Background(), out)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(out, "manifest.webmanifest"))
	assert.NoDirExists(t, filepath.Join(out, "icons"))
	assert.NoDirExists(t, filepath.Join(out, "admin"))
}

func TestBuildStopsWhenCancelled(t *testing.T) {
	s := newFixture(t).site(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Build(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}
