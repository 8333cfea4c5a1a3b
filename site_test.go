package novela

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jordyvandomselaar/novela/config"
)

func TestNewSiteLoadsContent(t *testing.T) {
	f := newFixture(t)
	s := f.site(t)

	all, err := s.Cache.ListPosts(true)
	require.NoError(t, err)
	require.Equal(t, []string{"unreleased-thoughts", "why-you-should-hydrate", "getting-started", "undated-notes"}, postSlugs(all))

	authors, err := s.Cache.ListAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 2)
	require.Equal(t, "jordy-van-domselaar", authors[0].Slug)
	require.True(t, authors[0].Featured)
}

func TestNewSiteRejectsUnknownAuthor(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.posts, "ghost.md"), []byte("---\ntitle: Ghost\nauthor: Nobody\n---\nBoo.\n"))

	_, err := NewSite(f.cfg, ViewFuncs{}, quietLogger())
	require.ErrorContains(t, err, `unknown author "Nobody"`)
}

func TestHomePagePagination(t *testing.T) {
	s := newFixture(t).site(t)

	first, err := s.HomePage(1, false)
	require.NoError(t, err)
	require.Equal(t, 2, first.Pages)
	require.Equal(t, []string{"why-you-should-hydrate", "getting-started"}, postSlugs(first.Posts))
	require.False(t, first.HasPrev())
	require.True(t, first.HasNext())
	require.Len(t, first.Authors, 2)

	second, err := s.HomePage(2, false)
	require.NoError(t, err)
	require.Equal(t, []string{"undated-notes"}, postSlugs(second.Posts))
	require.True(t, second.HasPrev())
	require.False(t, second.HasNext())

	_, err = s.HomePage(3, false)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.HomePage(0, false)
	require.ErrorIs(t, err, ErrNotFound)

	preview, err := s.HomePage(1, true)
	require.NoError(t, err)
	require.Equal(t, []string{"unreleased-thoughts", "why-you-should-hydrate"}, postSlugs(preview.Posts))
}

func TestHomePageOfEmptySite(t *testing.T) {
	f := newFixture(t)
	f.cfg.Theme().ContentPosts = filepath.Join(f.root, "nothing-here")
	s := f.site(t)

	page, err := s.HomePage(1, false)
	require.NoError(t, err)
	require.Empty(t, page.Posts)
	require.Equal(t, 1, page.Pages)
}

func TestPostPage(t *testing.T) {
	s := newFixture(t).site(t)

	page, err := s.PostPage("getting-started", false)
	require.NoError(t, err)
	require.Equal(t, "Getting started", page.Post.Title)
	require.Len(t, page.Authors, 2)
	require.Equal(t, "Jordy van Domselaar", page.Authors[0].Name)
	require.Equal(t, []string{"undated-notes", "why-you-should-hydrate"}, postSlugs(page.Next))

	secret, err := s.PostPage("unreleased-thoughts", false)
	require.NoError(t, err)
	require.True(t, secret.Post.Secret)
	require.Equal(t, []string{"why-you-should-hydrate", "getting-started"}, postSlugs(secret.Next))

	_, err = s.PostPage("nope", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorPage(t *testing.T) {
	f := newFixture(t)
	s := f.site(t)

	page, err := s.AuthorPage("ann-example", false)
	require.NoError(t, err)
	require.Equal(t, "Ann Example", page.Author.Name)
	require.Equal(t, []string{"getting-started", "undated-notes"}, postSlugs(page.Posts))

	page, err = s.AuthorPage("ann-example", true)
	require.NoError(t, err)
	require.Equal(t, []string{"unreleased-thoughts", "getting-started", "undated-notes"}, postSlugs(page.Posts))

	_, err = s.AuthorPage("nobody", false)
	require.ErrorIs(t, err, ErrNotFound)

	f.cfg.Theme().AuthorsPage = false
	_, err = s.AuthorPage("ann-example", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReloadKeepsPreviousContentOnError(t *testing.T) {
	f := newFixture(t)
	s := f.site(t)

	writeFile(t, filepath.Join(f.posts, "broken.md"), []byte("---\ntitle: [unterminated\n---\n"))
	require.Error(t, s.Reload())

	posts, err := s.Cache.ListPosts(true)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	require.NoError(t, os.Remove(filepath.Join(f.posts, "broken.md")))
	writeFile(t, filepath.Join(f.posts, "fresh.md"), []byte("---\ntitle: Fresh\ndate: 2021-01-01\nauthor: Ann Example\n---\nNew.\n"))
	require.NoError(t, s.Reload())

	posts, err = s.Cache.ListPosts(false)
	require.NoError(t, err)
	require.Equal(t, "fresh", posts[0].Slug)
}

func TestSiteIconsNeedManifest(t *testing.T) {
	f := newFixture(t)
	s := f.site(t)

	icons, err := s.Icons()
	require.NoError(t, err)
	require.Len(t, icons, 8)

	f.cfg.Plugins = []config.Plugin{f.cfg.Theme()}
	s.icons.reset()
	_, err = s.Icons()
	require.ErrorIs(t, err, ErrNotFound)
}
