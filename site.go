package novela

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
	"github.com/jordyvandomselaar/novela/views"
)

// Site is a loaded site: its configuration, the content index and the views
// that render it. Both the HTTP server and the static build read from it.
type Site struct {
	Config    *config.Config
	Store     *Store
	Cache     *PostCache
	Views     ViewFuncs
	Logger    *slog.Logger
	StaticDir string

	reloadMu sync.Mutex
	icons    iconSet
}

// NewSite opens the content index and loads the content once.
func NewSite(cfg *config.Config, vf ViewFuncs, logger *slog.Logger) (*Site, error) {
	if logger == nil {
		logger = slog.Default()
	}
	store, err := NewStore(cfg.Path(cfg.Server.DatabasePath))
	if err != nil {
		return nil, fmt.Errorf("novela: init store: %w", err)
	}
	s := &Site{
		Config:    cfg,
		Store:     store,
		Cache:     NewPostCache(store, cfg.Server.CacheTTL),
		Views:     vf.withDefaults(),
		Logger:    logger,
		StaticDir: cfg.Path(cfg.Server.StaticDir),
	}
	s.icons.source = s.iconSource
	if err := s.Reload(); err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// Reload re-reads the content directories into the index. On error the
// previous content stays in place.
func (s *Site) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	theme := s.Config.Theme()
	set, err := content.Load(s.Config.Path(theme.ContentPosts), s.Config.Path(theme.ContentAuthors))
	if err != nil {
		return fmt.Errorf("novela: load content: %w", err)
	}
	if err := s.Store.ReplaceAll(set); err != nil {
		return fmt.Errorf("novela: index content: %w", err)
	}
	s.Cache.Invalidate()
	s.icons.reset()
	s.Logger.Info("content loaded", "posts", len(set.Posts), "authors", len(set.Authors))
	return nil
}

// Close closes the content index.
func (s *Site) Close() error {
	return s.Store.Close()
}

func (s *Site) globals(path string, dnt, preview bool) views.Globals {
	return views.Globals{Config: s.Config, Path: path, DNT: dnt, Preview: preview}
}

// HomePage assembles listing page n. Pages past the end are ErrNotFound;
// page 1 always exists.
func (s *Site) HomePage(n int, preview bool) (views.HomePage, error) {
	posts, err := s.Cache.ListPosts(preview)
	if err != nil {
		return views.HomePage{}, err
	}
	size := s.Config.Theme().PageLength
	pages := pageCount(len(posts), size)
	if n < 1 || n > pages {
		return views.HomePage{}, ErrNotFound
	}
	authors, err := s.Cache.ListAuthors()
	if err != nil {
		return views.HomePage{}, err
	}
	return views.HomePage{
		Posts:   pageSlice(posts, n, size),
		Authors: authors,
		Page:    n,
		Pages:   pages,
	}, nil
}

// PostPage assembles the page of the post with slug.
func (s *Site) PostPage(slug string, preview bool) (views.PostPage, error) {
	post, err := s.Cache.GetPost(slug)
	if err != nil {
		return views.PostPage{}, err
	}
	authors, err := s.Cache.AuthorsOf(post)
	if err != nil {
		return views.PostPage{}, err
	}
	listed, err := s.Cache.ListPosts(preview)
	if err != nil {
		return views.PostPage{}, err
	}
	return views.PostPage{Post: post, Authors: authors, Next: nextPosts(post, listed)}, nil
}

// AuthorPage assembles an author page. Without the theme's authorsPage
// option there are no author pages.
func (s *Site) AuthorPage(slug string, preview bool) (views.AuthorPage, error) {
	if !s.Config.Theme().AuthorsPage {
		return views.AuthorPage{}, ErrNotFound
	}
	author, err := s.Cache.GetAuthor(slug)
	if err != nil {
		return views.AuthorPage{}, err
	}
	posts, err := s.Cache.PostsByAuthor(slug, preview)
	if err != nil {
		return views.AuthorPage{}, err
	}
	return views.AuthorPage{Author: author, Posts: posts}, nil
}
