package novela

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/jordyvandomselaar/novela/content"
)

// ErrNotFound is returned when a requested post, author or page does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory copy of the content index with a TTL.
type PostCache struct {
	mu      sync.RWMutex
	snap    *snapshot
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

type snapshot struct {
	posts    []content.Post // every post, secret included
	authors  []content.Author
	byAuthor map[string][]content.Post
	bySlug   map[string]int
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.snap != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts(true)
	if err != nil {
		return err
	}
	authors, err := c.store.ListAuthors()
	if err != nil {
		return err
	}
	snap := &snapshot{
		posts:    posts,
		authors:  authors,
		byAuthor: make(map[string][]content.Post, len(authors)),
		bySlug:   make(map[string]int, len(posts)),
	}
	for i, p := range posts {
		snap.bySlug[p.Slug] = i
	}
	for _, a := range authors {
		written, err := c.store.ListPostsByAuthor(a.Slug, true)
		if err != nil {
			return err
		}
		snap.byAuthor[a.Slug] = written
	}
	c.snap = snap
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() (*snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.snap, nil
}

// ListPosts returns posts newest first, with secret posts only when
// includeSecret is set.
func (c *PostCache) ListPosts(includeSecret bool) ([]content.Post, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return filterSecret(snap.posts, includeSecret), nil
}

// GetPost returns a single post by slug. Secret posts are reachable by slug.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return content.Post{}, err
	}
	i, ok := snap.bySlug[slug]
	if !ok {
		return content.Post{}, ErrNotFound
	}
	return snap.posts[i], nil
}

// ListAuthors returns every author, featured first.
func (c *PostCache) ListAuthors() ([]content.Author, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return snap.authors, nil
}

// GetAuthor returns an author by slug.
func (c *PostCache) GetAuthor(slug string) (content.Author, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return content.Author{}, err
	}
	for _, a := range snap.authors {
		if a.Slug == slug {
			return a, nil
		}
	}
	return content.Author{}, ErrNotFound
}

// PostsByAuthor returns the posts an author wrote.
func (c *PostCache) PostsByAuthor(authorSlug string, includeSecret bool) ([]content.Post, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return filterSecret(snap.byAuthor[authorSlug], includeSecret), nil
}

// AuthorsOf resolves a post's author names, in the order the post lists them.
// Names without a matching author are skipped.
func (c *PostCache) AuthorsOf(p content.Post) ([]content.Author, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	var out []content.Author
	for _, name := range p.Authors {
		for _, a := range snap.authors {
			if strings.EqualFold(a.Name, name) {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func filterSecret(posts []content.Post, includeSecret bool) []content.Post {
	if includeSecret {
		return posts
	}
	var public []content.Post
	for _, p := range posts {
		if !p.Secret {
			public = append(public, p)
		}
	}
	return public
}
