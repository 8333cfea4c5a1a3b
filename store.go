package novela

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

// Store is the SQLite index of the loaded content. The markdown files stay
// the source of truth; the index is rebuilt on every reload.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while a reload rewrites the index.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    hero TEXT NOT NULL DEFAULT '',
    excerpt TEXT NOT NULL DEFAULT '',
    secret INTEGER NOT NULL DEFAULT 0,
    canonical_url TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    html TEXT NOT NULL,
    time_to_read INTEGER NOT NULL DEFAULT 1,
    source_path TEXT NOT NULL DEFAULT '',
    asset_dir TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS authors (
    slug TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    bio TEXT NOT NULL DEFAULT '',
    avatar TEXT NOT NULL DEFAULT '',
    featured INTEGER NOT NULL DEFAULT 0,
    social TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS post_authors (
    post_slug TEXT NOT NULL REFERENCES posts(slug) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    author_slug TEXT NOT NULL,
    PRIMARY KEY (post_slug, position)
);
CREATE INDEX IF NOT EXISTS post_authors_author ON post_authors(author_slug);
`)
	return err
}

// ReplaceAll swaps the indexed content for set in one transaction, so
// readers see either the old or the new content, never a mix.
func (s *Store) ReplaceAll(set *content.Set) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM post_authors`, `DELETE FROM posts`, `DELETE FROM authors`} {
		if _, err = tx.Exec(stmt); err != nil {
			return err
		}
	}

	slugByName := make(map[string]string, len(set.Authors))
	for _, a := range set.Authors {
		social, err := json.Marshal(a.Social)
		if err != nil {
			return err
		}
		if _, err = tx.Exec(`INSERT INTO authors (slug, name, bio, avatar, featured, social) VALUES (?, ?, ?, ?, ?, ?)`,
			a.Slug, a.Name, a.Bio, a.Avatar, boolInt(a.Featured), string(social)); err != nil {
			return fmt.Errorf("index author %q: %w", a.Slug, err)
		}
		slugByName[strings.ToLower(a.Name)] = a.Slug
	}

	for _, p := range set.Posts {
		if _, err = tx.Exec(`INSERT INTO posts (slug, title, date, hero, excerpt, secret, canonical_url, body, html, time_to_read, source_path, asset_dir) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Slug, p.Title, formatDate(p.Date), p.Hero, p.Excerpt, boolInt(p.Secret), p.CanonicalURL,
			p.Body, p.HTML, p.TimeToRead, p.SourcePath, p.AssetDir); err != nil {
			return fmt.Errorf("index post %q: %w", p.Slug, err)
		}
		for i, name := range p.Authors {
			authorSlug, ok := slugByName[strings.ToLower(name)]
			if !ok {
				authorSlug = content.Slugify(name)
			}
			if _, err = tx.Exec(`INSERT INTO post_authors (post_slug, position, name, author_slug) VALUES (?, ?, ?, ?)`,
				p.Slug, i, name, authorSlug); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

const postColumns = `p.slug, p.title, p.date, p.hero, p.excerpt, p.secret, p.canonical_url, p.body, p.html, p.time_to_read, p.source_path, p.asset_dir`

// Undated posts sort after dated ones.
const postOrder = ` ORDER BY p.date = '', p.date DESC, p.title`

// ListPosts returns posts newest first. Secret posts are only included when
// includeSecret is set.
func (s *Store) ListPosts(includeSecret bool) ([]content.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts p`
	if !includeSecret {
		q += ` WHERE p.secret = 0`
	}
	return s.queryPosts(q + postOrder)
}

// ListPostsByAuthor returns the posts written by the author with authorSlug.
func (s *Store) ListPostsByAuthor(authorSlug string, includeSecret bool) ([]content.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts p JOIN post_authors pa ON pa.post_slug = p.slug WHERE pa.author_slug = ?`
	if !includeSecret {
		q += ` AND p.secret = 0`
	}
	return s.queryPosts(q+postOrder, authorSlug)
}

// GetPost returns a post by slug. Secret posts are reachable by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	posts, err := s.queryPosts(`SELECT `+postColumns+` FROM posts p WHERE p.slug = ?`, slug)
	if err != nil {
		return content.Post{}, err
	}
	if len(posts) == 0 {
		return content.Post{}, sql.ErrNoRows
	}
	return posts[0], nil
}

func (s *Store) queryPosts(q string, args ...any) ([]content.Post, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		var p content.Post
		var date string
		var secret int
		if err := rows.Scan(&p.Slug, &p.Title, &date, &p.Hero, &p.Excerpt, &secret, &p.CanonicalURL,
			&p.Body, &p.HTML, &p.TimeToRead, &p.SourcePath, &p.AssetDir); err != nil {
			return nil, err
		}
		if p.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("post %q: %w", p.Slug, err)
		}
		p.Secret = secret == 1
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}
	return posts, s.attachAuthors(posts)
}

func (s *Store) attachAuthors(posts []content.Post) error {
	rows, err := s.db.Query(`SELECT post_slug, name FROM post_authors ORDER BY post_slug, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	names := make(map[string][]string)
	for rows.Next() {
		var slug, name string
		if err := rows.Scan(&slug, &name); err != nil {
			return err
		}
		names[slug] = append(names[slug], name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range posts {
		posts[i].Authors = names[posts[i].Slug]
	}
	return nil
}

const authorColumns = `slug, name, bio, avatar, featured, social`

// ListAuthors returns authors, featured first, then by name.
func (s *Store) ListAuthors() ([]content.Author, error) {
	return s.queryAuthors(`SELECT ` + authorColumns + ` FROM authors ORDER BY featured DESC, name`)
}

// GetAuthor returns an author by slug.
func (s *Store) GetAuthor(slug string) (content.Author, error) {
	authors, err := s.queryAuthors(`SELECT `+authorColumns+` FROM authors WHERE slug = ?`, slug)
	if err != nil {
		return content.Author{}, err
	}
	if len(authors) == 0 {
		return content.Author{}, sql.ErrNoRows
	}
	return authors[0], nil
}

func (s *Store) queryAuthors(q string, args ...any) ([]content.Author, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []content.Author
	for rows.Next() {
		var a content.Author
		var featured int
		var social string
		if err := rows.Scan(&a.Slug, &a.Name, &a.Bio, &a.Avatar, &featured, &social); err != nil {
			return nil, err
		}
		a.Featured = featured == 1
		var links []config.SocialLink
		if err := json.Unmarshal([]byte(social), &links); err != nil {
			return nil, fmt.Errorf("author %q social: %w", a.Slug, err)
		}
		a.Social = links
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// Dates are stored as UTC RFC 3339 so that text order is date order.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
