package bee

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding posts and standalone pages.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers run alongside the single writer; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
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
    date TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(lower(category));
CREATE TABLE IF NOT EXISTS pages (
    slug TEXT PRIMARY KEY,
    content TEXT NOT NULL
);
`)
	return err
}

const postColumns = `slug, title, date, category, summary, content, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	var published int
	if err := row.Scan(&p.Slug, &p.Title, &p.Date, &p.Category, &p.Summary, &p.Content, &published); err != nil {
		return Post{}, err
	}
	p.Published = published == 1
	p.Link = "/blog/" + p.Slug + "/"
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns published posts, newest first. A non-empty category
// filters case-insensitively.
func (s *Store) ListPosts(category string) ([]Post, error) {
	if category == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug`)
	}
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND lower(category) = ? ORDER BY date DESC, slug`,
		normalizeCategory(category))
}

// ListAllPosts returns every post (published and drafts), newest first.
func (s *Store) ListAllPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug`)
}

// ListCategories returns the sorted, deduplicated categories of published
// posts, keeping the spelling of the first post seen in each.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT category FROM posts WHERE published = 1 AND category != '' ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]string)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		c = strings.TrimSpace(c)
		if _, ok := seen[normalizeCategory(c)]; !ok {
			seen[normalizeCategory(c)] = c
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(seen))
	for _, c := range seen {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return normalizeCategory(result[i]) < normalizeCategory(result[j])
	})
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// SavePost upserts a post.
func (s *Store) SavePost(p Post) error {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, strings.TrimSpace(p.Category), p.Summary, p.Content, published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// GetPage returns the markdown of a standalone page such as "about".
func (s *Store) GetPage(slug string) (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM pages WHERE slug = ?`, slug).Scan(&content)
	return content, err
}

// SavePage upserts a standalone page.
func (s *Store) SavePage(slug, content string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO pages (slug, content) VALUES (?, ?)`, slug, content)
	return err
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
