package portfolio

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avelis/portfolio/views"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrDuplicateSlug is returned when a blog post write collides with an
// existing slug. The prior row is left untouched.
var ErrDuplicateSlug = errors.New("slug already in use")

// ErrDuplicateEmail is returned when a subscriber write collides with an
// existing email address.
var ErrDuplicateEmail = errors.New("email already subscribed")

// timeLayout is fixed-width so stored timestamps sort chronologically.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store wraps a SQLite database and provides CRUD operations for the four
// content record types.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates any missing tables.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access; busy_timeout so writers wait
	// instead of failing with SQLITE_BUSY; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
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
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    short_description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    github_url TEXT NOT NULL DEFAULT '',
    live_url TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT 'web',
    featured INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    featured_image TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    read INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS subscribers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    subscribed INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL
);
`)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// likePattern escapes LIKE metacharacters in q and wraps it for substring
// containment matching.
func likePattern(q string) string {
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}

// mapUniqueErr converts a sqlite UNIQUE violation on column into sentinel,
// passing every other error through unchanged.
func mapUniqueErr(err error, column string, sentinel error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed: "+column) {
		return sentinel
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// --- Projects ---

const projectCols = `id, title, description, short_description, image_url, tags, github_url, live_url, category, featured, created_at, updated_at`

func scanProject(r rowScanner) (views.Project, error) {
	var p views.Project
	var featured int
	var created, updated string
	err := r.Scan(&p.ID, &p.Title, &p.Description, &p.ShortDescription, &p.ImageURL,
		&p.Tags, &p.GithubURL, &p.LiveURL, &p.Category, &featured, &created, &updated)
	if err != nil {
		return views.Project{}, err
	}
	p.Featured = featured == 1
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

func (s *Store) queryProjects(query string, args ...any) ([]views.Project, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []views.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListProjects returns projects newest-first, optionally filtered by exact
// category ("" or "all" means no filter), substring search over title and
// description, and the featured flag.
func (s *Store) ListProjects(category, search string, featured *bool) ([]views.Project, error) {
	query := `SELECT ` + projectCols + ` FROM projects WHERE 1=1`
	var args []any
	if category != "" && category != "all" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if search != "" {
		query += ` AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`
		pat := likePattern(search)
		args = append(args, pat, pat)
	}
	if featured != nil {
		query += ` AND featured = ?`
		args = append(args, boolInt(*featured))
	}
	query += ` ORDER BY created_at DESC`
	return s.queryProjects(query, args...)
}

// FeaturedProjects returns the most recently created featured projects.
func (s *Store) FeaturedProjects(limit int) ([]views.Project, error) {
	return s.queryProjects(`SELECT `+projectCols+` FROM projects WHERE featured = 1 ORDER BY created_at DESC LIMIT ?`, limit)
}

// GetProject returns a project by id, or ErrNotFound.
func (s *Store) GetProject(id int64) (views.Project, error) {
	return scanProject(s.db.QueryRow(`SELECT `+projectCols+` FROM projects WHERE id = ?`, id))
}

// RelatedProjects returns up to limit other projects in the same category.
func (s *Store) RelatedProjects(id int64, category string, limit int) ([]views.Project, error) {
	return s.queryProjects(`SELECT `+projectCols+` FROM projects WHERE id != ? AND category = ? LIMIT ?`, id, category, limit)
}

// ListCategories returns the distinct category values across all projects.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT category FROM projects ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateProject inserts a project and returns its id. A zero CreatedAt is
// filled with the current time.
func (s *Store) CreateProject(p views.Project) (int64, error) {
	if p.Category == "" {
		p.Category = "web"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO projects (title, description, short_description, image_url, tags, github_url, live_url, category, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.ShortDescription, p.ImageURL, p.Tags, p.GithubURL,
		p.LiveURL, p.Category, boolInt(p.Featured), formatTime(p.CreatedAt), formatTime(p.CreatedAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProject rewrites a project row and refreshes updated_at.
func (s *Store) UpdateProject(p views.Project) error {
	res, err := s.db.Exec(`UPDATE projects SET title = ?, description = ?, short_description = ?, image_url = ?, tags = ?, github_url = ?, live_url = ?, category = ?, featured = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Description, p.ShortDescription, p.ImageURL, p.Tags, p.GithubURL,
		p.LiveURL, p.Category, boolInt(p.Featured), formatTime(time.Now()), p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project by id.
func (s *Store) DeleteProject(id int64) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}

// CountProjects returns the total number of projects.
func (s *Store) CountProjects() (int, error) {
	return s.count(`SELECT COUNT(*) FROM projects`)
}

// --- Blog posts ---

const postCols = `id, title, slug, content, excerpt, featured_image, tags, published, featured, created_at, updated_at`

func scanPost(r rowScanner) (views.BlogPost, error) {
	var p views.BlogPost
	var published, featured int
	var created, updated string
	err := r.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Tags, &published, &featured, &created, &updated)
	if err != nil {
		return views.BlogPost{}, err
	}
	p.Published = published == 1
	p.Featured = featured == 1
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]views.BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []views.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FeaturedPost returns the most recently created published+featured post,
// or ErrNotFound when no post carries both flags.
func (s *Store) FeaturedPost() (views.BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT ` + postCols + ` FROM posts WHERE published = 1 AND featured = 1 ORDER BY created_at DESC LIMIT 1`))
}

// ListPublishedPosts returns one page of published posts newest-first,
// excluding excludeID, plus the total match count. Pages beyond the end
// yield an empty slice, not an error.
func (s *Store) ListPublishedPosts(excludeID int64, page, perPage int) ([]views.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE published = 1 AND id != ?`, excludeID).Scan(&total); err != nil {
		return nil, 0, err
	}
	posts, err := s.queryPosts(`SELECT `+postCols+` FROM posts WHERE published = 1 AND id != ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		excludeID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// RecentPosts returns the most recently created published posts.
func (s *Store) RecentPosts(limit int) ([]views.BlogPost, error) {
	return s.queryPosts(`SELECT `+postCols+` FROM posts WHERE published = 1 ORDER BY created_at DESC LIMIT ?`, limit)
}

// GetPublishedPost returns a published post by slug. Unpublished posts are
// invisible here and yield ErrNotFound.
func (s *Store) GetPublishedPost(slug string) (views.BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postCols+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPost returns a post by id regardless of published status (console use).
func (s *Store) GetPost(id int64) (views.BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postCols+` FROM posts WHERE id = ?`, id))
}

// RelatedPosts returns up to limit recently created published posts other
// than excludeID.
func (s *Store) RelatedPosts(excludeID int64, limit int) ([]views.BlogPost, error) {
	return s.queryPosts(`SELECT `+postCols+` FROM posts WHERE published = 1 AND id != ? ORDER BY created_at DESC LIMIT ?`, excludeID, limit)
}

// ListAllPosts returns every post for the console, optionally filtered by
// substring search over title and content and the published/featured flags.
func (s *Store) ListAllPosts(search string, published, featured *bool) ([]views.BlogPost, error) {
	query := `SELECT ` + postCols + ` FROM posts WHERE 1=1`
	var args []any
	if search != "" {
		query += ` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`
		pat := likePattern(search)
		args = append(args, pat, pat)
	}
	if published != nil {
		query += ` AND published = ?`
		args = append(args, boolInt(*published))
	}
	if featured != nil {
		query += ` AND featured = ?`
		args = append(args, boolInt(*featured))
	}
	query += ` ORDER BY created_at DESC`
	return s.queryPosts(query, args...)
}

// CreatePost inserts a post and returns its id. A duplicate slug fails with
// ErrDuplicateSlug and writes nothing.
func (s *Store) CreatePost(p views.BlogPost) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO posts (title, slug, content, excerpt, featured_image, tags, published, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Tags,
		boolInt(p.Published), boolInt(p.Featured), formatTime(p.CreatedAt), formatTime(p.CreatedAt))
	if err != nil {
		return 0, mapUniqueErr(err, "posts.slug", ErrDuplicateSlug)
	}
	return res.LastInsertId()
}

// UpdatePost rewrites a post row and refreshes updated_at. Changing the slug
// to one already in use fails with ErrDuplicateSlug.
func (s *Store) UpdatePost(p views.BlogPost) error {
	res, err := s.db.Exec(`UPDATE posts SET title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?, tags = ?, published = ?, featured = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Tags,
		boolInt(p.Published), boolInt(p.Featured), formatTime(time.Now()), p.ID)
	if err != nil {
		return mapUniqueErr(err, "posts.slug", ErrDuplicateSlug)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// CountPosts returns the total number of posts.
func (s *Store) CountPosts() (int, error) {
	return s.count(`SELECT COUNT(*) FROM posts`)
}

// --- Contact messages ---

const messageCols = `id, name, email, message, read, created_at`

func scanMessage(r rowScanner) (views.ContactMessage, error) {
	var m views.ContactMessage
	var read int
	var created string
	if err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &read, &created); err != nil {
		return views.ContactMessage{}, err
	}
	m.Read = read == 1
	m.CreatedAt = parseTime(created)
	return m, nil
}

// CreateMessage inserts a contact message with read=false.
func (s *Store) CreateMessage(m views.ContactMessage) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO messages (name, email, message, read, created_at) VALUES (?, ?, ?, 0, ?)`,
		m.Name, m.Email, m.Message, formatTime(m.CreatedAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListMessages returns contact messages newest-first, optionally filtered by
// substring search over name, email, and body, and by read state.
func (s *Store) ListMessages(search string, read *bool) ([]views.ContactMessage, error) {
	query := `SELECT ` + messageCols + ` FROM messages WHERE 1=1`
	var args []any
	if search != "" {
		query += ` AND (name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR message LIKE ? ESCAPE '\')`
		pat := likePattern(search)
		args = append(args, pat, pat, pat)
	}
	if read != nil {
		query += ` AND read = ?`
		args = append(args, boolInt(*read))
	}
	query += ` ORDER BY created_at DESC`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var messages []views.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkMessagesRead flips read to true on every given id in one transaction.
func (s *Store) MarkMessagesRead(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE messages SET read = 1 WHERE id IN (`+placeholders+`)`, args...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// DeleteMessage removes a contact message by id.
func (s *Store) DeleteMessage(id int64) error {
	_, err := s.db.Exec(`DELETE FROM messages WHERE id = ?`, id)
	return err
}

// CountMessages returns the total number of contact messages.
func (s *Store) CountMessages() (int, error) {
	return s.count(`SELECT COUNT(*) FROM messages`)
}

// CountUnreadMessages returns the number of unread contact messages.
func (s *Store) CountUnreadMessages() (int, error) {
	return s.count(`SELECT COUNT(*) FROM messages WHERE read = 0`)
}

// --- Newsletter subscribers ---

// SubscribeResult reports what Subscribe did with an email address.
type SubscribeResult int

const (
	// SubscribedNew means a new subscriber row was inserted.
	SubscribedNew SubscribeResult = iota
	// Resubscribed means an unsubscribed row was flipped back on.
	Resubscribed
	// AlreadySubscribed means the email was already active; nothing written.
	AlreadySubscribed
)

const subscriberCols = `id, email, subscribed, created_at`

func scanSubscriber(r rowScanner) (views.NewsletterSubscriber, error) {
	var sub views.NewsletterSubscriber
	var subscribed int
	var created string
	if err := r.Scan(&sub.ID, &sub.Email, &subscribed, &created); err != nil {
		return views.NewsletterSubscriber{}, err
	}
	sub.Subscribed = subscribed == 1
	sub.CreatedAt = parseTime(created)
	return sub, nil
}

// Subscribe records a newsletter signup: inserts a new row, reactivates an
// unsubscribed one, or reports an already-active address. The lookup and
// write happen in a single transaction.
func (s *Store) Subscribe(email string) (SubscribeResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	var subscribed int
	err = tx.QueryRow(`SELECT id, subscribed FROM subscribers WHERE email = ?`, email).Scan(&id, &subscribed)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO subscribers (email, subscribed, created_at) VALUES (?, 1, ?)`,
			email, formatTime(time.Now())); err != nil {
			return 0, err
		}
		return SubscribedNew, tx.Commit()
	case err != nil:
		return 0, err
	case subscribed == 1:
		return AlreadySubscribed, tx.Commit()
	default:
		if _, err := tx.Exec(`UPDATE subscribers SET subscribed = 1 WHERE id = ?`, id); err != nil {
			return 0, err
		}
		return Resubscribed, tx.Commit()
	}
}

// ListSubscribers returns subscribers newest-first, optionally filtered by
// substring search over email and by subscription state.
func (s *Store) ListSubscribers(search string, subscribed *bool) ([]views.NewsletterSubscriber, error) {
	query := `SELECT ` + subscriberCols + ` FROM subscribers WHERE 1=1`
	var args []any
	if search != "" {
		query += ` AND email LIKE ? ESCAPE '\'`
		args = append(args, likePattern(search))
	}
	if subscribed != nil {
		query += ` AND subscribed = ?`
		args = append(args, boolInt(*subscribed))
	}
	query += ` ORDER BY created_at DESC`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []views.NewsletterSubscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// GetSubscriber returns a subscriber by id, or ErrNotFound.
func (s *Store) GetSubscriber(id int64) (views.NewsletterSubscriber, error) {
	return scanSubscriber(s.db.QueryRow(`SELECT `+subscriberCols+` FROM subscribers WHERE id = ?`, id))
}

// CreateSubscriber inserts a subscriber from the console. A duplicate email
// fails with ErrDuplicateEmail.
func (s *Store) CreateSubscriber(sub views.NewsletterSubscriber) (int64, error) {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO subscribers (email, subscribed, created_at) VALUES (?, ?, ?)`,
		sub.Email, boolInt(sub.Subscribed), formatTime(sub.CreatedAt))
	if err != nil {
		return 0, mapUniqueErr(err, "subscribers.email", ErrDuplicateEmail)
	}
	return res.LastInsertId()
}

// UpdateSubscriber rewrites a subscriber row from the console.
func (s *Store) UpdateSubscriber(sub views.NewsletterSubscriber) error {
	res, err := s.db.Exec(`UPDATE subscribers SET email = ?, subscribed = ? WHERE id = ?`,
		sub.Email, boolInt(sub.Subscribed), sub.ID)
	if err != nil {
		return mapUniqueErr(err, "subscribers.email", ErrDuplicateEmail)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubscriber removes a subscriber by id.
func (s *Store) DeleteSubscriber(id int64) error {
	_, err := s.db.Exec(`DELETE FROM subscribers WHERE id = ?`, id)
	return err
}

// CountSubscribers returns the total number of subscribers.
func (s *Store) CountSubscribers() (int, error) {
	return s.count(`SELECT COUNT(*) FROM subscribers`)
}

func (s *Store) count(query string) (int, error) {
	var n int
	if err := s.db.QueryRow(query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
