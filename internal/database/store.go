package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seolens/seolens/internal/model"
)

// Store provides SQLite-based storage for crawl data.
//
// Design decision: one database file holding all sessions rather than
// a file per session. Comparative reporting needs cross-session
// queries, and a single file keeps backup and cleanup trivial.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance while the crawl writes.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Store at the specified directory.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "seolens.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; all crawl workers share this
	// single connection and the driver serializes their writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the path of the underlying database file.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- One crawl run against a site
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root_url TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'running'
			CHECK (status IN ('running', 'complete', 'interrupted')),
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		completed_at DATETIME,
		total_pages INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
	CREATE INDEX IF NOT EXISTS idx_sessions_root ON sessions(root_url);

	-- Frontier entry and result record, one row per (session, URL).
	-- The UNIQUE constraint backs the first-insertion-wins dedupe.
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		url TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'crawled', 'error', 'skipped')),
		depth INTEGER NOT NULL DEFAULT 0,
		in_sitemap INTEGER NOT NULL DEFAULT 0,

		-- Result fields, NULL/zero until the page is processed
		status_code INTEGER,
		redirect_url TEXT NOT NULL DEFAULT '',
		content_type TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		h1_count INTEGER NOT NULL DEFAULT 0,
		h2_count INTEGER NOT NULL DEFAULT 0,
		first_h1 TEXT NOT NULL DEFAULT '',
		canonical_url TEXT NOT NULL DEFAULT '',
		robots_meta TEXT NOT NULL DEFAULT '',
		is_indexable INTEGER,
		word_count INTEGER NOT NULL DEFAULT 0,
		internal_link_count INTEGER NOT NULL DEFAULT 0,
		external_link_count INTEGER NOT NULL DEFAULT 0,
		image_count INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT NOT NULL DEFAULT '',
		response_time_ms INTEGER NOT NULL DEFAULT 0,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		crawled_at DATETIME,

		UNIQUE(session_id, url)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_session ON pages(session_id);
	CREATE INDEX IF NOT EXISTS idx_pages_session_status ON pages(session_id, status);

	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		source_url TEXT NOT NULL,
		target_url TEXT NOT NULL,
		anchor_text TEXT NOT NULL DEFAULT '',
		is_external INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_links_session ON links(session_id);
	CREATE INDEX IF NOT EXISTS idx_links_session_target ON links(session_id, target_url);

	-- alt is NULL when the attribute was absent, '' when alt="" was
	-- present; the two are distinct SEO signals.
	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		page_url TEXT NOT NULL,
		src TEXT NOT NULL,
		alt TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_images_session ON images(session_id);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// CreateSession inserts a new running session and returns it.
func (s *Store) CreateSession(ctx context.Context, rootURL, label string) (*model.Session, error) {
	query := `INSERT INTO sessions (root_url, label, status) VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query, rootURL, label, string(model.SessionRunning))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read session id: %w", err)
	}

	return s.SessionByID(ctx, id)
}

// sessionColumns is the column list scanned by scanSession.
const sessionColumns = "id, root_url, label, status, started_at, completed_at, total_pages"

// scanSession scans one session row.
func scanSession(row interface{ Scan(...any) error }) (*model.Session, error) {
	var sess model.Session
	var status string
	var startedAt string
	var completedAt sql.NullString

	err := row.Scan(&sess.ID, &sess.RootURL, &sess.Label, &status, &startedAt, &completedAt, &sess.TotalPages)
	if err != nil {
		return nil, err
	}

	sess.Status = model.SessionStatus(status)
	sess.StartedAt = parseTimestamp(startedAt)
	if completedAt.Valid {
		t := parseTimestamp(completedAt.String)
		sess.CompletedAt = &t
	}

	return &sess, nil
}

// SessionByID retrieves a session by its identifier.
func (s *Store) SessionByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

	sess, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

// LatestInterruptedSession returns the most recently started session
// with status=interrupted, or ErrNoInterruptedSession.
func (s *Store) LatestInterruptedSession(ctx context.Context) (*model.Session, error) {
	query := `
	SELECT ` + sessionColumns + ` FROM sessions
	WHERE status = ?
	ORDER BY started_at DESC, id DESC
	LIMIT 1
	`

	sess, err := scanSession(s.db.QueryRowContext(ctx, query, string(model.SessionInterrupted)))
	if err == sql.ErrNoRows {
		return nil, ErrNoInterruptedSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interrupted session: %w", err)
	}

	return sess, nil
}

// Sessions returns all sessions, most recent first.
func (s *Store) Sessions(ctx context.Context) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

// SessionsForSite returns sessions for one root URL, most recent first.
func (s *Store) SessionsForSite(ctx context.Context, rootURL string) ([]*model.Session, error) {
	query := `
	SELECT ` + sessionColumns + ` FROM sessions
	WHERE root_url = ?
	ORDER BY started_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, rootURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for site: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

// MarkSessionRunning transitions a session back to running on resume.
func (s *Store) MarkSessionRunning(ctx context.Context, id int64) error {
	query := `UPDATE sessions SET status = ?, completed_at = NULL WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, string(model.SessionRunning), id); err != nil {
		return fmt.Errorf("failed to mark session running: %w", err)
	}
	return nil
}

// MarkSessionInterrupted transitions a session to interrupted.
func (s *Store) MarkSessionInterrupted(ctx context.Context, id int64) error {
	query := `UPDATE sessions SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, string(model.SessionInterrupted), id); err != nil {
		return fmt.Errorf("failed to mark session interrupted: %w", err)
	}
	return nil
}

// CompleteSession transitions a session to complete and records the
// crawled page count, computed from the pages table so it stays
// correct across resumes.
func (s *Store) CompleteSession(ctx context.Context, id int64) error {
	query := `
	UPDATE sessions SET
		status = ?,
		completed_at = CURRENT_TIMESTAMP,
		total_pages = (SELECT COUNT(*) FROM pages WHERE session_id = ? AND status = ?)
	WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query,
		string(model.SessionComplete), id, string(model.PageCrawled), id)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// InsertPendingPage inserts a pending frontier row. Duplicate (session,
// URL) insertions are silent no-ops: the first insertion wins and a
// later rediscovery's depth and sitemap flag are discarded.
func (s *Store) InsertPendingPage(ctx context.Context, sessionID int64, url string, depth int, inSitemap bool) error {
	query := `
	INSERT INTO pages (session_id, url, status, depth, in_sitemap)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(session_id, url) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query, sessionID, url, string(model.PagePending), depth, boolToInt(inSitemap))
	if err != nil {
		return fmt.Errorf("failed to insert pending page: %w", err)
	}
	return nil
}

// MarkPageSkipped records a robots-disallowed URL. Single statement,
// no transaction needed.
func (s *Store) MarkPageSkipped(ctx context.Context, sessionID int64, url, reason string) error {
	query := `
	UPDATE pages SET status = ?, error_message = ?, crawled_at = CURRENT_TIMESTAMP
	WHERE session_id = ? AND url = ?
	`

	_, err := s.db.ExecContext(ctx, query, string(model.PageSkipped), reason, sessionID, url)
	if err != nil {
		return fmt.Errorf("failed to mark page skipped: %w", err)
	}
	return nil
}

// MarkPageError records a transport failure (nil statusCode) or an
// HTTP error status.
func (s *Store) MarkPageError(ctx context.Context, sessionID int64, url string, statusCode *int, message string) error {
	query := `
	UPDATE pages SET status = ?, status_code = ?, error_message = ?, crawled_at = CURRENT_TIMESTAMP
	WHERE session_id = ? AND url = ?
	`

	var code sql.NullInt64
	if statusCode != nil {
		code = sql.NullInt64{Int64: int64(*statusCode), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query, string(model.PageError), code, message, sessionID, url)
	if err != nil {
		return fmt.Errorf("failed to mark page error: %w", err)
	}
	return nil
}

// SavePageResult persists a processed page together with its links and
// images in one transaction. The page must never be observably crawled
// without its child rows, so all three writes commit or roll back as a
// unit. Redirect and non-HTML results call this with empty slices.
func (s *Store) SavePageResult(ctx context.Context, page *model.Page, links []model.Link, images []model.Image) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	updateQuery := `
	UPDATE pages SET
		status = ?,
		status_code = ?,
		redirect_url = ?,
		content_type = ?,
		title = ?,
		meta_description = ?,
		h1_count = ?,
		h2_count = ?,
		first_h1 = ?,
		canonical_url = ?,
		robots_meta = ?,
		is_indexable = ?,
		word_count = ?,
		internal_link_count = ?,
		external_link_count = ?,
		image_count = ?,
		content_hash = ?,
		response_time_ms = ?,
		size_bytes = ?,
		error_message = ?,
		crawled_at = CURRENT_TIMESTAMP
	WHERE session_id = ? AND url = ?
	`

	var code sql.NullInt64
	if page.StatusCode != nil {
		code = sql.NullInt64{Int64: int64(*page.StatusCode), Valid: true}
	}
	var indexable sql.NullInt64
	if page.Indexable != nil {
		indexable = sql.NullInt64{Int64: int64(boolToInt(*page.Indexable)), Valid: true}
	}

	if _, err := tx.ExecContext(ctx, updateQuery,
		string(page.Status),
		code,
		page.RedirectURL,
		page.ContentType,
		page.Title,
		page.MetaDescription,
		page.H1Count,
		page.H2Count,
		page.FirstH1,
		page.CanonicalURL,
		page.RobotsMeta,
		indexable,
		page.WordCount,
		page.InternalLinkCount,
		page.ExternalLinkCount,
		page.ImageCount,
		page.ContentHash,
		page.ResponseTimeMs,
		page.SizeBytes,
		page.ErrorMessage,
		page.SessionID,
		page.URL,
	); err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	linkQuery := `
	INSERT INTO links (session_id, source_url, target_url, anchor_text, is_external)
	VALUES (?, ?, ?, ?, ?)
	`
	for _, link := range links {
		if _, err := tx.ExecContext(ctx, linkQuery,
			page.SessionID, link.SourceURL, link.TargetURL, link.AnchorText, boolToInt(link.IsExternal),
		); err != nil {
			return fmt.Errorf("failed to insert link: %w", err)
		}
	}

	imageQuery := `
	INSERT INTO images (session_id, page_url, src, alt)
	VALUES (?, ?, ?, ?)
	`
	for _, img := range images {
		var alt sql.NullString
		if img.Alt != nil {
			alt = sql.NullString{String: *img.Alt, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, imageQuery,
			page.SessionID, img.PageURL, img.Src, alt,
		); err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit page result: %w", err)
	}
	return nil
}

// PendingPage is a frontier entry loaded for resume.
type PendingPage struct {
	URL   string
	Depth int
}

// PendingPages returns all pending pages for a session ordered by
// ascending depth, insertion order within a depth tier.
func (s *Store) PendingPages(ctx context.Context, sessionID int64) ([]PendingPage, error) {
	query := `
	SELECT url, depth FROM pages
	WHERE session_id = ? AND status = ?
	ORDER BY depth ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID, string(model.PagePending))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending pages: %w", err)
	}
	defer rows.Close()

	var pending []PendingPage
	for rows.Next() {
		var p PendingPage
		if err := rows.Scan(&p.URL, &p.Depth); err != nil {
			return nil, fmt.Errorf("failed to scan pending page: %w", err)
		}
		pending = append(pending, p)
	}

	return pending, rows.Err()
}

// PageURLs returns every page URL for a session, any status.
func (s *Store) PageURLs(ctx context.Context, sessionID int64) ([]string, error) {
	query := `SELECT url FROM pages WHERE session_id = ?`
	return s.queryStrings(ctx, query, sessionID)
}

// LinkTargets returns all distinct link target URLs for a session.
// Together with PageURLs this reconstructs the seen set on resume:
// targets discovered before a crash must not be re-enqueued as
// duplicates.
func (s *Store) LinkTargets(ctx context.Context, sessionID int64) ([]string, error) {
	query := `SELECT DISTINCT target_url FROM links WHERE session_id = ?`
	return s.queryStrings(ctx, query, sessionID)
}

// queryStrings runs a single-column string query.
func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// CrawledPageCount returns the number of pages with status=crawled.
func (s *Store) CrawledPageCount(ctx context.Context, sessionID int64) (int, error) {
	query := `SELECT COUNT(*) FROM pages WHERE session_id = ? AND status = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, sessionID, string(model.PageCrawled)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count crawled pages: %w", err)
	}
	return count, nil
}

// PagesBySession returns all page rows for a session ordered by URL.
// Used by the report and compare commands.
func (s *Store) PagesBySession(ctx context.Context, sessionID int64) ([]*model.Page, error) {
	query := `
	SELECT id, session_id, url, status, depth, in_sitemap, status_code,
		redirect_url, content_type, title, meta_description, h1_count,
		h2_count, first_h1, canonical_url, robots_meta, is_indexable,
		word_count, internal_link_count, external_link_count, image_count,
		content_hash, response_time_ms, size_bytes, error_message, crawled_at
	FROM pages
	WHERE session_id = ?
	ORDER BY url ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []*model.Page
	for rows.Next() {
		var p model.Page
		var status string
		var inSitemap int
		var code, indexable sql.NullInt64
		var crawledAt sql.NullString

		if err := rows.Scan(
			&p.ID, &p.SessionID, &p.URL, &status, &p.Depth, &inSitemap, &code,
			&p.RedirectURL, &p.ContentType, &p.Title, &p.MetaDescription, &p.H1Count,
			&p.H2Count, &p.FirstH1, &p.CanonicalURL, &p.RobotsMeta, &indexable,
			&p.WordCount, &p.InternalLinkCount, &p.ExternalLinkCount, &p.ImageCount,
			&p.ContentHash, &p.ResponseTimeMs, &p.SizeBytes, &p.ErrorMessage, &crawledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}

		p.Status = model.PageStatus(status)
		p.InSitemap = inSitemap != 0
		if code.Valid {
			c := int(code.Int64)
			p.StatusCode = &c
		}
		if indexable.Valid {
			b := indexable.Int64 != 0
			p.Indexable = &b
		}
		if crawledAt.Valid {
			t := parseTimestamp(crawledAt.String)
			p.CrawledAt = &t
		}

		pages = append(pages, &p)
	}

	return pages, rows.Err()
}

// LinksBySession returns all link rows for a session.
func (s *Store) LinksBySession(ctx context.Context, sessionID int64) ([]model.Link, error) {
	query := `
	SELECT session_id, source_url, target_url, anchor_text, is_external
	FROM links
	WHERE session_id = ?
	ORDER BY source_url ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []model.Link
	for rows.Next() {
		var l model.Link
		var external int
		if err := rows.Scan(&l.SessionID, &l.SourceURL, &l.TargetURL, &l.AnchorText, &external); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		l.IsExternal = external != 0
		links = append(links, l)
	}

	return links, rows.Err()
}

// ImagesBySession returns all image rows for a session.
func (s *Store) ImagesBySession(ctx context.Context, sessionID int64) ([]model.Image, error) {
	query := `
	SELECT session_id, page_url, src, alt
	FROM images
	WHERE session_id = ?
	ORDER BY page_url ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		var alt sql.NullString
		if err := rows.Scan(&img.SessionID, &img.PageURL, &img.Src, &alt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		if alt.Valid {
			a := alt.String
			img.Alt = &a
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// boolToInt converts a bool to the 0/1 representation SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats contains the timestamp formats SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp string using multiple formats.
// SQLite returns timestamps in different formats depending on
// configuration; zero time is the fallback for unknown formats.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
