package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/inkwellcms/inkwell/internal/admin/storage"
	"github.com/inkwellcms/inkwell/internal/admin/storage/sqlite/migrations"
	"github.com/inkwellcms/inkwell/internal/platform/id"
	"github.com/inkwellcms/inkwell/internal/platform/storage/sqlitemigrate"
)

// timeFormat is the canonical timestamp encoding for stored rows.
const timeFormat = time.RFC3339Nano

// Store provides SQLite-backed persistence for admin content.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens and migrates an admin SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ListArticles returns all articles, most recently updated first.
func (s *Store) ListArticles(ctx context.Context) ([]storage.Article, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, title, slug, body, published, created_at, updated_at
		 FROM articles
		 ORDER BY updated_at DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []storage.Article
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

// GetArticle loads one article by ID.
func (s *Store) GetArticle(ctx context.Context, articleID string) (storage.Article, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Article{}, fmt.Errorf("storage is not configured")
	}
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return storage.Article{}, fmt.Errorf("article id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, slug, body, published, created_at, updated_at
		 FROM articles
		 WHERE id = ?`,
		articleID,
	)
	article, err := scanArticle(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.Article{}, storage.ErrNotFound
		}
		return storage.Article{}, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// CreateArticle inserts a new article, assigning its ID and timestamps.
func (s *Store) CreateArticle(ctx context.Context, article storage.Article) (storage.Article, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Article{}, fmt.Errorf("storage is not configured")
	}

	articleID, err := id.NewID()
	if err != nil {
		return storage.Article{}, fmt.Errorf("generate article id: %w", err)
	}
	now := time.Now().UTC()
	article.ID = articleID
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO articles (id, title, slug, body, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Title,
		article.Slug,
		article.Body,
		boolToInt(article.Published),
		now.Format(timeFormat),
		now.Format(timeFormat),
	)
	if err != nil {
		return storage.Article{}, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

// UpdateArticle saves article fields for an existing row.
func (s *Store) UpdateArticle(ctx context.Context, article storage.Article) (storage.Article, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Article{}, fmt.Errorf("storage is not configured")
	}
	article.ID = strings.TrimSpace(article.ID)
	if article.ID == "" {
		return storage.Article{}, fmt.Errorf("article id is required")
	}

	now := time.Now().UTC()
	article.UpdatedAt = now

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE articles
		 SET title = ?, slug = ?, body = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		article.Title,
		article.Slug,
		article.Body,
		boolToInt(article.Published),
		now.Format(timeFormat),
		article.ID,
	)
	if err != nil {
		return storage.Article{}, fmt.Errorf("update article: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return storage.Article{}, storage.ErrNotFound
	}
	return article, nil
}

// DeleteArticle removes one article by ID.
func (s *Store) DeleteArticle(ctx context.Context, articleID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return fmt.Errorf("article id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, articleID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountArticles returns the total number of articles.
func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// ListRedirects returns all redirects ordered by source path.
func (s *Store) ListRedirects(ctx context.Context) ([]storage.Redirect, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, old_path, new_url, permanent, created_at, updated_at
		 FROM redirects
		 ORDER BY old_path ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list redirects: %w", err)
	}
	defer rows.Close()

	var redirects []storage.Redirect
	for rows.Next() {
		redirect, err := scanRedirect(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan redirect: %w", err)
		}
		redirects = append(redirects, redirect)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate redirects: %w", err)
	}
	return redirects, nil
}

// GetRedirect loads one redirect by ID.
func (s *Store) GetRedirect(ctx context.Context, redirectID string) (storage.Redirect, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Redirect{}, fmt.Errorf("storage is not configured")
	}
	redirectID = strings.TrimSpace(redirectID)
	if redirectID == "" {
		return storage.Redirect{}, fmt.Errorf("redirect id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, old_path, new_url, permanent, created_at, updated_at
		 FROM redirects
		 WHERE id = ?`,
		redirectID,
	)
	redirect, err := scanRedirect(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.Redirect{}, storage.ErrNotFound
		}
		return storage.Redirect{}, fmt.Errorf("get redirect: %w", err)
	}
	return redirect, nil
}

// CreateRedirect inserts a new redirect, assigning its ID and timestamps.
func (s *Store) CreateRedirect(ctx context.Context, redirect storage.Redirect) (storage.Redirect, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Redirect{}, fmt.Errorf("storage is not configured")
	}

	redirectID, err := id.NewID()
	if err != nil {
		return storage.Redirect{}, fmt.Errorf("generate redirect id: %w", err)
	}
	now := time.Now().UTC()
	redirect.ID = redirectID
	redirect.CreatedAt = now
	redirect.UpdatedAt = now

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO redirects (id, old_path, new_url, permanent, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		redirect.ID,
		redirect.OldPath,
		redirect.NewURL,
		boolToInt(redirect.Permanent),
		now.Format(timeFormat),
		now.Format(timeFormat),
	)
	if err != nil {
		return storage.Redirect{}, fmt.Errorf("create redirect: %w", err)
	}
	return redirect, nil
}

// UpdateRedirect saves redirect fields for an existing row.
func (s *Store) UpdateRedirect(ctx context.Context, redirect storage.Redirect) (storage.Redirect, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Redirect{}, fmt.Errorf("storage is not configured")
	}
	redirect.ID = strings.TrimSpace(redirect.ID)
	if redirect.ID == "" {
		return storage.Redirect{}, fmt.Errorf("redirect id is required")
	}

	now := time.Now().UTC()
	redirect.UpdatedAt = now

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE redirects
		 SET old_path = ?, new_url = ?, permanent = ?, updated_at = ?
		 WHERE id = ?`,
		redirect.OldPath,
		redirect.NewURL,
		boolToInt(redirect.Permanent),
		now.Format(timeFormat),
		redirect.ID,
	)
	if err != nil {
		return storage.Redirect{}, fmt.Errorf("update redirect: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return storage.Redirect{}, storage.ErrNotFound
	}
	return redirect, nil
}

// DeleteRedirect removes one redirect by ID.
func (s *Store) DeleteRedirect(ctx context.Context, redirectID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	redirectID = strings.TrimSpace(redirectID)
	if redirectID == "" {
		return fmt.Errorf("redirect id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM redirects WHERE id = ?`, redirectID)
	if err != nil {
		return fmt.Errorf("delete redirect: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountRedirects returns the total number of redirects.
func (s *Store) CountRedirects(ctx context.Context) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM redirects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count redirects: %w", err)
	}
	return count, nil
}

func scanArticle(scan func(...any) error) (storage.Article, error) {
	var article storage.Article
	var publishedInt int64
	var createdAt string
	var updatedAt string
	if err := scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Body,
		&publishedInt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Article{}, err
	}
	article.Published = publishedInt != 0
	article.CreatedAt = parseTime(createdAt)
	article.UpdatedAt = parseTime(updatedAt)
	return article, nil
}

func scanRedirect(scan func(...any) error) (storage.Redirect, error) {
	var redirect storage.Redirect
	var permanentInt int64
	var createdAt string
	var updatedAt string
	if err := scan(
		&redirect.ID,
		&redirect.OldPath,
		&redirect.NewURL,
		&permanentInt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Redirect{}, err
	}
	redirect.Permanent = permanentInt != 0
	redirect.CreatedAt = parseTime(createdAt)
	redirect.UpdatedAt = parseTime(updatedAt)
	return redirect, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
