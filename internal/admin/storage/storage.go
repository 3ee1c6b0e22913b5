package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Article is an editorial content entry managed through the admin.
type Article struct {
	ID        string
	Title     string
	Slug      string
	Body      string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Redirect maps a retired URL path to its replacement.
type Redirect struct {
	ID        string
	OldPath   string
	NewURL    string
	Permanent bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleStore persists articles.
type ArticleStore interface {
	ListArticles(ctx context.Context) ([]Article, error)
	GetArticle(ctx context.Context, articleID string) (Article, error)
	CreateArticle(ctx context.Context, article Article) (Article, error)
	UpdateArticle(ctx context.Context, article Article) (Article, error)
	DeleteArticle(ctx context.Context, articleID string) error
	CountArticles(ctx context.Context) (int64, error)
}

// RedirectStore persists redirect rules.
type RedirectStore interface {
	ListRedirects(ctx context.Context) ([]Redirect, error)
	GetRedirect(ctx context.Context, redirectID string) (Redirect, error)
	CreateRedirect(ctx context.Context, redirect Redirect) (Redirect, error)
	UpdateRedirect(ctx context.Context, redirect Redirect) (Redirect, error)
	DeleteRedirect(ctx context.Context, redirectID string) error
	CountRedirects(ctx context.Context) (int64, error)
}

// Store is a composite interface for admin storage concerns.
type Store interface {
	ArticleStore
	RedirectStore
	Close() error
}
