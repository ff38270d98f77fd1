// Package store persists MXD's relational state — accounts, files, and
// the news hierarchy — behind an interface the core dispatch/domain
// packages depend on instead of any particular database driver.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("store: record not found")
	ErrAlreadyExists = errors.New("store: record already exists")
)

// Store is the persistence surface consumed by the session/dispatch and
// news/file domain adapters. Nothing outside this package depends on gorm
// directly.
type Store interface {
	// GetUserByUsername returns the account named username, or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// CreateUser inserts a new account; fails with ErrAlreadyExists if the
	// username is taken.
	CreateUser(ctx context.Context, user *User) error
	// ListUsers returns every account, ascending by username.
	ListUsers(ctx context.Context) ([]User, error)

	// ListFilesForUser returns every file the user's ACL grants access to,
	// ascending by name.
	ListFilesForUser(ctx context.Context, userID uint32) ([]File, error)

	// ListBundlesAt returns the bundles whose parent is parentBundleID,
	// ascending by name.
	ListBundlesAt(ctx context.Context, parentBundleID *uint32) ([]NewsBundle, error)
	// ListCategoriesAt returns the categories attached to bundleID,
	// ascending by name.
	ListCategoriesAt(ctx context.Context, bundleID *uint32) ([]NewsCategory, error)
	// FindBundleByName resolves one path segment as a bundle under
	// parentBundleID, or ErrNotFound.
	FindBundleByName(ctx context.Context, parentBundleID *uint32, name string) (*NewsBundle, error)
	// FindCategoryByName resolves one path segment as a category under
	// bundleID, or ErrNotFound.
	FindCategoryByName(ctx context.Context, bundleID *uint32, name string) (*NewsCategory, error)

	// ListRootArticles returns categoryID's root articles (parent_article_id
	// is null), ascending by posted_at.
	ListRootArticles(ctx context.Context, categoryID uint32) ([]NewsArticle, error)
	// GetArticle returns articleID if it belongs to categoryID, or
	// ErrNotFound.
	GetArticle(ctx context.Context, categoryID, articleID uint32) (*NewsArticle, error)
	// PostArticle inserts a new root article under categoryID, chaining it
	// after the current last root article, atomically.
	PostArticle(ctx context.Context, categoryID uint32, title string, poster *string, flags int32, dataFlavor, data *string) (*NewsArticle, error)
}
