package store

import "time"

// User is a registered account: a login name, an Argon2id password hash,
// and a privilege bitmap.
type User struct {
	ID           uint32 `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Privileges   uint64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }

// File is a downloadable object; ObjectKey names its bytes in object
// storage. The store keeps the key only and never fetches the object.
type File struct {
	ID        uint32 `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	ObjectKey string `gorm:"not null"`
	Size      int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (File) TableName() string { return "files" }

// FileACL grants one user access to one file. The pair is unique: a user
// either has access or doesn't, never twice.
type FileACL struct {
	FileID uint32 `gorm:"primaryKey;autoIncrement:false"`
	UserID uint32 `gorm:"primaryKey;autoIncrement:false"`
}

func (FileACL) TableName() string { return "file_acl" }

// NewsBundle is an internal node of the news hierarchy; ParentBundleID is
// nil at the root.
type NewsBundle struct {
	ID             uint32 `gorm:"primaryKey"`
	ParentBundleID *uint32
	Name           string `gorm:"not null"`
}

func (NewsBundle) TableName() string { return "news_bundles" }

// NewsCategory is a leaf of the news hierarchy that actually holds
// articles; BundleID is nil when the category sits at the root.
type NewsCategory struct {
	ID       uint32 `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	BundleID *uint32
}

func (NewsCategory) TableName() string { return "news_categories" }

// NewsArticle is one post within a category. The prev/next/parent/
// first-child links form a graph resolved by query, never held as
// in-memory pointers.
type NewsArticle struct {
	ID                  uint32 `gorm:"primaryKey"`
	CategoryID          uint32 `gorm:"not null;index"`
	ParentArticleID     *uint32
	PrevArticleID       *uint32
	NextArticleID       *uint32
	FirstChildArticleID *uint32
	Title               string `gorm:"not null"`
	Poster              *string
	PostedAt            time.Time `gorm:"not null"`
	Flags               int32     `gorm:"not null;default:0"`
	DataFlavor          *string
	Data                *string
}

func (NewsArticle) TableName() string { return "news_articles" }

// AllModels lists every gorm model for AutoMigrate/migration generation.
func AllModels() []any {
	return []any{
		&User{},
		&File{},
		&FileACL{},
		&NewsBundle{},
		&NewsCategory{},
		&NewsArticle{},
	}
}
