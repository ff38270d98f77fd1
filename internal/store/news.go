package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

func (s *GORMStore) ListBundlesAt(ctx context.Context, parentBundleID *uint32) ([]NewsBundle, error) {
	var bundles []NewsBundle
	q := s.db.WithContext(ctx).Order("name ASC")
	q = whereNullable(q, "parent_bundle_id", parentBundleID)
	if err := q.Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (s *GORMStore) ListCategoriesAt(ctx context.Context, bundleID *uint32) ([]NewsCategory, error) {
	var categories []NewsCategory
	q := s.db.WithContext(ctx).Order("name ASC")
	q = whereNullable(q, "bundle_id", bundleID)
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *GORMStore) FindBundleByName(ctx context.Context, parentBundleID *uint32, name string) (*NewsBundle, error) {
	var b NewsBundle
	q := s.db.WithContext(ctx).Where("name = ?", name)
	q = whereNullable(q, "parent_bundle_id", parentBundleID)
	if err := q.First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *GORMStore) FindCategoryByName(ctx context.Context, bundleID *uint32, name string) (*NewsCategory, error) {
	var c NewsCategory
	q := s.db.WithContext(ctx).Where("name = ?", name)
	q = whereNullable(q, "bundle_id", bundleID)
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *GORMStore) ListRootArticles(ctx context.Context, categoryID uint32) ([]NewsArticle, error) {
	var articles []NewsArticle
	err := s.db.WithContext(ctx).
		Where("category_id = ? AND parent_article_id IS NULL", categoryID).
		Order("posted_at ASC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *GORMStore) GetArticle(ctx context.Context, categoryID, articleID uint32) (*NewsArticle, error) {
	var a NewsArticle
	err := s.db.WithContext(ctx).
		Where("id = ? AND category_id = ?", articleID, categoryID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// PostArticle inserts a new root article under categoryID, chained after
// the current last root article (max id among root articles), and
// updates that prior article's next_article_id to point at the new one.
// Both writes happen inside a single transaction.
func (s *GORMStore) PostArticle(ctx context.Context, categoryID uint32, title string, poster *string, flags int32, dataFlavor, data *string) (*NewsArticle, error) {
	var created NewsArticle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last NewsArticle
		err := tx.Where("category_id = ? AND parent_article_id IS NULL", categoryID).
			Order("id DESC").
			First(&last).Error
		var prevID *uint32
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			prevID = nil
		case err != nil:
			return err
		default:
			id := last.ID
			prevID = &id
		}

		created = NewsArticle{
			CategoryID:    categoryID,
			PrevArticleID: prevID,
			Title:         title,
			Poster:        poster,
			PostedAt:      time.Now(),
			Flags:         flags,
			DataFlavor:    dataFlavor,
			Data:          data,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		if prevID != nil {
			newID := created.ID
			if err := tx.Model(&NewsArticle{}).Where("id = ?", *prevID).Update("next_article_id", newID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// whereNullable adds an equality or IS NULL condition on column depending
// on whether v is nil, matching the nullable-parent pattern used
// throughout the news hierarchy.
func whereNullable(q *gorm.DB, column string, v *uint32) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}
