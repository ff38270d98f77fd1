package news

import (
	"context"

	"github.com/mxdserver/mxd/internal/wire"
)

// ListNames resolves path to a bundle and returns its child bundle names
// followed by its child category names, each sorted ascending by name
// and emitted as a NewsCategory parameter.
func (s *Service) ListNames(ctx context.Context, path string) (wire.ParamBlock, error) {
	bundleID, err := s.resolveBundlePath(ctx, splitPath(path))
	if err != nil {
		return nil, err
	}

	bundles, err := s.store.ListBundlesAt(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategoriesAt(ctx, bundleID)
	if err != nil {
		return nil, err
	}

	block := make(wire.ParamBlock, 0, len(bundles)+len(categories))
	for _, b := range bundles {
		block = append(block, wire.Param{ID: wire.FieldNewsCategory, Value: []byte(b.Name)})
	}
	for _, c := range categories {
		block = append(block, wire.Param{ID: wire.FieldNewsCategory, Value: []byte(c.Name)})
	}
	return block, nil
}

// ListArticleTitles resolves path to a category and returns its root
// articles (parent is null) in ascending posted_at order, each as a
// NewsArticle parameter carrying the article's title.
func (s *Service) ListArticleTitles(ctx context.Context, path string) (wire.ParamBlock, error) {
	categoryID, err := s.resolveCategoryPath(ctx, path)
	if err != nil {
		return nil, err
	}

	articles, err := s.store.ListRootArticles(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	block := make(wire.ParamBlock, 0, len(articles))
	for _, a := range articles {
		block = append(block, wire.Param{ID: wire.FieldNewsArticle, Value: []byte(a.Title)})
	}
	return block, nil
}
