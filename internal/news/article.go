package news

import (
	"context"
	"encoding/binary"

	"github.com/mxdserver/mxd/internal/wire"
)

const defaultDataFlavor = "text/plain"

// GetArticle resolves path to a category and returns articleID's fields,
// in the fixed order the reply parameter block always carries them:
// title, poster, posted-at, prev/next/parent/first-child ids, flags,
// data flavor, data.
func (s *Service) GetArticle(ctx context.Context, path string, articleID uint32) (wire.ParamBlock, error) {
	categoryID, err := s.resolveCategoryPath(ctx, path)
	if err != nil {
		return nil, err
	}

	a, err := s.store.GetArticle(ctx, categoryID, articleID)
	if err != nil {
		return articleNotFoundOrErr(err)
	}

	block := wire.ParamBlock{
		{ID: wire.FieldNewsTitle, Value: []byte(a.Title)},
	}
	if a.Poster != nil {
		block = append(block, wire.Param{ID: wire.FieldNewsPoster, Value: []byte(*a.Poster)})
	}
	block = append(block, wire.Param{ID: wire.FieldNewsDate, Value: encodeMillis(a.PostedAt.UnixMilli())})

	if a.PrevArticleID != nil {
		block = append(block, wire.Param{ID: wire.FieldNewsPrevID, Value: encodeUint32(*a.PrevArticleID)})
	}
	if a.NextArticleID != nil {
		block = append(block, wire.Param{ID: wire.FieldNewsNextID, Value: encodeUint32(*a.NextArticleID)})
	}
	if a.ParentArticleID != nil {
		block = append(block, wire.Param{ID: wire.FieldNewsParentID, Value: encodeUint32(*a.ParentArticleID)})
	}
	if a.FirstChildArticleID != nil {
		block = append(block, wire.Param{ID: wire.FieldNewsFirstChildID, Value: encodeUint32(*a.FirstChildArticleID)})
	}

	block = append(block, wire.Param{ID: wire.FieldNewsArticleFlags, Value: encodeUint32(uint32(a.Flags))})

	flavor := defaultDataFlavor
	if a.DataFlavor != nil && *a.DataFlavor != "" {
		flavor = *a.DataFlavor
	}
	block = append(block, wire.Param{ID: wire.FieldNewsDataFlavor, Value: []byte(flavor)})

	if a.Data != nil {
		block = append(block, wire.Param{ID: wire.FieldNewsArticleData, Value: []byte(*a.Data)})
	}

	return block, nil
}

// PostArticle resolves path to a category and inserts a new root article
// chained after the current last one, replying with the new article's id
// under NewsArticleId.
func (s *Service) PostArticle(ctx context.Context, path, title string, poster *string, flags int32, dataFlavor, data *string) (wire.ParamBlock, error) {
	categoryID, err := s.resolveCategoryPath(ctx, path)
	if err != nil {
		return nil, err
	}

	a, err := s.store.PostArticle(ctx, categoryID, title, poster, flags, dataFlavor, data)
	if err != nil {
		return nil, err
	}

	return wire.ParamBlock{
		{ID: wire.FieldNewsArticleID, Value: encodeUint32(a.ID)},
	}, nil
}

func encodeUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func encodeMillis(ms int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(ms))
	return b
}
