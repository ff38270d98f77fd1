package news

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/store"
	"github.com/mxdserver/mxd/internal/wire"
)

func articleNotFoundOrErr(err error) (wire.ParamBlock, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, dispatch.ErrArticleNotFound
	}
	return nil, err
}

func optionalText(params wire.ParamMap, id wire.FieldID) string {
	v, ok := params.First(id)
	if !ok {
		return ""
	}
	return string(v)
}

func requireText(params wire.ParamMap, id wire.FieldID) (string, error) {
	v, ok := params.First(id)
	if !ok {
		return "", dispatch.NewDomainError(dispatch.CodeInvalidPayload)
	}
	return string(v), nil
}

func requireUint32(params wire.ParamMap, id wire.FieldID) (uint32, error) {
	v, ok := params.First(id)
	if !ok || len(v) != 4 {
		return 0, dispatch.NewDomainError(dispatch.CodeInvalidPayload)
	}
	return binary.BigEndian.Uint32(v), nil
}

func optionalInt32(params wire.ParamMap, id wire.FieldID, def int32) int32 {
	v, ok := params.First(id)
	if !ok || len(v) != 4 {
		return def
	}
	return int32(binary.BigEndian.Uint32(v))
}

func optionalTextPtr(params wire.ParamMap, id wire.FieldID) *string {
	v, ok := params.First(id)
	if !ok {
		return nil
	}
	s := string(v)
	return &s
}

// RegisterRoutes binds the news domain's four transaction types to r.
func (s *Service) RegisterRoutes(r *dispatch.Router) {
	r.Register(wire.TxnNewsCategoryNameList, s.handleCategoryNameList)
	r.Register(wire.TxnNewsArticleNameList, s.handleArticleNameList)
	r.Register(wire.TxnNewsArticleData, s.handleArticleData)
	r.Register(wire.TxnPostNewsArticle, s.handlePostArticle)
}

func (s *Service) handleCategoryNameList(ctx context.Context, _ *session.Session, params wire.ParamMap) (wire.ParamBlock, error) {
	return s.ListNames(ctx, optionalText(params, wire.FieldNewsPath))
}

func (s *Service) handleArticleNameList(ctx context.Context, _ *session.Session, params wire.ParamMap) (wire.ParamBlock, error) {
	path, err := requireText(params, wire.FieldNewsPath)
	if err != nil {
		return nil, err
	}
	return s.ListArticleTitles(ctx, path)
}

func (s *Service) handleArticleData(ctx context.Context, _ *session.Session, params wire.ParamMap) (wire.ParamBlock, error) {
	path, err := requireText(params, wire.FieldNewsPath)
	if err != nil {
		return nil, err
	}
	articleID, err := requireUint32(params, wire.FieldNewsArticleID)
	if err != nil {
		return nil, err
	}
	return s.GetArticle(ctx, path, articleID)
}

func (s *Service) handlePostArticle(ctx context.Context, _ *session.Session, params wire.ParamMap) (wire.ParamBlock, error) {
	path, err := requireText(params, wire.FieldNewsPath)
	if err != nil {
		return nil, err
	}
	title, err := requireText(params, wire.FieldNewsTitle)
	if err != nil {
		return nil, err
	}
	poster := optionalTextPtr(params, wire.FieldNewsPoster)
	flags := optionalInt32(params, wire.FieldNewsArticleFlags, 0)
	dataFlavor := optionalTextPtr(params, wire.FieldNewsDataFlavor)
	data := optionalTextPtr(params, wire.FieldNewsArticleData)

	return s.PostArticle(ctx, path, title, poster, flags, dataFlavor, data)
}
