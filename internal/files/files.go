// Package files implements the file-listing domain adapter: the
// GetFileNameList command, scoped to the authenticated user's ACL.
package files

import (
	"context"

	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/store"
	"github.com/mxdserver/mxd/internal/wire"
)

// Service serves file-listing operations against a Store.
type Service struct {
	store store.Store
}

// NewService builds a Service backed by st.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// RegisterRoutes binds GetFileNameList to r.
func (s *Service) RegisterRoutes(r *dispatch.Router) {
	r.Register(wire.TxnGetFileNameList, s.handleGetFileNameList)
}

// ListFileNames returns the files accessible to userID, ascending by
// name, each as a FileName parameter.
func (s *Service) ListFileNames(ctx context.Context, userID uint32) (wire.ParamBlock, error) {
	fs, err := s.store.ListFilesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	block := make(wire.ParamBlock, 0, len(fs))
	for _, f := range fs {
		block = append(block, wire.Param{ID: wire.FieldFileName, Value: []byte(f.Name)})
	}
	return block, nil
}

func (s *Service) handleGetFileNameList(ctx context.Context, sess *session.Session, _ wire.ParamMap) (wire.ParamBlock, error) {
	userID, ok := sess.UserID()
	if !ok {
		return nil, dispatch.NewDomainError(dispatch.CodeNotAuthenticated)
	}
	return s.ListFileNames(ctx, userID)
}
