// Package login implements the Login command: credential verification
// against the store and the session mutation §4.4 reserves for it.
package login

import (
	"context"

	"github.com/mxdserver/mxd/internal/authn"
	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/privilege"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/store"
	"github.com/mxdserver/mxd/internal/wire"
)

// Service authenticates Login requests against a Store. A failed login
// leaves the session untouched and reports CodeNotAuthenticated, matching
// §4.4's "the session never silently re-authenticates".
type Service struct {
	store  store.Store
	verify authn.Verifier
}

// NewService builds a Service backed by st, verifying passwords with
// authn.DefaultVerifier.
func NewService(st store.Store) *Service {
	return &Service{store: st, verify: authn.DefaultVerifier}
}

// RegisterRoutes binds Login to r.
func (s *Service) RegisterRoutes(r *dispatch.Router) {
	r.Register(wire.TxnLogin, s.handleLogin)
}

func (s *Service) handleLogin(ctx context.Context, sess *session.Session, params wire.ParamMap) (wire.ParamBlock, error) {
	usernameRaw, ok := params.First(wire.FieldLogin)
	if !ok {
		return nil, dispatch.NewDomainError(dispatch.CodeNotAuthenticated)
	}
	passwordRaw, ok := params.First(wire.FieldPassword)
	if !ok {
		return nil, dispatch.NewDomainError(dispatch.CodeNotAuthenticated)
	}

	user, err := s.store.GetUserByUsername(ctx, string(usernameRaw))
	if err != nil {
		return nil, dispatch.NewDomainError(dispatch.CodeNotAuthenticated)
	}

	if !s.verify(user.PasswordHash, string(passwordRaw)) {
		return nil, dispatch.NewDomainError(dispatch.CodeNotAuthenticated)
	}

	sess.Login(user.ID, privilege.Privileges(user.Privileges))
	return wire.ParamBlock{}, nil
}
