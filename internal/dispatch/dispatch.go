package dispatch

import (
	"context"

	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/wire"
)

// Handler executes one transaction type's command against the session and
// its decoded parameters, returning the reply's parameter block. A nil
// block is equivalent to an empty payload. Returning a *DomainError
// requests a specific wire error code; any other error maps to
// CodeInternal.
type Handler func(ctx context.Context, sess *session.Session, params wire.ParamMap) (wire.ParamBlock, error)

// Router maps transaction type wire ids to their handler.
type Router struct {
	routes map[uint16]Handler
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[uint16]Handler)}
}

// Register binds ty's handler. Registering the same type twice replaces
// the prior handler.
func (r *Router) Register(ty wire.TransactionType, h Handler) {
	r.routes[ty.Wire()] = h
}

// Dispatcher executes the precondition gate of §4.4 and routes to the
// matching Handler, converting every failure mode into a well-formed reply
// transaction. Dispatch never returns an error: a transport-level failure
// from an otherwise well-formed request always yields a CodeInternal
// reply, never a propagated error.
type Dispatcher struct {
	router *Router
}

// NewDispatcher builds a Dispatcher over router.
func NewDispatcher(router *Router) *Dispatcher {
	return &Dispatcher{router: router}
}

// Dispatch executes the full gate-then-handle-then-reply pipeline for one
// already-reassembled, already-compatibility-decoded transaction.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, tx wire.Transaction) wire.Transaction {
	ty := wire.TransactionTypeFromWire(tx.Header.Type)

	if !ty.AllowsPayload() && len(tx.Payload) > 0 {
		return d.errorReply(tx.Header, CodeInvalidPayload)
	}

	if ty.RequiresAuthentication() && !sess.Authenticated() {
		return d.errorReply(tx.Header, CodeNotAuthenticated)
	}
	if required := ty.RequiredPrivilege(); required != 0 && !sess.HasPrivilege(required) {
		return d.errorReply(tx.Header, CodeInsufficientPrivileges)
	}

	handler, ok := d.router.routes[tx.Header.Type]
	if !ok {
		return d.errorReply(tx.Header, CodeInternal)
	}

	var block wire.ParamBlock
	if len(tx.Payload) > 0 {
		decoded, err := wire.DecodeParams(tx.Payload)
		if err != nil {
			return d.errorReply(tx.Header, CodeInvalidPayload)
		}
		block = decoded
	}

	replyParams, err := handler(ctx, sess, wire.NewParamMap(block))
	if err != nil {
		return d.errorReply(tx.Header, codeOf(err))
	}

	payload, err := wire.EncodeParams(replyParams)
	if err != nil {
		return d.errorReply(tx.Header, CodeInternal)
	}

	return wire.Transaction{
		Header:  wire.ReplyHeader(tx.Header.Type, tx.Header.ID, uint32(CodeSuccess), len(payload)),
		Payload: payload,
	}
}

func (d *Dispatcher) errorReply(req wire.FrameHeader, code Code) wire.Transaction {
	return wire.Transaction{
		Header:  wire.ReplyHeader(req.Type, req.ID, uint32(code), 0),
		Payload: nil,
	}
}
