package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/mxdserver/mxd/internal/privilege"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/wire"
)

var errBoom = errors.New("boom")

func echoHandler(_ context.Context, _ *session.Session, params wire.ParamMap) (wire.ParamBlock, error) {
	v, _ := params.First(wire.FieldLogin)
	return wire.ParamBlock{{ID: wire.FieldLogin, Value: v}}, nil
}

func TestDispatchUnauthenticatedRejectsProtectedType(t *testing.T) {
	router := NewRouter()
	router.Register(wire.TxnGetFileNameList, echoHandler)
	d := NewDispatcher(router)

	sess := session.New()
	req := wire.Transaction{Header: wire.FrameHeader{Type: wire.TxnGetFileNameList.Wire(), ID: 11}}
	reply := d.Dispatch(context.Background(), sess, req)

	if reply.Header.ErrorCode != uint32(CodeNotAuthenticated) {
		t.Fatalf("got error code %d, want %d", reply.Header.ErrorCode, CodeNotAuthenticated)
	}
	if len(reply.Payload) != 0 {
		t.Fatal("expected empty payload on gate rejection")
	}
	if reply.Header.Type != wire.TxnGetFileNameList.Wire() || reply.Header.ID != 11 {
		t.Fatal("expected reply to mirror request type/id")
	}
}

func TestDispatchInsufficientPrivilege(t *testing.T) {
	router := NewRouter()
	router.Register(wire.TxnGetFileNameList, echoHandler)
	d := NewDispatcher(router)

	sess := session.New()
	sess.Login(1, privilege.ReadChat) // lacks DownloadFile
	req := wire.Transaction{Header: wire.FrameHeader{Type: wire.TxnGetFileNameList.Wire(), ID: 1}}
	reply := d.Dispatch(context.Background(), sess, req)

	if reply.Header.ErrorCode != uint32(CodeInsufficientPrivileges) {
		t.Fatalf("got error code %d, want %d", reply.Header.ErrorCode, CodeInsufficientPrivileges)
	}
}

func TestDispatchSuccessfulRoundTrip(t *testing.T) {
	router := NewRouter()
	router.Register(wire.TxnNewsArticleData, echoHandler)
	d := NewDispatcher(router)

	sess := session.New()
	sess.Login(1, privilege.NewsReadArticle)

	payload, err := wire.EncodeParams(wire.ParamBlock{{ID: wire.FieldLogin, Value: []byte("alice")}})
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	req := wire.Transaction{
		Header:  wire.FrameHeader{Type: wire.TxnNewsArticleData.Wire(), ID: 2, TotalSize: uint32(len(payload)), DataSize: uint32(len(payload))},
		Payload: payload,
	}
	reply := d.Dispatch(context.Background(), sess, req)
	if reply.Header.ErrorCode != uint32(CodeSuccess) {
		t.Fatalf("got error code %d, want success", reply.Header.ErrorCode)
	}
	block, err := reply.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if len(block) != 1 || string(block[0].Value) != "alice" {
		t.Fatalf("unexpected reply params: %+v", block)
	}
}

func TestDispatchUnknownTypeYieldsInternalError(t *testing.T) {
	router := NewRouter()
	d := NewDispatcher(router)
	sess := session.New()
	sess.Login(1, 0)
	req := wire.Transaction{Header: wire.FrameHeader{Type: 9999, ID: 5}}
	reply := d.Dispatch(context.Background(), sess, req)
	if reply.Header.ErrorCode != uint32(CodeInternal) {
		t.Fatalf("got error code %d, want CodeInternal", reply.Header.ErrorCode)
	}
}

func TestDispatchHandlerDomainErrorMapsToRequestedCode(t *testing.T) {
	router := NewRouter()
	router.Register(wire.TxnNewsArticleData, func(context.Context, *session.Session, wire.ParamMap) (wire.ParamBlock, error) {
		return nil, ErrArticleNotFound
	})
	d := NewDispatcher(router)
	sess := session.New()
	sess.Login(1, privilege.NewsReadArticle)
	req := wire.Transaction{Header: wire.FrameHeader{Type: wire.TxnNewsArticleData.Wire(), ID: 3}}
	reply := d.Dispatch(context.Background(), sess, req)
	if reply.Header.ErrorCode != uint32(CodeArticleNotFound) {
		t.Fatalf("got error code %d, want CodeArticleNotFound", reply.Header.ErrorCode)
	}
}

func TestDispatchHandlerPlainErrorMapsToInternal(t *testing.T) {
	router := NewRouter()
	router.Register(wire.TxnLogin, func(context.Context, *session.Session, wire.ParamMap) (wire.ParamBlock, error) {
		return nil, errBoom
	})
	d := NewDispatcher(router)
	sess := session.New()
	req := wire.Transaction{Header: wire.FrameHeader{Type: wire.TxnLogin.Wire(), ID: 4}}
	reply := d.Dispatch(context.Background(), sess, req)
	if reply.Header.ErrorCode != uint32(CodeInternal) {
		t.Fatalf("got error code %d, want CodeInternal", reply.Header.ErrorCode)
	}
}
