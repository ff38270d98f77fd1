package wire

import (
	"testing"

	"github.com/mxdserver/mxd/internal/privilege"
)

func TestTransactionTypeFromWireKnown(t *testing.T) {
	ty := TransactionTypeFromWire(107)
	if ty != TxnLogin {
		t.Fatalf("got %+v, want TxnLogin", ty)
	}
	if ty.Wire() != 107 {
		t.Fatalf("got wire id %d, want 107", ty.Wire())
	}
}

func TestTransactionTypeFromWireUnknownRoundTrips(t *testing.T) {
	ty := TransactionTypeFromWire(9001)
	if ty.Wire() != 9001 {
		t.Fatalf("got %d, want 9001", ty.Wire())
	}
	if ty.RequiredPrivilege() != 0 {
		t.Fatal("unknown type should require no privilege")
	}
	if !ty.RequiresAuthentication() {
		t.Fatal("unknown type should default to requiring authentication")
	}
}

func TestLoginRequiresNoAuthOrPrivilege(t *testing.T) {
	if TxnLogin.RequiresAuthentication() {
		t.Fatal("Login should not require prior authentication")
	}
	if TxnLogin.RequiredPrivilege() != 0 {
		t.Fatal("Login should require no privilege")
	}
}

func TestGetFileNameListRequiresDownloadFile(t *testing.T) {
	if !TxnGetFileNameList.RequiresAuthentication() {
		t.Fatal("GetFileNameList should require authentication")
	}
	if TxnGetFileNameList.RequiredPrivilege() != privilege.DownloadFile {
		t.Fatalf("got %v, want DownloadFile", TxnGetFileNameList.RequiredPrivilege())
	}
}

func TestPostNewsArticleRequiresNewsPostArticle(t *testing.T) {
	if TxnPostNewsArticle.RequiredPrivilege() != privilege.NewsPostArticle {
		t.Fatalf("got %v, want NewsPostArticle", TxnPostNewsArticle.RequiredPrivilege())
	}
}

func TestAllowsPayloadForbidsParameterlessTypes(t *testing.T) {
	for _, ty := range []TransactionType{TxnGetFileNameList, TxnDownloadBanner, TxnGetUserNameList} {
		if ty.AllowsPayload() {
			t.Fatalf("%+v should forbid a payload", ty)
		}
	}
}

func TestAllowsPayloadAllowsOtherKnownAndUnknownTypes(t *testing.T) {
	for _, ty := range []TransactionType{TxnLogin, TxnPostNewsArticle, TransactionTypeFromWire(9001)} {
		if !ty.AllowsPayload() {
			t.Fatalf("%+v should allow a payload", ty)
		}
	}
}
