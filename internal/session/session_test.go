package session

import (
	"testing"

	"github.com/mxdserver/mxd/internal/privilege"
)

func TestNewSessionUnauthenticated(t *testing.T) {
	s := New()
	if s.Authenticated() {
		t.Fatal("new session should be unauthenticated")
	}
	if _, ok := s.UserID(); ok {
		t.Fatal("new session should have no user id")
	}
	if s.HasPrivilege(privilege.DownloadFile) {
		t.Fatal("unauthenticated session should have no privileges")
	}
}

func TestLoginSetsState(t *testing.T) {
	s := New()
	s.Login(7, privilege.DefaultUser)
	if !s.Authenticated() {
		t.Fatal("expected session to be authenticated after Login")
	}
	id, ok := s.UserID()
	if !ok || id != 7 {
		t.Fatalf("got id=%d ok=%v, want 7/true", id, ok)
	}
	if !s.HasPrivilege(privilege.DownloadFile) {
		t.Fatal("expected DefaultUser privileges to include DownloadFile")
	}
	if s.HasPrivilege(privilege.DeleteUser) {
		t.Fatal("did not expect admin privilege after default login")
	}
}

func TestLogoutClearsState(t *testing.T) {
	s := New()
	s.Login(7, privilege.DefaultUser)
	s.Logout()
	if s.Authenticated() {
		t.Fatal("expected session to be unauthenticated after Logout")
	}
	if s.HasPrivilege(privilege.DownloadFile) {
		t.Fatal("expected privileges cleared after Logout")
	}
}

func TestCompatibilitySynHx(t *testing.T) {
	c := NewCompatibility(2)
	if c.Generation() != ClientSynHx {
		t.Fatalf("got %v, want ClientSynHx", c.Generation())
	}
}

func TestCompatibilityUnknownBeforeLogin(t *testing.T) {
	c := NewCompatibility(0)
	if c.Generation() != ClientUnknown {
		t.Fatalf("got %v, want ClientUnknown", c.Generation())
	}
}

func TestCompatibilityHotline19VsHotline85(t *testing.T) {
	c1 := NewCompatibility(0)
	c1.RecordLoginVersion(190)
	if c1.Generation() != ClientHotline19 {
		t.Fatalf("got %v, want ClientHotline19", c1.Generation())
	}

	c2 := NewCompatibility(0)
	c2.RecordLoginVersion(150)
	if c2.Generation() != ClientHotline85 {
		t.Fatalf("got %v, want ClientHotline85", c2.Generation())
	}
}

func TestCompatibilityRecordLoginVersionIsOneShot(t *testing.T) {
	c := NewCompatibility(0)
	c.RecordLoginVersion(150)
	c.RecordLoginVersion(999)
	if c.Generation() != ClientHotline85 {
		t.Fatal("expected second RecordLoginVersion call to have no effect")
	}
}
