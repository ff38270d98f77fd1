package privilege

import "testing"

func TestHas(t *testing.T) {
	p := DownloadFile | ReadChat
	if !p.Has(DownloadFile) {
		t.Fatal("expected DownloadFile bit set")
	}
	if p.Has(UploadFile) {
		t.Fatal("did not expect UploadFile bit set")
	}
	if !p.Has(DownloadFile | ReadChat) {
		t.Fatal("expected both bits set")
	}
}

func TestDefaultUserIncludesExpectedBits(t *testing.T) {
	want := []Privileges{
		DownloadFile, ReadChat, SendChat, ShowInList,
		SendPrivateMessage, NewsReadArticle, NewsPostArticle,
		GetClientInfo, ChangeOwnPassword,
	}
	for _, bit := range want {
		if !DefaultUser.Has(bit) {
			t.Fatalf("expected default user privileges to include %v", bit)
		}
	}
	if DefaultUser.Has(DeleteUser) {
		t.Fatal("default user should not have admin privilege DeleteUser")
	}
}

func TestZeroValueHasNoPrivileges(t *testing.T) {
	var p Privileges
	if p.Has(DownloadFile) {
		t.Fatal("zero-value privileges must not satisfy any bit")
	}
}
