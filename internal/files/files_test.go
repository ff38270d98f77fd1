package files

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mxdserver/mxd/internal/privilege"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/store"
	"github.com/mxdserver/mxd/internal/wire"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.New(&store.Config{Type: store.DatabaseTypeSQLite, SQLite: store.SQLiteConfig{Path: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestListFileNamesSortedAscending(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	db := st.(*store.GORMStore).DB()

	require.NoError(t, st.CreateUser(ctx, &store.User{Username: "alice", PasswordHash: "h"}))
	u, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	for _, f := range []store.File{
		{Name: "zeta.bin", ObjectKey: "z", Size: 1},
		{Name: "alpha.bin", ObjectKey: "a", Size: 1},
	} {
		require.NoError(t, db.Create(&f).Error)
		require.NoError(t, db.Create(&store.FileACL{FileID: f.ID, UserID: u.ID}).Error)
	}

	svc := NewService(st)
	block, err := svc.ListFileNames(ctx, u.ID)
	require.NoError(t, err)

	var names []string
	for _, p := range block {
		require.Equal(t, wire.FieldFileName.Wire(), p.ID.Wire())
		names = append(names, string(p.Value))
	}
	require.Equal(t, []string{"alpha.bin", "zeta.bin"}, names)
}

func TestHandleGetFileNameListRequiresAuthenticatedSession(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	sess := session.New()
	_, err := svc.handleGetFileNameList(context.Background(), sess, wire.ParamMap{})
	require.Error(t, err)
}

func TestHandleGetFileNameListReturnsUserScopedFiles(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	db := st.(*store.GORMStore).DB()

	require.NoError(t, st.CreateUser(ctx, &store.User{Username: "bob", PasswordHash: "h"}))
	u, err := st.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)

	f := store.File{Name: "report.pdf", ObjectKey: "k", Size: 10}
	require.NoError(t, db.Create(&f).Error)
	require.NoError(t, db.Create(&store.FileACL{FileID: f.ID, UserID: u.ID}).Error)

	svc := NewService(st)
	sess := session.New()
	sess.Login(u.ID, privilege.DownloadFile)

	block, err := svc.handleGetFileNameList(ctx, sess, wire.ParamMap{})
	require.NoError(t, err)
	require.Len(t, block, 1)
	require.Equal(t, "report.pdf", string(block[0].Value))
}
