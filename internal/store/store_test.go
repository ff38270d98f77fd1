package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *GORMStore {
	t.Helper()
	s, err := New(&Config{Type: DatabaseTypeSQLite, SQLite: SQLiteConfig{Path: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.CreateUser(ctx, &User{Username: "alice", PasswordHash: "hash", Privileges: 1})
	require.NoError(t, err)

	u, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, uint64(1), u.Privileges)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &User{Username: "bob", PasswordHash: "h"}))
	err := s.CreateUser(ctx, &User{Username: "bob", PasswordHash: "h2"})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFilesForUserSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &User{Username: "alice", PasswordHash: "h"}))
	u, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	for _, f := range []File{
		{Name: "fileC.txt", ObjectKey: "c", Size: 3},
		{Name: "fileA.txt", ObjectKey: "a", Size: 1},
	} {
		require.NoError(t, s.DB().Create(&f).Error)
		require.NoError(t, s.DB().Create(&FileACL{FileID: f.ID, UserID: u.ID}).Error)
	}

	files, err := s.ListFilesForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "fileA.txt", files[0].Name)
	require.Equal(t, "fileC.txt", files[1].Name)
}

func TestNewsPathResolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DB().Create(&NewsBundle{Name: "General"}).Error)
	var bundle NewsBundle
	require.NoError(t, s.DB().Where("name = ?", "General").First(&bundle).Error)

	bundles, err := s.ListBundlesAt(ctx, nil)
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	require.Equal(t, "General", bundles[0].Name)

	found, err := s.FindBundleByName(ctx, nil, "General")
	require.NoError(t, err)
	require.Equal(t, bundle.ID, found.ID)

	_, err = s.FindBundleByName(ctx, nil, "Missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostArticleChainsPrevNext(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.DB().Create(&NewsCategory{Name: "General"}).Error)
	var cat NewsCategory
	require.NoError(t, s.DB().First(&cat).Error)

	first, err := s.PostArticle(ctx, cat.ID, "First", nil, 0, nil, nil)
	require.NoError(t, err)
	require.Nil(t, first.PrevArticleID)

	second, err := s.PostArticle(ctx, cat.ID, "Second", nil, 0, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, second.PrevArticleID)
	require.Equal(t, first.ID, *second.PrevArticleID)

	reloadedFirst, err := s.GetArticle(ctx, cat.ID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, reloadedFirst.NextArticleID)
	require.Equal(t, second.ID, *reloadedFirst.NextArticleID)

	articles, err := s.ListRootArticles(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "First", articles[0].Title)
	require.Equal(t, "Second", articles[1].Title)
}

func TestGetArticleWrongCategoryNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.DB().Create(&NewsCategory{Name: "A"}).Error)
	require.NoError(t, s.DB().Create(&NewsCategory{Name: "B"}).Error)
	var a, b NewsCategory
	require.NoError(t, s.DB().Where("name = ?", "A").First(&a).Error)
	require.NoError(t, s.DB().Where("name = ?", "B").First(&b).Error)

	article, err := s.PostArticle(ctx, a.ID, "Only in A", nil, 0, nil, nil)
	require.NoError(t, err)

	_, err = s.GetArticle(ctx, b.ID, article.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
