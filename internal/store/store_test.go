package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/quill-tools/quill/internal/store"
	"github.com/quill-tools/quill/internal/testutil"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(testutil.NewTestDB(t))
}

func TestStore_AddAndList(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("remember the milk", "errand", false)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, added.ID)

	notes, err := s.List("", 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "remember the milk", notes[0].Text)
	require.Equal(t, "errand", notes[0].Tag)
	require.False(t, notes[0].Pinned)
}

func TestStore_ListFiltersByTag(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("a", "work", false)
	require.NoError(t, err)
	_, err = s.Add("b", "home", false)
	require.NoError(t, err)

	notes, err := s.List("work", 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "a", notes[0].Text)
}

func TestStore_ListPinnedFirst(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("plain", "", false)
	require.NoError(t, err)
	_, err = s.Add("important", "", true)
	require.NoError(t, err)

	notes, err := s.List("", 10)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "important", notes[0].Text)
}

func TestStore_ListHonorsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.Add("note", "", false)
		require.NoError(t, err)
	}

	notes, err := s.List("", 3)
	require.NoError(t, err)
	require.Len(t, notes, 3)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("to delete", "", false)
	require.NoError(t, err)

	removed, err := s.Remove(added.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.Remove(added.ID)
	require.NoError(t, err)
	require.False(t, removed)

	count, err := s.Count()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, store.Migrate(db))
	require.NoError(t, store.Migrate(db))
}
