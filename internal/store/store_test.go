package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/talingdeck/internal/deck"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "decks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openTempStore(t)
	ctx := context.Background()
	snap := deck.Snapshot{Cards: []string{"Garuda", "Garuda", "Lotus_Life"}, PlayerName: "Nok", DeckName: "Sky"}

	require.NoError(t, st.Save(ctx, "d1", snap))
	got, err := st.Load(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	snap.Cards = snap.Cards[:1]
	require.NoError(t, st.Save(ctx, "d1", snap))
	got, err = st.Load(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Garuda"}, got.Cards)
}

func TestSaveEmptyDeckKeepsCardsArray(t *testing.T) {
	st := openTempStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "d1", deck.Snapshot{}))
	got, err := st.Load(ctx, "d1")
	require.NoError(t, err)
	assert.NotNil(t, got.Cards)
	assert.Empty(t, got.Cards)
}

func TestLoadMissing(t *testing.T) {
	st := openTempStore(t)
	_, err := st.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	st := openTempStore(t)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, "d1", deck.Snapshot{}))

	require.NoError(t, st.Delete(ctx, "d1"))
	assert.ErrorIs(t, st.Delete(ctx, "d1"), ErrNotFound)
	_, err := st.Load(ctx, "d1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.db")
	ctx := context.Background()

	st, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, "d1", deck.Snapshot{Cards: []string{"A"}}))
	require.NoError(t, st.Close())

	st, err = Open(ctx, path)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Load(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.Cards)
}

func TestUpSection(t *testing.T) {
	sql := "-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (x INT);\n", upSection(sql))
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}
