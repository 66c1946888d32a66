package core

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

func TestSnapshotsRecordedOnSave(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 10)
	_, err := g.Init()
	require.NoError(t, err)

	_, err = g.AddNote(ctx, vault.Note{Name: "a"})
	require.NoError(t, err)
	_, err = g.AddNote(ctx, vault.Note{Name: "b"})
	require.NoError(t, err)

	entries, err := g.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 0, entries[0].Notes)
	assert.Equal(t, 2, entries[2].Notes)
}

func TestHistoryPruned(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 2)
	_, err := g.Init()
	require.NoError(t, err)

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := g.AddNote(ctx, vault.Note{Name: name})
		require.NoError(t, err)
	}

	entries, err := g.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(5), entries[1].Seq)
}

func TestHistoryDisabled(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 0)
	_, err := g.Init()
	require.NoError(t, err)

	entries, err := g.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = os.Stat(g.cfg.HistoryPath)
	assert.True(t, os.IsNotExist(err))

	_, err = g.Diff(ctx, 0)
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestDiffAndRestore(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 10)
	_, err := g.Init()
	require.NoError(t, err)

	c, err := g.AddCredential(ctx, vault.Credential{Name: "Steam", Username: "Eldoritto"})
	require.NoError(t, err)

	out, err := g.Diff(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, out, "latest snapshot matches the vault")

	require.NoError(t, g.Rename(ctx, c.ID(), "Steam Store"))

	out, err = g.Diff(ctx, 2)
	require.NoError(t, err)
	assert.Contains(t, out, `-      "name": "Steam",`)
	assert.Contains(t, out, `+      "name": "Steam Store",`)
	assert.True(t, strings.HasPrefix(out, "--- snapshot/2\n"))

	restored, err := g.Restore(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Steam", restored.Credentials()[0].Name)

	v, err := g.Open()
	require.NoError(t, err)
	assert.Equal(t, "Steam", v.Credentials()[0].Name)
	assert.Equal(t, c.ID(), v.Credentials()[0].ID())

	// The restore is itself a new snapshot
	entries, err := g.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), entries[len(entries)-1].Seq)

	_, err = g.Restore(ctx, 99)
	assert.Error(t, err)
}

func TestCompact(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 10)
	assert.ErrorIs(t, g.Compact(), ErrNoSnapshots)

	_, err := g.Init()
	require.NoError(t, err)
	_, err = g.AddNote(ctx, vault.Note{Name: "a"})
	require.NoError(t, err)

	require.NoError(t, g.Compact())

	entries, err := g.History(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGenerateDiffIdentical(t *testing.T) {
	out, err := GenerateDiff("a", "b", []byte(`{"x":1}`), []byte(`{"x": 1}`))
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = GenerateDiff("a", "b", []byte(`{`), []byte(`{}`))
	assert.ErrorIs(t, err, vault.ErrMalformedDocument)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 10)

	_, err := g.Status(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = g.Init()
	require.NoError(t, err)
	c, err := g.AddCredential(ctx, vault.Credential{Name: "a"})
	require.NoError(t, err)
	_, err = g.AddNote(ctx, vault.Note{Name: "n"})
	require.NoError(t, err)
	require.NoError(t, g.SetFavorite(ctx, []string{c.ID()}, true))

	status, err := g.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Credentials)
	assert.Equal(t, 1, status.Notes)
	assert.Equal(t, 1, status.Favorites)
	assert.False(t, status.Encrypted)
	assert.Equal(t, "0.1.0", status.Version)
	assert.Equal(t, 4, status.Snapshots)
	assert.NotNil(t, status.Git)
}
