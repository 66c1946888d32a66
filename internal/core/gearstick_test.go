package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/gearstick-cli/internal/config"
	"github.com/BarkinBalci/gearstick-cli/internal/ident"
	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

func newTestGearstick(t *testing.T, keep int) *Gearstick {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default("0.1.0")
	cfg.VaultPath = filepath.Join(dir, "vault.json")
	cfg.HistoryPath = cfg.VaultPath + ".history"
	cfg.HistoryKeep = keep
	return New(cfg, WithIDGenerator(ident.NewSequence("id")))
}

func TestInit(t *testing.T) {
	g := newTestGearstick(t, 10)

	v, err := g.Init()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", v.Version())

	_, err = os.Stat(g.VaultPath())
	require.NoError(t, err)

	_, err = g.Init()
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestOpenNotInitialized(t *testing.T) {
	g := newTestGearstick(t, 10)

	v, err := g.Open()
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = g.AddNote(context.Background(), vault.Note{Name: "x"})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestOpenMalformedIsNotEmpty(t *testing.T) {
	g := newTestGearstick(t, 10)
	require.NoError(t, os.WriteFile(g.VaultPath(), []byte(`{"salt":0}`), 0600))

	v, err := g.Open()
	assert.Nil(t, v)
	assert.ErrorIs(t, err, vault.ErrMalformedDocument)
}

func TestAddEditRemove(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 10)
	_, err := g.Init()
	require.NoError(t, err)

	steam, err := g.AddCredential(ctx, vault.Credential{Name: "Steam", Username: "Eldoritto", Password: "123321852@", URL: "https://store.steampowered.com/"})
	require.NoError(t, err)
	epic, err := g.AddCredential(ctx, vault.Credential{Name: "Epic", Username: "BB-8", Password: "123211312@", URL: "https://store.epicgames.com/en-US/"})
	require.NoError(t, err)
	note, err := g.AddNote(ctx, vault.Note{Name: "Test", Content: "This is a test note"})
	require.NoError(t, err)
	assert.NotEqual(t, steam.ID(), epic.ID())

	require.NoError(t, g.Rename(ctx, epic.ID(), "Epic Games"))
	require.NoError(t, g.SetFavorite(ctx, []string{epic.ID(), note.ID()}, true))

	c, n, err := g.Lookup(epic.ID())
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.Equal(t, "Epic Games", c.Name)
	assert.True(t, c.Favorite)

	require.NoError(t, g.Sort(ctx))
	v, err := g.Open()
	require.NoError(t, err)
	creds := v.Credentials()
	require.Len(t, creds, 2)
	assert.Equal(t, "Epic Games", creds[0].Name)
	assert.Equal(t, "Steam", creds[1].Name)

	require.NoError(t, g.Remove(ctx, []string{steam.ID(), note.ID()}))
	v, err = g.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, v.CredentialCount())
	assert.Equal(t, 0, v.NoteCount())
}

func TestRemoveUnknownLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 0)
	_, err := g.Init()
	require.NoError(t, err)
	c, err := g.AddCredential(ctx, vault.Credential{Name: "keep"})
	require.NoError(t, err)

	before, err := os.ReadFile(g.VaultPath())
	require.NoError(t, err)

	err = g.Remove(ctx, []string{c.ID(), "missing"})
	assert.True(t, errors.Is(err, vault.ErrNotFound))

	after, err := os.ReadFile(g.VaultPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, _, err = g.Lookup("missing")
	assert.ErrorIs(t, err, vault.ErrNotFound)
	assert.ErrorIs(t, g.Rename(ctx, "missing", "x"), vault.ErrNotFound)
}

func TestSetFavoriteUnknownLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	g := newTestGearstick(t, 10)
	_, err := g.Init()
	require.NoError(t, err)
	c, err := g.AddCredential(ctx, vault.Credential{Name: "keep"})
	require.NoError(t, err)

	before, err := os.ReadFile(g.VaultPath())
	require.NoError(t, err)
	snapshots, err := g.History(ctx)
	require.NoError(t, err)

	err = g.SetFavorite(ctx, []string{c.ID(), "missing"}, true)
	assert.ErrorIs(t, err, vault.ErrNotFound)

	after, err := os.ReadFile(g.VaultPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	again, err := g.History(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(snapshots))

	found, _, err := g.Lookup(c.ID())
	require.NoError(t, err)
	assert.False(t, found.Favorite)
}

func TestUpdateHonorsCancelledContext(t *testing.T) {
	g := newTestGearstick(t, 10)
	_, err := g.Init()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.AddNote(ctx, vault.Note{Name: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
