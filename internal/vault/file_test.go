package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/gearstick-cli/internal/ident"
)

func TestSaveAndLoadScenario(t *testing.T) {
	ids := ident.NewSequence("id")
	path := filepath.Join(t.TempDir(), "Test.json")

	v := New(testVersion, ids)
	v.AddCredential(Credential{Name: "Steam", Username: "Eldoritto", Password: "123321852@", URL: "https://store.steampowered.com/"})
	v.AddCredential(Credential{Name: "Epic", Username: "BB-8", Password: "123211312@", URL: "https://store.epicgames.com/en-US/"})
	v.AddNote(Note{Name: "Test", Content: "This is a test note"})
	v.Credential(1).Name = "Epic Games"

	require.NoError(t, v.Save(path))

	loaded, err := Load(path, ids)
	require.NoError(t, err)
	assert.Equal(t, v, loaded)

	assert.Equal(t, []string{"Steam", "Epic Games"}, names(loaded.Credentials()))
	notes := loaded.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Test", notes[0].Name)
	assert.True(t, loaded.Salt().IsZero())
	assert.True(t, loaded.Nonce().IsZero())
	assert.False(t, loaded.Encrypted())

	// Favorite sort on the reloaded vault
	i, ok := loaded.FindCredential(loaded.Credentials()[1].ID())
	require.True(t, ok)
	loaded.Credential(i).Favorite = true
	loaded.SortCredentials()
	assert.Equal(t, []string{"Epic Games", "Steam"}, names(loaded.Credentials()))
}

func TestRoundTripEmptyVault(t *testing.T) {
	ids := ident.NewSequence("id")
	path := filepath.Join(t.TempDir(), "empty.json")

	v := New(testVersion, ids)
	require.NoError(t, v.Save(path))

	loaded, err := Load(path, ids)
	require.NoError(t, err)
	assert.Equal(t, v, loaded)
	assert.Equal(t, 0, loaded.CredentialCount())
}

func TestSaveOverwrites(t *testing.T) {
	ids := ident.NewSequence("id")
	path := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage that is longer than the new document.........................................................................................."), 0644))

	v := New(testVersion, ids)
	require.NoError(t, v.Save(path))

	loaded, err := Load(path, ids)
	require.NoError(t, err)
	assert.Equal(t, v, loaded)
}

func TestLoadRelativePath(t *testing.T) {
	dir := t.TempDir()
	chdirTest(t, dir)

	ids := ident.NewSequence("id")
	v := New(testVersion, ids)
	v.AddNote(Note{Name: "rel"})
	require.NoError(t, v.Save("vault.json"))

	_, err := os.Stat(filepath.Join(dir, "vault.json"))
	require.NoError(t, err)

	loaded, err := Load("vault.json", ids)
	require.NoError(t, err)
	assert.Equal(t, v, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "missing.json"), ident.UUID{})
	assert.Nil(t, v)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	v, err := Load(path, ident.UUID{})
	assert.Nil(t, v)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
	assert.False(t, errors.Is(err, ErrIO))
}

func TestSaveUnwritablePath(t *testing.T) {
	v := New(testVersion, ident.UUID{})
	err := v.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "vault.json"))
	assert.True(t, errors.Is(err, ErrIO))
}

func TestSaveInvalidUTF8LeavesFileUntouched(t *testing.T) {
	ids := ident.NewSequence("id")
	path := filepath.Join(t.TempDir(), "vault.json")

	v := New(testVersion, ids)
	v.AddCredential(Credential{Name: "Steam", Username: "Eldoritto", Password: "123321852@"})
	require.NoError(t, v.Save(path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	v.Credential(0).Password = "p\xffw"
	err = v.Save(path)
	assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
	assert.False(t, errors.Is(err, ErrIO))
	assert.Equal(t, "p\xffw", v.Credential(0).Password)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	doc := "{\"salt\":0,\"nonce\":0,\"encrypted\":false,\"credentials\":[{\"id\":\"a\",\"name\":\"b\",\"favorite\":false,\"username\":\"c\",\"password\":\"p\xffw\",\"url\":\"e\"}],\"notes\":[],\"version\":\"x\"}"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	v, err := Load(path, ident.UUID{})
	assert.Nil(t, v)
	assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
}

// chdirTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
