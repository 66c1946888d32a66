package vault

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BarkinBalci/gearstick-cli/internal/ident"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrIO                = errors.New("vault i/o failure")
	ErrMalformedDocument = errors.New("malformed vault document")
)

// Credential is a username/password record
type Credential struct {
	id       string
	Name     string
	Favorite bool
	Username string
	Password string
	URL      string
}

// ID returns the identifier assigned when the credential was added
func (c Credential) ID() string {
	return c.id
}

// Note is a free-text record
type Note struct {
	id       string
	Name     string
	Favorite bool
	Content  string
}

// ID returns the identifier assigned when the note was added
func (n Note) ID() string {
	return n.id
}

// Vault owns all credentials and notes
type Vault struct {
	salt        Uint128
	nonce       Uint128
	encrypted   bool
	credentials []Credential
	notes       []Note
	version     string

	ids ident.Generator
}

// New creates an empty vault stamped with the given build version
func New(version string, ids ident.Generator) *Vault {
	return &Vault{
		credentials: make([]Credential, 0),
		notes:       make([]Note, 0),
		version:     version,
		ids:         ids,
	}
}

func (v *Vault) Salt() Uint128   { return v.salt }
func (v *Vault) Nonce() Uint128  { return v.nonce }
func (v *Vault) Encrypted() bool { return v.encrypted }
func (v *Vault) Version() string { return v.version }

// AddCredential assigns a fresh identifier to c and appends it.
// The returned pointer is valid until the next mutation of the collection.
func (v *Vault) AddCredential(c Credential) *Credential {
	c.id = v.ids.NewID()
	v.credentials = append(v.credentials, c)
	return &v.credentials[len(v.credentials)-1]
}

// AddNote assigns a fresh identifier to n and appends it.
// The returned pointer is valid until the next mutation of the collection.
func (v *Vault) AddNote(n Note) *Note {
	n.id = v.ids.NewID()
	v.notes = append(v.notes, n)
	return &v.notes[len(v.notes)-1]
}

// Credential returns the credential at position i for in-place updates
func (v *Vault) Credential(i int) *Credential {
	return &v.credentials[i]
}

// Note returns the note at position i for in-place updates
func (v *Vault) Note(i int) *Note {
	return &v.notes[i]
}

// Credentials returns a copy of the credentials in their current order
func (v *Vault) Credentials() []Credential {
	return slices.Clone(v.credentials)
}

// Notes returns a copy of the notes in their current order
func (v *Vault) Notes() []Note {
	return slices.Clone(v.notes)
}

func (v *Vault) CredentialCount() int { return len(v.credentials) }
func (v *Vault) NoteCount() int       { return len(v.notes) }

// FindCredential returns the position of the first credential with the given id
func (v *Vault) FindCredential(id string) (int, bool) {
	for i := range v.credentials {
		if v.credentials[i].id == id {
			return i, true
		}
	}
	return -1, false
}

// FindNote returns the position of the first note with the given id
func (v *Vault) FindNote(id string) (int, bool) {
	for i := range v.notes {
		if v.notes[i].id == id {
			return i, true
		}
	}
	return -1, false
}

// RemoveCredentialByID removes the credential with the given id.
// The collection is left unchanged when no credential matches.
func (v *Vault) RemoveCredentialByID(id string) error {
	i, ok := v.FindCredential(id)
	if !ok {
		return fmt.Errorf("credential %s: %w", id, ErrNotFound)
	}
	v.credentials = slices.Delete(v.credentials, i, i+1)
	return nil
}

// RemoveNoteByID removes the note with the given id.
// The collection is left unchanged when no note matches.
func (v *Vault) RemoveNoteByID(id string) error {
	i, ok := v.FindNote(id)
	if !ok {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	v.notes = slices.Delete(v.notes, i, i+1)
	return nil
}

// SortCredentials orders credentials favorites first, then by name
func (v *Vault) SortCredentials() {
	slices.SortStableFunc(v.credentials, func(a, b Credential) int {
		return compareRecords(a.Favorite, a.Name, b.Favorite, b.Name)
	})
}

// SortNotes orders notes favorites first, then by name
func (v *Vault) SortNotes() {
	slices.SortStableFunc(v.notes, func(a, b Note) int {
		return compareRecords(a.Favorite, a.Name, b.Favorite, b.Name)
	})
}

// compareRecords compares names byte-wise, no locale collation
func compareRecords(aFav bool, aName string, bFav bool, bName string) int {
	if aFav != bFav {
		if aFav {
			return -1
		}
		return 1
	}
	return strings.Compare(aName, bName)
}
