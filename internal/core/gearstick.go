package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/BarkinBalci/gearstick-cli/internal/config"
	"github.com/BarkinBalci/gearstick-cli/internal/ident"
	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

var (
	ErrNotInitialized = errors.New("vault not initialized")
	ErrAlreadyExists  = errors.New("vault already exists")
	ErrNoSnapshots    = errors.New("no snapshots recorded")
)

// Gearstick manages a vault file and its snapshot history
type Gearstick struct {
	cfg *config.Config
	log *zap.Logger
	ids ident.Generator
}

// Option configures a Gearstick
type Option func(*Gearstick)

// WithIDGenerator replaces the default UUID generator
func WithIDGenerator(ids ident.Generator) Option {
	return func(g *Gearstick) {
		g.ids = ids
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(log *zap.Logger) Option {
	return func(g *Gearstick) {
		g.log = log
	}
}

// New creates a Gearstick for the vault described by cfg
func New(cfg *config.Config, opts ...Option) *Gearstick {
	g := &Gearstick{
		cfg: cfg,
		log: zap.NewNop(),
		ids: ident.UUID{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(zap.String("vault", cfg.VaultPath))
	return g
}

// VaultPath returns the path of the managed vault file
func (g *Gearstick) VaultPath() string {
	return g.cfg.VaultPath
}

// HistoryPath returns the path of the snapshot database
func (g *Gearstick) HistoryPath() string {
	return g.cfg.HistoryPath
}

// Init creates a new empty vault file (implements `gearstick init`)
func (g *Gearstick) Init() (*vault.Vault, error) {
	if _, err := os.Stat(g.cfg.VaultPath); err == nil {
		return nil, ErrAlreadyExists
	}

	v := vault.New(g.cfg.Version, g.ids)
	if err := g.Save(v); err != nil {
		return nil, err
	}
	g.log.Info("vault created", zap.String("version", g.cfg.Version))
	return v, nil
}

// Open loads the vault file. A missing file is reported as
// ErrNotInitialized; it never produces an empty vault.
func (g *Gearstick) Open() (*vault.Vault, error) {
	v, err := vault.Load(g.cfg.VaultPath, g.ids)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	g.log.Debug("vault loaded",
		zap.Int("credentials", v.CredentialCount()),
		zap.Int("notes", v.NoteCount()),
	)
	return v, nil
}

// Save writes the vault file and records a history snapshot.
// Snapshot failures are logged but do not fail the save.
func (g *Gearstick) Save(v *vault.Vault) error {
	if err := v.Save(g.cfg.VaultPath); err != nil {
		return err
	}
	g.log.Debug("vault saved")

	if err := g.snapshot(v); err != nil {
		g.log.Warn("failed to record snapshot", zap.Error(err))
	}
	return nil
}

// Update loads the vault, applies fn and saves the result.
// Nothing is written when fn returns an error.
func (g *Gearstick) Update(ctx context.Context, fn func(v *vault.Vault) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v, err := g.Open()
	if err != nil {
		return err
	}
	if err := fn(v); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return g.Save(v)
}

// AddCredential stores a new credential and returns it with its id
func (g *Gearstick) AddCredential(ctx context.Context, c vault.Credential) (vault.Credential, error) {
	var added vault.Credential
	err := g.Update(ctx, func(v *vault.Vault) error {
		added = *v.AddCredential(c)
		return nil
	})
	return added, err
}

// AddNote stores a new note and returns it with its id
func (g *Gearstick) AddNote(ctx context.Context, n vault.Note) (vault.Note, error) {
	var added vault.Note
	err := g.Update(ctx, func(v *vault.Vault) error {
		added = *v.AddNote(n)
		return nil
	})
	return added, err
}

// Remove removes records by id (implements `gearstick rm`). Each id is
// looked up among credentials first, then notes. If any id is unknown
// the vault is left untouched.
func (g *Gearstick) Remove(ctx context.Context, ids []string) error {
	return g.Update(ctx, func(v *vault.Vault) error {
		for _, id := range ids {
			if err := v.RemoveCredentialByID(id); err == nil {
				continue
			}
			if err := v.RemoveNoteByID(id); err != nil {
				return fmt.Errorf("record %s: %w", id, vault.ErrNotFound)
			}
		}
		return nil
	})
}

// Rename changes the display name of a record
func (g *Gearstick) Rename(ctx context.Context, id, name string) error {
	return g.Update(ctx, func(v *vault.Vault) error {
		return editRecord(v, id, func(n *string, _ *bool) {
			*n = name
		})
	})
}

// SetFavorite sets or clears the favorite flag of records. Like Remove,
// it is all-or-nothing: an unknown id leaves the vault untouched.
func (g *Gearstick) SetFavorite(ctx context.Context, ids []string, favorite bool) error {
	return g.Update(ctx, func(v *vault.Vault) error {
		for _, id := range ids {
			err := editRecord(v, id, func(_ *string, f *bool) {
				*f = favorite
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Sort applies the favorite-first order to both collections and saves it
func (g *Gearstick) Sort(ctx context.Context) error {
	return g.Update(ctx, func(v *vault.Vault) error {
		v.SortCredentials()
		v.SortNotes()
		return nil
	})
}

// Lookup finds a record by id. Exactly one of the returned pointers is
// non-nil on success.
func (g *Gearstick) Lookup(id string) (*vault.Credential, *vault.Note, error) {
	v, err := g.Open()
	if err != nil {
		return nil, nil, err
	}
	if i, ok := v.FindCredential(id); ok {
		c := *v.Credential(i)
		return &c, nil, nil
	}
	if i, ok := v.FindNote(id); ok {
		n := *v.Note(i)
		return nil, &n, nil
	}
	return nil, nil, fmt.Errorf("record %s: %w", id, vault.ErrNotFound)
}

// editRecord applies fn to the name and favorite fields of the record with id
func editRecord(v *vault.Vault, id string, fn func(name *string, favorite *bool)) error {
	if i, ok := v.FindCredential(id); ok {
		c := v.Credential(i)
		fn(&c.Name, &c.Favorite)
		return nil
	}
	if i, ok := v.FindNote(id); ok {
		n := v.Note(i)
		fn(&n.Name, &n.Favorite)
		return nil
	}
	return fmt.Errorf("record %s: %w", id, vault.ErrNotFound)
}
