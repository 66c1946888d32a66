package vault

import (
	"fmt"
	"path/filepath"

	"github.com/BarkinBalci/gearstick-cli/internal/ident"
	"github.com/BarkinBalci/gearstick-cli/internal/storage"
)

// FilePerm is the mode used when writing vault files
const FilePerm = 0600

// Load reads and parses the vault file at path. Relative paths are
// resolved against the working directory. A failed load never yields a
// vault: the error wraps ErrIO or ErrMalformedDocument.
func Load(path string, ids ident.Generator) (*Vault, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	data, err := storage.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	v, err := Unmarshal(data, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return v, nil
}

// Save writes the whole vault to path, replacing any existing file.
// The write goes through a temporary file and a rename, so a crash
// leaves either the old or the new document in place.
func (v *Vault) Save(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	data, err := Marshal(v)
	if err != nil {
		return err
	}

	if err := storage.WriteFileAtomic(abs, data, FilePerm); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
