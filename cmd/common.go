package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
	"github.com/BarkinBalci/gearstick-cli/internal/secret"
	"github.com/BarkinBalci/gearstick-cli/internal/storage"
	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

// GetSecret retrieves a credential password from the environment or
// prompts for it twice. The caller is responsible for calling
// secret.ClearBytes on the returned value.
func GetSecret() ([]byte, error) {
	value, ok, err := core.SecretFromEnv()
	if ok {
		return value, err
	}

	prompter := core.NewPrompter()
	if !prompter.IsTerminal() {
		return nil, fmt.Errorf("no terminal to prompt for a password; set %s or use -generate", core.SecretEnv)
	}
	return prompter.Confirm("Password")
}

// GetSecretOrExit is like GetSecret but exits on error
func GetSecretOrExit() []byte {
	value, err := GetSecret()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return value
}

// GeneratedSecretOrExit generates a random password of the given length
func GeneratedSecretOrExit(length int) []byte {
	value, err := secret.GeneratePassword(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return value
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: vault not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'gearstick init' first\n")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: vault file already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'gearstick status' to see current state\n")
	case errors.Is(err, core.ErrNoSnapshots):
		fmt.Fprintf(os.Stderr, "Error: no snapshots recorded\n")
	case errors.Is(err, storage.ErrSnapshotNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'gearstick history' to list snapshots\n")
	case errors.Is(err, vault.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'gearstick ls' to list record ids\n")
	case errors.Is(err, vault.ErrMalformedDocument):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "The vault file was not modified; 'gearstick restore' can roll back to a snapshot\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// maskSecret replaces a non-empty secret with a fixed-width mask so
// that its length is not revealed
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// favoriteMark returns the list marker for a record
func favoriteMark(favorite bool) string {
	if favorite {
		return "*"
	}
	return " "
}

// formatSize formats a file size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
