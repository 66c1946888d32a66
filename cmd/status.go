package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
	"github.com/BarkinBalci/gearstick-cli/internal/git"
)

// Status shows the current state of the vault
func Status(ctx context.Context, g *core.Gearstick) {
	status, err := g.Status(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNotInitialized) {
			fmt.Printf("No vault found at %s\n", g.VaultPath())
			fmt.Println("Run 'gearstick init' to create one")
			return
		}
		HandleError(err)
	}

	fmt.Printf("Vault: %s (%s, modified %s)\n", status.VaultPath, formatSize(status.Size), status.Modified.Format(time.RFC3339))
	fmt.Printf("Format version: %s\n", status.Version)
	if status.Encrypted {
		fmt.Println("Encrypted: yes (not supported by this build)")
	} else {
		fmt.Println("Encrypted: no")
	}
	fmt.Printf("Credentials: %d\n", status.Credentials)
	fmt.Printf("Notes: %d\n", status.Notes)
	fmt.Printf("Favorites: %d\n", status.Favorites)

	if status.Snapshots > 0 {
		fmt.Printf("Snapshots: %d (last %s)\n", status.Snapshots, status.LastSnapshot.Format(time.RFC3339))
	} else {
		fmt.Println("Snapshots: none")
	}

	fmt.Print(git.FormatGitStatus(status.Git))
}
