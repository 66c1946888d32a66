package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
)

// Rename changes the display name of a record
func Rename(ctx context.Context, g *core.Gearstick, id, name string) {
	if err := g.Rename(ctx, id, name); err != nil {
		HandleError(err)
	}
	fmt.Printf("✓ Renamed %s to %s\n", id, name)
}

// Favorite sets or clears the favorite flag of records
func Favorite(ctx context.Context, g *core.Gearstick, ids []string, favorite bool) {
	if len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one record id is required\n")
		os.Exit(1)
	}
	if err := g.SetFavorite(ctx, ids, favorite); err != nil {
		HandleError(err)
	}
	if favorite {
		fmt.Printf("✓ Marked %d record(s) as favorite\n", len(ids))
	} else {
		fmt.Printf("✓ Cleared favorite on %d record(s)\n", len(ids))
	}
}

// Sort persists the favorite-first order of both collections
func Sort(ctx context.Context, g *core.Gearstick) {
	if err := g.Sort(ctx); err != nil {
		HandleError(err)
	}
	fmt.Println("✓ Sorted credentials and notes")
}
