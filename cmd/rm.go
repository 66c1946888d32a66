package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
)

// Remove removes records from the vault by id
func Remove(ctx context.Context, g *core.Gearstick, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one record id\n")
		fmt.Fprintf(os.Stderr, "Usage: gearstick rm <id> [id...]\n")
		os.Exit(1)
	}

	if err := g.Remove(ctx, ids); err != nil {
		HandleError(err)
	}

	for _, id := range ids {
		fmt.Printf("removed: %s\n", id)
	}
}
