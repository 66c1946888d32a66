package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
)

// History lists recorded snapshots, newest first
func History(ctx context.Context, g *core.Gearstick) {
	entries, err := g.History(ctx)
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		fmt.Println("No snapshots recorded")
		return
	}

	fmt.Println("Snapshots:")
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("  %4d  %s  %d credential(s), %d note(s)  %s\n",
			e.Seq, e.Created.Format(time.RFC3339), e.Credentials, e.Notes, formatSize(int64(e.Size)))
	}
}

// Diff compares a snapshot (0 for the latest) with the current vault
func Diff(ctx context.Context, g *core.Gearstick, seq uint64) {
	out, err := g.Diff(ctx, seq)
	if err != nil {
		HandleError(err)
	}

	if out == "" {
		fmt.Println("No changes detected")
		return
	}
	fmt.Print(out)
}

// Restore replaces the vault with a snapshot. Without force it asks
// for confirmation when running on a terminal.
func Restore(ctx context.Context, g *core.Gearstick, seq uint64, force bool) {
	if !force && core.StdinIsTerminal() {
		fmt.Printf("Replace %s with snapshot %d? [y/N] ", g.VaultPath(), seq)
		answer, err := core.ReadLine(os.Stdin)
		if err != nil {
			HandleError(err)
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted")
			return
		}
	}

	v, err := g.Restore(ctx, seq)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("✓ Restored snapshot %d (%d credential(s), %d note(s))\n", seq, v.CredentialCount(), v.NoteCount())
}

// Compact compacts the history database to reclaim unused space
func Compact(g *core.Gearstick) {
	info, err := os.Stat(g.HistoryPath())
	if err != nil {
		HandleError(core.ErrNoSnapshots)
	}
	sizeBefore := info.Size()

	if err := g.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(g.HistoryPath())
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
