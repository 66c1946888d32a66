package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"

	"github.com/BarkinBalci/gearstick-cli/internal/storage"
	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

// historyEnabled reports whether snapshots are kept at all
func (g *Gearstick) historyEnabled() bool {
	return g.cfg.HistoryKeep > 0
}

// historyExists reports whether the history database file exists
func (g *Gearstick) historyExists() bool {
	_, err := os.Stat(g.cfg.HistoryPath)
	return err == nil
}

func (g *Gearstick) openHistory() (*storage.History, error) {
	h, err := storage.OpenHistory(g.cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	if err := h.Initialize(); err != nil {
		h.Close()
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	return h, nil
}

// snapshot records the current document of v and prunes old snapshots
func (g *Gearstick) snapshot(v *vault.Vault) error {
	if !g.historyEnabled() {
		return nil
	}

	doc, err := vault.Marshal(v)
	if err != nil {
		return err
	}

	h, err := g.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	entry, recorded, err := h.Record(doc, v.CredentialCount(), v.NoteCount())
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	if !recorded {
		return nil
	}

	removed, err := h.Prune(g.cfg.HistoryKeep)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	g.log.Debug("snapshot recorded", zap.Uint64("seq", entry.Seq), zap.Int("pruned", removed))
	return nil
}

// History returns recorded snapshots, oldest first
func (g *Gearstick) History(ctx context.Context) ([]storage.SnapshotEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !g.historyExists() {
		return nil, nil
	}

	h, err := g.openHistory()
	if err != nil {
		return nil, err
	}
	defer h.Close()

	return h.List()
}

// snapshotDocument returns the document stored for seq; seq 0 means the latest
func (g *Gearstick) snapshotDocument(seq uint64) (uint64, []byte, error) {
	if !g.historyExists() {
		return 0, nil, ErrNoSnapshots
	}

	h, err := g.openHistory()
	if err != nil {
		return 0, nil, err
	}
	defer h.Close()

	if seq == 0 {
		latest, err := h.Latest()
		if err != nil {
			return 0, nil, err
		}
		if latest == nil {
			return 0, nil, ErrNoSnapshots
		}
		seq = latest.Seq
	}

	doc, err := h.Get(seq)
	if err != nil {
		return 0, nil, fmt.Errorf("snapshot %d: %w", seq, err)
	}
	return seq, doc, nil
}

// Diff compares a snapshot (0 for the latest) with the current vault file.
// It returns an empty string when they are identical.
func (g *Gearstick) Diff(ctx context.Context, seq uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	current, err := storage.ReadFile(g.cfg.VaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotInitialized
		}
		return "", fmt.Errorf("%w: %w", vault.ErrIO, err)
	}

	seq, old, err := g.snapshotDocument(seq)
	if err != nil {
		return "", err
	}

	return GenerateDiff(fmt.Sprintf("snapshot/%d", seq), g.cfg.VaultPath, old, current)
}

// GenerateDiff renders a line diff of two vault documents. Both are
// re-indented first so that every field sits on its own line.
func GenerateDiff(oldName, newName string, oldDoc, newDoc []byte) (string, error) {
	oldStr, err := indentDocument(oldDoc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", oldName, err)
	}
	newStr, err := indentDocument(newDoc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", newName, err)
	}
	if oldStr == newStr {
		return "", nil
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	a, b, lineArray := dmp.DiffLinesToChars(oldStr, newStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s\n", oldName))
	result.WriteString(fmt.Sprintf("+++ %s\n", newName))
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			result.WriteString(prefix)
			result.WriteString(strings.TrimSuffix(line, "\n"))
			result.WriteString("\n")
		}
	}

	return result.String(), nil
}

func indentDocument(doc []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %w", vault.ErrMalformedDocument, err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// Restore replaces the vault with the snapshot seq (implements `gearstick restore`).
// The current vault file, if readable, is snapshotted first so the
// restore itself can be undone.
func (g *Gearstick) Restore(ctx context.Context, seq uint64) (*vault.Vault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seq, doc, err := g.snapshotDocument(seq)
	if err != nil {
		return nil, err
	}

	restored, err := vault.Unmarshal(doc, g.ids)
	if err != nil {
		return nil, fmt.Errorf("snapshot %d: %w", seq, err)
	}

	if current, err := g.Open(); err == nil {
		if err := g.snapshot(current); err != nil {
			return nil, fmt.Errorf("failed to snapshot current vault: %w", err)
		}
	} else if !errors.Is(err, ErrNotInitialized) {
		g.log.Warn("current vault unreadable, restoring without snapshot", zap.Error(err))
	}

	if err := g.Save(restored); err != nil {
		return nil, err
	}
	g.log.Info("vault restored", zap.Uint64("seq", seq))
	return restored, nil
}

// Compact compacts the history database to reclaim unused space
func (g *Gearstick) Compact() error {
	if !g.historyExists() {
		return ErrNoSnapshots
	}

	h, err := g.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	if _, err := h.Prune(g.cfg.HistoryKeep); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return h.Compact()
}
