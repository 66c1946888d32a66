package core

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BarkinBalci/gearstick-cli/internal/git"
)

// StatusInfo contains status information
type StatusInfo struct {
	VaultPath   string
	Size        int64
	Modified    time.Time
	Version     string
	Encrypted   bool
	Credentials int
	Notes       int
	Favorites   int

	Snapshots    int
	LastSnapshot time.Time

	Git *git.GitStatus
}

// Status returns the current status of the vault
func (g *Gearstick) Status(ctx context.Context) (*StatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(g.cfg.VaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}

	v, err := g.Open()
	if err != nil {
		return nil, err
	}

	status := &StatusInfo{
		VaultPath:   g.cfg.VaultPath,
		Size:        info.Size(),
		Modified:    info.ModTime(),
		Version:     v.Version(),
		Encrypted:   v.Encrypted(),
		Credentials: v.CredentialCount(),
		Notes:       v.NoteCount(),
	}
	for _, c := range v.Credentials() {
		if c.Favorite {
			status.Favorites++
		}
	}
	for _, n := range v.Notes() {
		if n.Favorite {
			status.Favorites++
		}
	}

	snapshots, err := g.History(ctx)
	if err != nil {
		return nil, err
	}
	status.Snapshots = len(snapshots)
	if len(snapshots) > 0 {
		status.LastSnapshot = snapshots[len(snapshots)-1].Created
	}

	files := []string{g.cfg.VaultPath}
	if g.historyExists() {
		files = append(files, g.cfg.HistoryPath)
	}
	workDir := filepath.Dir(absPath(g.cfg.VaultPath))
	for i, f := range files {
		files[i] = absPath(f)
	}
	status.Git = git.CheckFiles(workDir, files)

	return status, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
