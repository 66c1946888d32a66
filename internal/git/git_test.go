package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Skipf("git init failed: %v", err)
	}
	return dir
}

func TestCheckFilesOutsideRepo(t *testing.T) {
	status := CheckFiles(t.TempDir(), []string{"vault.json"})
	if status.IsRepo {
		t.Skip("temp dir is inside a git repository")
	}
	if FormatGitStatus(status) != "" {
		t.Error("Expected empty output outside a repository")
	}
}

func TestCheckFilesIgnoredAndUnignored(t *testing.T) {
	dir := initRepo(t)

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("vault.json\n"), 0644); err != nil {
		t.Fatalf("Failed to write .gitignore: %v", err)
	}
	for _, name := range []string{"vault.json", "vault.json.history"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	status := CheckFiles(dir, []string{filepath.Join(dir, "vault.json"), "vault.json.history"})
	if !status.IsRepo {
		t.Fatal("Expected a repository")
	}
	if len(status.Ignored) != 1 || status.Ignored[0] != "vault.json" {
		t.Errorf("Unexpected ignored list: %v", status.Ignored)
	}
	if len(status.Unignored) != 1 || status.Unignored[0] != "vault.json.history" {
		t.Errorf("Unexpected unignored list: %v", status.Unignored)
	}

	out := FormatGitStatus(status)
	if !strings.Contains(out, "warning: vault.json.history not in .gitignore") {
		t.Errorf("Missing warning in output:\n%s", out)
	}
}
