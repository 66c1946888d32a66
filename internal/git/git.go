package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitStatus contains git integration status information
type GitStatus struct {
	IsRepo    bool
	Tracked   []string // Plaintext files tracked by git (bad)
	Unignored []string // Plaintext files not in .gitignore (warning)
	Ignored   []string // Plaintext files in .gitignore (good)
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()

	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	err := cmd.Run()

	// git check-ignore returns exit code 0 if file is ignored
	return err == nil
}

// CheckFiles checks the git status of the given plaintext files.
// Paths are taken relative to workDir.
func CheckFiles(workDir string, files []string) *GitStatus {
	status := &GitStatus{}

	if !IsGitRepo(workDir) {
		return status
	}
	status.IsRepo = true

	for _, file := range files {
		if rel, err := filepath.Rel(workDir, file); err == nil && filepath.IsAbs(file) {
			file = rel
		}
		if IsTracked(workDir, file) {
			status.Tracked = append(status.Tracked, file)
			continue
		}
		if IsIgnored(workDir, file) {
			status.Ignored = append(status.Ignored, file)
		} else {
			status.Unignored = append(status.Unignored, file)
		}
	}

	return status
}

// FormatGitStatus formats git status for display
func FormatGitStatus(status *GitStatus) string {
	if !status.IsRepo {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit Integration:\n")

	if len(status.Tracked) > 0 {
		result.WriteString(fmt.Sprintf("   error: %d plaintext file(s) tracked by git:\n", len(status.Tracked)))
		for _, file := range status.Tracked {
			result.WriteString(fmt.Sprintf("      - %s (run: git rm --cached %s)\n", file, file))
		}
	}

	for _, file := range status.Unignored {
		result.WriteString(fmt.Sprintf("   warning: %s not in .gitignore (add to .gitignore)\n", file))
	}

	if len(status.Tracked) == 0 && len(status.Unignored) == 0 {
		result.WriteString("   ok: vault files are ignored by git\n")
	}

	return result.String()
}
