// Package git checks how gearstick's plaintext files relate to a git repository.
//
// Vault and history files hold secrets in clear text, so committing them
// leaks every stored password. The checks shell out to the git binary
// and report tracked or unignored files; a missing git binary or a
// directory outside any repository simply yields IsRepo == false.
package git
