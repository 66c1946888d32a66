// Package core provides the main gearstick vault operations.
//
// Core operations include:
//   - Init: Create a new empty vault file
//   - AddCredential/AddNote: Store new records
//   - Remove, Rename, SetFavorite, Sort: Edit stored records
//   - History, Diff, Restore, Compact: Work with saved snapshots
//   - Status: Summarize the vault and its git exposure
//
// Every mutating operation loads the vault, applies the change and
// saves the whole document. Each successful save also records a
// snapshot in the history database unless history is disabled.
package core
