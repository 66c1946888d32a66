// Package vault implements the gearstick vault: an ordered collection of
// credentials and notes plus inert encryption metadata, persisted as a
// single JSON document.
//
// Records are created only through AddCredential and AddNote, which
// assign an identifier from the injected ident.Generator. Identifiers
// are immutable afterwards. Collections keep insertion order until
// SortCredentials or SortNotes is called.
//
// The salt, nonce and encrypted fields are reserved for future
// encryption support. Nothing in this package sets or interprets them;
// secrets are stored as plaintext.
package vault
