package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/BarkinBalci/gearstick-cli/internal/ident"
)

// document mirrors the on-disk layout for encoding
type document struct {
	Salt        Uint128          `json:"salt"`
	Nonce       Uint128          `json:"nonce"`
	Encrypted   bool             `json:"encrypted"`
	Credentials []credentialJSON `json:"credentials"`
	Notes       []noteJSON       `json:"notes"`
	Version     string           `json:"version"`
}

type credentialJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
}

type noteJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
	Content  string `json:"content"`
}

// Marshal renders the whole vault as a compact JSON document. Text
// fields must be valid UTF-8, otherwise encoding would replace the
// offending bytes and the document would no longer match the vault.
func Marshal(v *Vault) ([]byte, error) {
	doc := document{
		Salt:        v.salt,
		Nonce:       v.nonce,
		Encrypted:   v.encrypted,
		Credentials: make([]credentialJSON, 0, len(v.credentials)),
		Notes:       make([]noteJSON, 0, len(v.notes)),
		Version:     v.version,
	}
	if err := checkText("", "version", v.version); err != nil {
		return nil, err
	}

	for i, c := range v.credentials {
		at := fmt.Sprintf("credentials[%d]", i)
		fields := []struct{ name, value string }{
			{"id", c.id}, {"name", c.Name}, {"username", c.Username}, {"password", c.Password}, {"url", c.URL},
		}
		for _, f := range fields {
			if err := checkText(at, f.name, f.value); err != nil {
				return nil, err
			}
		}
		doc.Credentials = append(doc.Credentials, credentialJSON{
			ID:       c.id,
			Name:     c.Name,
			Favorite: c.Favorite,
			Username: c.Username,
			Password: c.Password,
			URL:      c.URL,
		})
	}

	for i, n := range v.notes {
		at := fmt.Sprintf("notes[%d]", i)
		fields := []struct{ name, value string }{
			{"id", n.id}, {"name", n.Name}, {"content", n.Content},
		}
		for _, f := range fields {
			if err := checkText(at, f.name, f.value); err != nil {
				return nil, err
			}
		}
		doc.Notes = append(doc.Notes, noteJSON{
			ID:       n.id,
			Name:     n.Name,
			Favorite: n.Favorite,
			Content:  n.Content,
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vault: %w", err)
	}
	return data, nil
}

// object holds the members of one JSON object keyed by their exact name.
// encoding/json matches struct fields case-insensitively, so required
// fields are looked up here instead.
type object struct {
	at      string
	members map[string]json.RawMessage
}

func decodeObject(at string, data []byte) (object, error) {
	obj := object{at: at}
	if err := json.Unmarshal(data, &obj.members); err != nil {
		return obj, malformed(at, "", err)
	}
	if obj.members == nil {
		return obj, malformed(at, "", fmt.Errorf("expected an object, got null"))
	}
	return obj, nil
}

// member decodes the required member name into dst. A missing member and
// an explicit null are both reported as missing.
func member[T any](obj object, name string, dst *T) error {
	raw, ok := obj.members[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return missingField(obj.at, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return malformed(obj.at, name, err)
	}
	return nil
}

// Unmarshal parses a vault document. Every field must be present under
// its exact name; unknown fields are ignored. Errors wrap
// ErrMalformedDocument.
func Unmarshal(data []byte, ids ident.Generator) (*Vault, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8", ErrMalformedDocument)
	}

	root, err := decodeObject("", data)
	if err != nil {
		return nil, err
	}

	v := &Vault{ids: ids}
	var creds, notes []json.RawMessage
	if err := member(root, "salt", &v.salt); err != nil {
		return nil, err
	}
	if err := member(root, "nonce", &v.nonce); err != nil {
		return nil, err
	}
	if err := member(root, "encrypted", &v.encrypted); err != nil {
		return nil, err
	}
	if err := member(root, "credentials", &creds); err != nil {
		return nil, err
	}
	if err := member(root, "notes", &notes); err != nil {
		return nil, err
	}
	if err := member(root, "version", &v.version); err != nil {
		return nil, err
	}

	v.credentials = make([]Credential, 0, len(creds))
	for i, raw := range creds {
		obj, err := decodeObject(fmt.Sprintf("credentials[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		var c Credential
		for _, err := range []error{
			member(obj, "id", &c.id),
			member(obj, "name", &c.Name),
			member(obj, "favorite", &c.Favorite),
			member(obj, "username", &c.Username),
			member(obj, "password", &c.Password),
			member(obj, "url", &c.URL),
		} {
			if err != nil {
				return nil, err
			}
		}
		v.credentials = append(v.credentials, c)
	}

	v.notes = make([]Note, 0, len(notes))
	for i, raw := range notes {
		obj, err := decodeObject(fmt.Sprintf("notes[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		var n Note
		for _, err := range []error{
			member(obj, "id", &n.id),
			member(obj, "name", &n.Name),
			member(obj, "favorite", &n.Favorite),
			member(obj, "content", &n.Content),
		} {
			if err != nil {
				return nil, err
			}
		}
		v.notes = append(v.notes, n)
	}

	return v, nil
}

func checkText(at, field, value string) error {
	if utf8.ValidString(value) {
		return nil
	}
	return malformed(at, field, fmt.Errorf("invalid UTF-8"))
}

func missingField(at, field string) error {
	if at == "" {
		return fmt.Errorf("%w: missing field %q", ErrMalformedDocument, field)
	}
	return fmt.Errorf("%w: %s: missing field %q", ErrMalformedDocument, at, field)
}

func malformed(at, field string, err error) error {
	switch {
	case at == "" && field == "":
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	case at == "":
		return fmt.Errorf("%w: %s: %w", ErrMalformedDocument, field, err)
	case field == "":
		return fmt.Errorf("%w: %s: %w", ErrMalformedDocument, at, err)
	}
	return fmt.Errorf("%w: %s.%s: %w", ErrMalformedDocument, at, field, err)
}
