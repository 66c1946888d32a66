package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers each prompt with the next entry
func scriptedPrompter(entries ...string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	p := &Prompter{Out: &out}
	p.readPassword = func(int) ([]byte, error) {
		if len(entries) == 0 {
			return nil, errors.New("no input")
		}
		next := entries[0]
		entries = entries[1:]
		return []byte(next), nil
	}
	return p, &out
}

func TestPrompterConfirm(t *testing.T) {
	p, out := scriptedPrompter("hunter2", "hunter2")
	value, err := p.Confirm("Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(value))
	assert.Contains(t, out.String(), "Password: ")
	assert.Contains(t, out.String(), "Confirm password: ")
	assert.NotContains(t, out.String(), "hunter2")
}

func TestPrompterConfirmRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    error
	}{
		{"mismatch", []string{"one", "two"}, ErrSecretMismatch},
		{"empty", []string{""}, ErrEmptySecret},
		{"invalid UTF-8", []string{"p\xffw", "p\xffw"}, ErrInvalidSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := scriptedPrompter(tt.entries...)
			value, err := p.Confirm("Password")
			assert.Nil(t, value)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPrompterReadError(t *testing.T) {
	p, _ := scriptedPrompter("only once")
	_, err := p.Confirm("Password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirm password")
}

func TestSecretFromEnv(t *testing.T) {
	t.Setenv(SecretEnv, "")
	_, ok, err := SecretFromEnv()
	assert.False(t, ok)
	assert.NoError(t, err)

	t.Setenv(SecretEnv, "s3cret")
	value, ok, err := SecretFromEnv()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3cret", string(value))

	t.Setenv(SecretEnv, "p\xffw")
	_, ok, err = SecretFromEnv()
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestReadLine(t *testing.T) {
	line, err := ReadLine(strings.NewReader("yes\r\nno\n"))
	require.NoError(t, err)
	assert.Equal(t, "yes", line)

	line, err = ReadLine(strings.NewReader("tail"))
	require.NoError(t, err)
	assert.Equal(t, "tail", line)
}
