package secret

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	for _, n := range []int{MinLength, DefaultLength, MaxLength} {
		pw, err := GeneratePassword(n)
		require.NoError(t, err)
		assert.Len(t, pw, n)
		for _, c := range pw {
			assert.True(t, bytes.IndexByte([]byte(Alphabet), c) >= 0, "unexpected char %q", c)
		}
	}

	a, err := GeneratePassword(DefaultLength)
	require.NoError(t, err)
	b, err := GeneratePassword(DefaultLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGeneratePasswordLength(t *testing.T) {
	_, err := GeneratePassword(MinLength - 1)
	assert.True(t, errors.Is(err, ErrInvalidLength))
	_, err = GeneratePassword(MaxLength + 1)
	assert.True(t, errors.Is(err, ErrInvalidLength))
}

func TestClearBytes(t *testing.T) {
	b := []byte("hunter2")
	ClearBytes(b)
	assert.Equal(t, make([]byte, 7), b)
}

func TestConstantTimeCompare(t *testing.T) {
	assert.True(t, ConstantTimeCompare([]byte("abc"), []byte("abc")))
	assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("abd")))
	assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("ab")))
}
