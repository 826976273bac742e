package shortener_test

import (
	"strings"
	"testing"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDGenerator(t *testing.T) {
	t.Run("generates codes of the requested length", func(t *testing.T) {
		generate := shortener.NewUUIDGenerator(8)

		for range 100 {
			assert.Len(t, generate(), 8)
		}
	})

	t.Run("only uses the base62 alphabet", func(t *testing.T) {
		generate := shortener.NewUUIDGenerator(8)

		for range 100 {
			code := generate()

			for _, r := range code {
				assert.Contains(t, shortener.Alphabet, string(r))
			}
		}
	})

	t.Run("does not repeat across a small sample", func(t *testing.T) {
		generate := shortener.NewUUIDGenerator(8)

		seen := make(map[string]bool)

		for range 1000 {
			code := generate()

			assert.False(t, seen[code], "duplicate code %q", code)
			seen[code] = true
		}
	})

	t.Run("supports shorter lengths", func(t *testing.T) {
		generate := shortener.NewUUIDGenerator(5)

		assert.Len(t, generate(), 5)
	})
}

func TestNewNanoIDGenerator(t *testing.T) {
	t.Run("generates codes of the requested length", func(t *testing.T) {
		generate, err := shortener.NewNanoIDGenerator(8)
		require.NoError(t, err)

		code := generate()

		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(shortener.Alphabet, r))
		}
	})

	t.Run("rejects invalid lengths", func(t *testing.T) {
		_, err := shortener.NewNanoIDGenerator(0)

		assert.Error(t, err)
	})
}
