package pathcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeIndexInverse(t *testing.T) {
	require.Len(t, safeCharacters, 64)

	for i := 0; i < len(safeCharacters); i++ {
		v, ok := IndexOf(safeCharacters[i])
		require.True(t, ok, "symbol %q should be in the alphabet", safeCharacters[i])
		assert.Equal(t, byte(i), v)
		assert.Equal(t, safeCharacters[i], Symbol(v))
	}

	for c := 0; c < 256; c++ {
		v, ok := IndexOf(byte(c))
		if !ok {
			assert.Equal(t, invalidIndex, v)
			assert.False(t, strings.ContainsRune(safeCharacters, rune(c)), "byte %d is in the alphabet but has no index", c)
			continue
		}
		require.Less(t, v, byte(64))
		assert.Equal(t, byte(c), safeCharacters[v])
	}
}

func TestAlphabetIsUrlSafe(t *testing.T) {
	for _, c := range []byte(Alphabet()) {
		isAlnum := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		assert.True(t, isAlnum || c == '_' || c == '-', "unexpected symbol %q", c)
	}
}
