package confcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := Generate(8)
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestEqual(t *testing.T) {
	code := "ABC123"
	assert.True(t, Equal(&code, "ABC123"))
	assert.False(t, Equal(&code, "abc123"))
	assert.False(t, Equal(&code, "ABC12"))
	assert.False(t, Equal(nil, ""))
	empty := ""
	assert.False(t, Equal(&empty, ""))
}
