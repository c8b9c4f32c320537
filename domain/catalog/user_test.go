package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsername(t *testing.T) {
	t.Run("lowercases for case-insensitive identity", func(t *testing.T) {
		u, err := NewUsername("MovieBuff")
		require.NoError(t, err)
		assert.Equal(t, "moviebuff", u.String())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		u, err := NewUsername("  alice  ")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.String())
	})

	t.Run("mixed case usernames are the same identity", func(t *testing.T) {
		a, err := NewUsername("Alice")
		require.NoError(t, err)
		b, err := NewUsername("ALICE")
		require.NoError(t, err)
		assert.True(t, a.Equals(b))
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := NewUsername("")
		assert.Error(t, err)
		_, err = NewUsername("   ")
		assert.Error(t, err)
	})

	t.Run("rejects overlong", func(t *testing.T) {
		_, err := NewUsername(strings.Repeat("a", 65))
		assert.Error(t, err)
	})
}

func TestMovieQuality(t *testing.T) {
	t.Run("missing quality reads as zero", func(t *testing.T) {
		m := Movie{Name: "Unrated"}
		assert.False(t, m.HasQuality())
		assert.Equal(t, 0.0, m.QualityOrZero())
	})

	t.Run("present quality round-trips", func(t *testing.T) {
		m := Movie{Name: "Rated", Quality: QualityValue(7.5)}
		assert.True(t, m.HasQuality())
		assert.Equal(t, 7.5, m.QualityOrZero())
	})
}

func TestMovieValidate(t *testing.T) {
	assert.Error(t, Movie{}.Validate())
	assert.Error(t, Movie{Name: "X", Quality: QualityValue(11)}.Validate())
	assert.NoError(t, Movie{Name: "X", Quality: QualityValue(10)}.Validate())
	assert.NoError(t, Movie{Name: "X"}.Validate())
}
