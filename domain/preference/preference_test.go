package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Run("neutral to liked", func(t *testing.T) {
		tr := Apply(StateNeutral, KindLike)
		assert.Equal(t, StateLiked, tr.To)
		assert.True(t, tr.Applied)
		assert.False(t, tr.AlreadyInState)
	})

	t.Run("disliked to liked swaps the edge", func(t *testing.T) {
		tr := Apply(StateDisliked, KindLike)
		assert.Equal(t, StateDisliked, tr.From)
		assert.Equal(t, StateLiked, tr.To)
		assert.True(t, tr.Applied)
		assert.False(t, tr.AlreadyInState)
	})

	t.Run("liked to disliked swaps the edge", func(t *testing.T) {
		tr := Apply(StateLiked, KindDislike)
		assert.Equal(t, StateDisliked, tr.To)
		assert.True(t, tr.Applied)
	})

	t.Run("repeat like is a no-op", func(t *testing.T) {
		tr := Apply(StateLiked, KindLike)
		assert.Equal(t, StateLiked, tr.To)
		assert.False(t, tr.Applied)
		assert.True(t, tr.AlreadyInState)
	})

	t.Run("repeat dislike is a no-op", func(t *testing.T) {
		tr := Apply(StateDisliked, KindDislike)
		assert.Equal(t, StateDisliked, tr.To)
		assert.False(t, tr.Applied)
		assert.True(t, tr.AlreadyInState)
	})
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("like")
	require.NoError(t, err)
	assert.Equal(t, KindLike, kind)

	kind, err = ParseKind("dislike")
	require.NoError(t, err)
	assert.Equal(t, KindDislike, kind)

	_, err = ParseKind("meh")
	assert.Error(t, err)

	_, err = ParseKind("")
	assert.Error(t, err)
}

func TestKindTarget(t *testing.T) {
	assert.Equal(t, StateLiked, KindLike.Target())
	assert.Equal(t, StateDisliked, KindDislike.Target())
}

func TestStateIsJudged(t *testing.T) {
	assert.False(t, StateNeutral.IsJudged())
	assert.True(t, StateLiked.IsJudged())
	assert.True(t, StateDisliked.IsJudged())
}
