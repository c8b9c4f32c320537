package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinegraph-backend/application/commands"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/events"
	"cinegraph-backend/domain/preference"
	"cinegraph-backend/infrastructure/persistence/memory"
	pkgerrors "cinegraph-backend/pkg/errors"
)

type prefFixture struct {
	handler  *SetPreferenceHandler
	clearer  *ClearPreferenceHandler
	prefs    *memory.PreferenceStore
	recorder *memory.EventRecorder
}

func newPrefFixture(t *testing.T) *prefFixture {
	t.Helper()

	users := memory.NewUserStore()
	alice, err := catalog.NewUsername("alice")
	require.NoError(t, err)
	users.Seed(catalog.User{Username: alice})

	movies := memory.NewMovieStore()
	movies.Seed(
		catalog.Movie{Name: "Heat", Genre: "Crime", Director: "Mann", Year: 1995, Quality: catalog.QualityValue(8.3)},
		catalog.Movie{Name: "Collateral", Genre: "Crime", Director: "Mann", Year: 2004, Quality: catalog.QualityValue(7.5)},
	)

	prefs := memory.NewPreferenceStore()
	recorder := memory.NewEventRecorder()
	logger := zap.NewNop()

	return &prefFixture{
		handler:  NewSetPreferenceHandler(users, movies, prefs, recorder, logger),
		clearer:  NewClearPreferenceHandler(users, prefs, logger),
		prefs:    prefs,
		recorder: recorder,
	}
}

func TestSetPreferenceHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("first like applies and publishes an event", func(t *testing.T) {
		f := newPrefFixture(t)

		result, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "Heat", Kind: "like",
		})
		require.NoError(t, err)

		assert.True(t, result.Applied)
		assert.False(t, result.AlreadyInState)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "liked", data["status"])

		recorded := f.recorder.Recorded()
		require.Len(t, recorded, 1)
		event, ok := recorded[0].(events.PreferenceChanged)
		require.True(t, ok)
		assert.Equal(t, "alice", event.Username)
		assert.Equal(t, "Heat", event.MovieName)
		assert.Equal(t, preference.StateNeutral, event.From)
		assert.Equal(t, preference.StateLiked, event.To)
	})

	t.Run("repeating a like is a no-op and publishes nothing", func(t *testing.T) {
		f := newPrefFixture(t)

		_, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "Heat", Kind: "like",
		})
		require.NoError(t, err)

		result, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "Heat", Kind: "like",
		})
		require.NoError(t, err)

		assert.False(t, result.Applied)
		assert.True(t, result.AlreadyInState)
		assert.Len(t, f.recorder.Recorded(), 1)
	})

	t.Run("dislike after like swaps the state in one write", func(t *testing.T) {
		f := newPrefFixture(t)

		_, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "Heat", Kind: "like",
		})
		require.NoError(t, err)

		result, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "Heat", Kind: "dislike",
		})
		require.NoError(t, err)

		assert.True(t, result.Applied)
		assert.False(t, result.AlreadyInState)

		alice, err := catalog.NewUsername("alice")
		require.NoError(t, err)
		state, err := f.prefs.GetState(ctx, alice, "Heat")
		require.NoError(t, err)
		assert.Equal(t, preference.StateDisliked, state)

		recorded := f.recorder.Recorded()
		require.Len(t, recorded, 2)
		event := recorded[1].(events.PreferenceChanged)
		assert.Equal(t, preference.StateLiked, event.From)
		assert.Equal(t, preference.StateDisliked, event.To)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		f := newPrefFixture(t)

		_, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "ghost", MovieName: "Heat", Kind: "like",
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsUserNotFound(err))
		assert.Empty(t, f.recorder.Recorded())
	})

	t.Run("unknown movie is rejected", func(t *testing.T) {
		f := newPrefFixture(t)

		_, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "No Such Film", Kind: "like",
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsMovieNotFound(err))
	})

	t.Run("username matching is case-insensitive", func(t *testing.T) {
		f := newPrefFixture(t)

		result, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "ALICE", MovieName: "Heat", Kind: "like",
		})
		require.NoError(t, err)
		assert.True(t, result.Applied)

		alice, err := catalog.NewUsername("alice")
		require.NoError(t, err)
		state, err := f.prefs.GetState(ctx, alice, "Heat")
		require.NoError(t, err)
		assert.Equal(t, preference.StateLiked, state)
	})
}

func TestClearPreferenceHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("clearing a judged pair applies", func(t *testing.T) {
		f := newPrefFixture(t)

		_, err := f.handler.Handle(ctx, commands.SetPreferenceCommand{
			Username: "alice", MovieName: "Heat", Kind: "like",
		})
		require.NoError(t, err)

		result, err := f.clearer.Handle(ctx, commands.ClearPreferenceCommand{
			Username: "alice", MovieName: "Heat",
		})
		require.NoError(t, err)

		assert.True(t, result.Applied)
		assert.False(t, result.AlreadyInState)

		alice, err := catalog.NewUsername("alice")
		require.NoError(t, err)
		state, err := f.prefs.GetState(ctx, alice, "Heat")
		require.NoError(t, err)
		assert.Equal(t, preference.StateNeutral, state)
	})

	t.Run("clearing a neutral pair reports already in state", func(t *testing.T) {
		f := newPrefFixture(t)

		result, err := f.clearer.Handle(ctx, commands.ClearPreferenceCommand{
			Username: "alice", MovieName: "Heat",
		})
		require.NoError(t, err)

		assert.False(t, result.Applied)
		assert.True(t, result.AlreadyInState)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		f := newPrefFixture(t)

		_, err := f.clearer.Handle(ctx, commands.ClearPreferenceCommand{
			Username: "ghost", MovieName: "Heat",
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsUserNotFound(err))
	})
}
