package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinegraph-backend/application/queries"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/preference"
	"cinegraph-backend/infrastructure/persistence/memory"
	pkgerrors "cinegraph-backend/pkg/errors"
)

type queryFixture struct {
	movies  *memory.MovieStore
	prefs   *memory.PreferenceStore
	friends *memory.FriendshipStore
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()

	movies := memory.NewMovieStore()
	movies.Seed(
		catalog.Movie{Name: "Heat", Genre: "Crime", Director: "Mann", Year: 1995, Quality: catalog.QualityValue(8.3)},
		catalog.Movie{Name: "Collateral", Genre: "Crime", Director: "Mann", Year: 2004, Quality: catalog.QualityValue(7.5)},
		catalog.Movie{Name: "Cats", Genre: "Musical", Year: 2019, Quality: catalog.QualityValue(2.8)},
	)

	return &queryFixture{
		movies:  movies,
		prefs:   memory.NewPreferenceStore(),
		friends: memory.NewFriendshipStore(),
	}
}

func (f *queryFixture) judge(t *testing.T, user, movieName string, state preference.State) {
	t.Helper()
	u, err := catalog.NewUsername(user)
	require.NoError(t, err)
	_, err = f.prefs.SetState(context.Background(), u, movieName, state)
	require.NoError(t, err)
}

func TestGetUserStatsHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("counts judgments and friends", func(t *testing.T) {
		f := newQueryFixture(t)
		f.judge(t, "alice", "Heat", preference.StateLiked)
		f.judge(t, "alice", "Collateral", preference.StateLiked)
		f.judge(t, "alice", "Cats", preference.StateDisliked)

		alice, _ := catalog.NewUsername("alice")
		bob, _ := catalog.NewUsername("bob")
		require.NoError(t, f.friends.AddFriendship(ctx, alice, bob))

		handler := NewGetUserStatsHandler(f.prefs, f.friends, zap.NewNop())
		result, err := handler.Handle(ctx, queries.GetUserStatsQuery{Username: "alice"})
		require.NoError(t, err)

		stats := result.(*queries.GetUserStatsResult)
		assert.Equal(t, 2, stats.LikesCount)
		assert.Equal(t, 1, stats.DislikesCount)
		assert.Equal(t, 1, stats.FriendsCount)
	})

	t.Run("unknown user reads as all zero", func(t *testing.T) {
		f := newQueryFixture(t)

		handler := NewGetUserStatsHandler(f.prefs, f.friends, zap.NewNop())
		result, err := handler.Handle(ctx, queries.GetUserStatsQuery{Username: "nobody"})
		require.NoError(t, err)

		stats := result.(*queries.GetUserStatsResult)
		assert.Zero(t, stats.LikesCount)
		assert.Zero(t, stats.DislikesCount)
		assert.Zero(t, stats.FriendsCount)
	})
}

func TestListJudgedMoviesHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("returns full catalog entries for one state", func(t *testing.T) {
		f := newQueryFixture(t)
		f.judge(t, "alice", "Heat", preference.StateLiked)
		f.judge(t, "alice", "Cats", preference.StateDisliked)

		handler := NewListJudgedMoviesHandler(f.movies, f.prefs, zap.NewNop())
		result, err := handler.Handle(ctx, queries.ListJudgedMoviesQuery{Username: "alice", State: "liked"})
		require.NoError(t, err)

		listed := result.(*queries.ListJudgedMoviesResult)
		require.Len(t, listed.Movies, 1)
		assert.Equal(t, "Heat", listed.Movies[0].Name)
		assert.Equal(t, "Mann", listed.Movies[0].Director)
	})

	t.Run("skips judgments whose movie left the catalog", func(t *testing.T) {
		f := newQueryFixture(t)
		f.judge(t, "alice", "Withdrawn", preference.StateLiked)
		f.judge(t, "alice", "Heat", preference.StateLiked)

		handler := NewListJudgedMoviesHandler(f.movies, f.prefs, zap.NewNop())
		result, err := handler.Handle(ctx, queries.ListJudgedMoviesQuery{Username: "alice", State: "liked"})
		require.NoError(t, err)

		listed := result.(*queries.ListJudgedMoviesResult)
		require.Len(t, listed.Movies, 1)
		assert.Equal(t, "Heat", listed.Movies[0].Name)
	})
}

func TestGetPreferenceStatusHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("unjudged pair on a known movie reads neutral", func(t *testing.T) {
		f := newQueryFixture(t)

		handler := NewGetPreferenceStatusHandler(f.movies, f.prefs, zap.NewNop())
		result, err := handler.Handle(ctx, queries.GetPreferenceStatusQuery{Username: "alice", MovieName: "Heat"})
		require.NoError(t, err)

		status := result.(*queries.GetPreferenceStatusResult)
		assert.Equal(t, string(preference.StateNeutral), status.Status)
	})

	t.Run("judged pair reflects its state", func(t *testing.T) {
		f := newQueryFixture(t)
		f.judge(t, "alice", "Heat", preference.StateDisliked)

		handler := NewGetPreferenceStatusHandler(f.movies, f.prefs, zap.NewNop())
		result, err := handler.Handle(ctx, queries.GetPreferenceStatusQuery{Username: "alice", MovieName: "Heat"})
		require.NoError(t, err)

		status := result.(*queries.GetPreferenceStatusResult)
		assert.Equal(t, string(preference.StateDisliked), status.Status)
	})

	t.Run("unknown movie is a hard failure", func(t *testing.T) {
		f := newQueryFixture(t)

		handler := NewGetPreferenceStatusHandler(f.movies, f.prefs, zap.NewNop())
		_, err := handler.Handle(ctx, queries.GetPreferenceStatusQuery{Username: "alice", MovieName: "No Such Film"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsMovieNotFound(err))
	})
}
