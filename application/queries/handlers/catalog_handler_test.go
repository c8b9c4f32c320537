package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinegraph-backend/application/queries"
)

func TestListMoviesHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("no filters returns the whole catalog", func(t *testing.T) {
		f := newQueryFixture(t)

		handler := NewListMoviesHandler(f.movies, zap.NewNop())
		result, err := handler.Handle(ctx, queries.ListMoviesQuery{})
		require.NoError(t, err)

		listed := result.(*queries.ListMoviesResult)
		assert.Equal(t, 3, listed.Total)
		assert.Len(t, listed.Movies, 3)
	})

	t.Run("genre filter is case-insensitive", func(t *testing.T) {
		f := newQueryFixture(t)

		handler := NewListMoviesHandler(f.movies, zap.NewNop())
		result, err := handler.Handle(ctx, queries.ListMoviesQuery{Genre: "crime"})
		require.NoError(t, err)

		listed := result.(*queries.ListMoviesResult)
		require.Equal(t, 2, listed.Total)
		for _, m := range listed.Movies {
			assert.Equal(t, "Crime", m.Genre)
		}
	})

	t.Run("search matches a name substring", func(t *testing.T) {
		f := newQueryFixture(t)

		handler := NewListMoviesHandler(f.movies, zap.NewNop())
		result, err := handler.Handle(ctx, queries.ListMoviesQuery{Search: "coll"})
		require.NoError(t, err)

		listed := result.(*queries.ListMoviesResult)
		require.Equal(t, 1, listed.Total)
		assert.Equal(t, "Collateral", listed.Movies[0].Name)
	})
}

func TestListGenresHandler(t *testing.T) {
	f := newQueryFixture(t)

	handler := NewListGenresHandler(f.movies, zap.NewNop())
	result, err := handler.Handle(context.Background(), queries.ListGenresQuery{})
	require.NoError(t, err)

	listed := result.(*queries.ListGenresResult)
	assert.Equal(t, []string{"Crime", "Musical"}, listed.Genres)
}
