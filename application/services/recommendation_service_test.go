package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/preference"
	"cinegraph-backend/domain/recommend"
	"cinegraph-backend/infrastructure/persistence/memory"
	"cinegraph-backend/pkg/observability"
)

const serviceTestYear = 2026

type serviceFixture struct {
	service *RecommendationService
	movies  *memory.MovieStore
	prefs   *memory.PreferenceStore
}

func newServiceFixture(movies ...catalog.Movie) *serviceFixture {
	movieStore := memory.NewMovieStore()
	movieStore.Seed(movies...)
	prefStore := memory.NewPreferenceStore()

	svc := NewRecommendationService(
		movieStore,
		prefStore,
		observability.NewTracer("test"),
		zap.NewNop(),
	).WithClock(func() time.Time {
		return time.Date(serviceTestYear, time.June, 1, 0, 0, 0, 0, time.UTC)
	})

	return &serviceFixture{service: svc, movies: movieStore, prefs: prefStore}
}

func (f *serviceFixture) judge(t *testing.T, user, movieName string, state preference.State) {
	t.Helper()
	username, err := catalog.NewUsername(user)
	require.NoError(t, err)
	_, err = f.prefs.SetState(context.Background(), username, movieName, state)
	require.NoError(t, err)
}

func username(t *testing.T, raw string) catalog.Username {
	t.Helper()
	u, err := catalog.NewUsername(raw)
	require.NoError(t, err)
	return u
}

func TestGetRecommendations(t *testing.T) {
	t.Run("user with no likes gets the popularity fallback", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "Middling", Genre: "Drama", Year: 2001, Quality: catalog.QualityValue(7)},
			catalog.Movie{Name: "Acclaimed", Genre: "Drama", Year: 1999, Quality: catalog.QualityValue(9)},
			catalog.Movie{Name: "Weak", Genre: "Drama", Year: 2003, Quality: catalog.QualityValue(5)},
		)

		result, err := f.service.GetRecommendations(context.Background(), username(t, "alice"))
		require.NoError(t, err)

		assert.Equal(t, recommend.ProvenanceFallback, result.Provenance)
		require.Len(t, result.Movies, 3)
		assert.Equal(t, "Acclaimed", result.Movies[0].Movie.Name)
		assert.Equal(t, "Middling", result.Movies[1].Movie.Name)
		assert.Equal(t, "Weak", result.Movies[2].Movie.Name)
	})

	t.Run("likes drive personalized picks and the liked movie is excluded", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "Seed", Genre: "Crime", Director: "Mann", Year: 1995, Quality: catalog.QualityValue(8)},
			catalog.Movie{Name: "SameGenreAndDirector", Genre: "Crime", Director: "Mann", Year: 2006, Quality: catalog.QualityValue(7)},
			catalog.Movie{Name: "SameGenre", Genre: "Crime", Director: "Other", Year: 1990, Quality: catalog.QualityValue(6)},
			catalog.Movie{Name: "Unrelated", Genre: "Musical", Director: "Nobody", Year: 1980, Quality: catalog.QualityValue(9.5)},
		)
		f.judge(t, "alice", "Seed", preference.StateLiked)

		result, err := f.service.GetRecommendations(context.Background(), username(t, "alice"))
		require.NoError(t, err)

		assert.Equal(t, recommend.ProvenanceRecommended, result.Provenance)
		require.Len(t, result.Movies, 2)
		assert.Equal(t, "SameGenreAndDirector", result.Movies[0].Movie.Name)
		assert.Equal(t, "SameGenre", result.Movies[1].Movie.Name)
		for _, sm := range result.Movies {
			assert.NotEqual(t, "Seed", sm.Movie.Name)
			assert.NotEqual(t, "Unrelated", sm.Movie.Name)
		}
	})

	t.Run("disliked movies never come back as candidates", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "Seed", Genre: "Crime", Year: 1995, Quality: catalog.QualityValue(8)},
			catalog.Movie{Name: "Rejected", Genre: "Crime", Year: 2000, Quality: catalog.QualityValue(9)},
			catalog.Movie{Name: "Fresh", Genre: "Crime", Year: 2002, Quality: catalog.QualityValue(6)},
		)
		f.judge(t, "alice", "Seed", preference.StateLiked)
		f.judge(t, "alice", "Rejected", preference.StateDisliked)

		result, err := f.service.GetRecommendations(context.Background(), username(t, "alice"))
		require.NoError(t, err)

		require.Len(t, result.Movies, 1)
		assert.Equal(t, "Fresh", result.Movies[0].Movie.Name)
	})

	t.Run("judgments are scoped per user", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "Seed", Genre: "Crime", Year: 1995, Quality: catalog.QualityValue(8)},
			catalog.Movie{Name: "Candidate", Genre: "Crime", Year: 2000, Quality: catalog.QualityValue(7)},
		)
		f.judge(t, "alice", "Seed", preference.StateLiked)

		aliceResult, err := f.service.GetRecommendations(context.Background(), username(t, "alice"))
		require.NoError(t, err)
		assert.Equal(t, recommend.ProvenanceRecommended, aliceResult.Provenance)

		bobResult, err := f.service.GetRecommendations(context.Background(), username(t, "bob"))
		require.NoError(t, err)
		assert.Equal(t, recommend.ProvenanceFallback, bobResult.Provenance)
		assert.Len(t, bobResult.Movies, 2)
	})
}

func TestGetHomepageFeed(t *testing.T) {
	t.Run("movie in both lists appears once tagged recommended", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "Seed", Genre: "Crime", Year: 1995, Quality: catalog.QualityValue(8)},
			catalog.Movie{Name: "Overlap", Genre: "Crime", Year: 2000, Quality: catalog.QualityValue(9.8)},
			catalog.Movie{Name: "PopularOnly", Genre: "Musical", Year: 1970, Quality: catalog.QualityValue(9)},
		)
		f.judge(t, "alice", "Seed", preference.StateLiked)

		feed, err := f.service.GetHomepageFeed(context.Background(), username(t, "alice"))
		require.NoError(t, err)

		names := make(map[string]int)
		for _, entry := range feed.Entries {
			names[entry.Movie.Movie.Name]++
		}
		assert.Equal(t, 1, names["Overlap"])

		for _, entry := range feed.Entries {
			switch entry.Movie.Movie.Name {
			case "Overlap":
				assert.Equal(t, recommend.ProvenanceRecommended, entry.Provenance)
			case "PopularOnly":
				assert.Equal(t, recommend.ProvenancePopular, entry.Provenance)
			}
		}

		assert.Equal(t, 1, feed.Stats.PersonalizedCount)
		assert.Equal(t, 1, feed.Stats.PopularCount)
		assert.Equal(t, 2, feed.Stats.TotalCount)
		assert.Equal(t, len(feed.Entries), feed.Stats.TotalCount)
	})

	t.Run("zero-likes feed carries fallback provenance", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "A", Genre: "Drama", Year: 2001, Quality: catalog.QualityValue(9)},
			catalog.Movie{Name: "B", Genre: "Drama", Year: 2002, Quality: catalog.QualityValue(7)},
		)

		feed, err := f.service.GetHomepageFeed(context.Background(), username(t, "nobody"))
		require.NoError(t, err)

		require.NotEmpty(t, feed.Entries)
		for _, entry := range feed.Entries {
			assert.Equal(t, recommend.ProvenanceFallback, entry.Provenance)
		}
	})

	t.Run("entries come back score descending", func(t *testing.T) {
		f := newServiceFixture(
			catalog.Movie{Name: "Seed", Genre: "Crime", Director: "Mann", Year: 1995, Quality: catalog.QualityValue(8)},
			catalog.Movie{Name: "Strong", Genre: "Crime", Director: "Mann", Year: 2020, Quality: catalog.QualityValue(8)},
			catalog.Movie{Name: "Mild", Genre: "Crime", Director: "Other", Year: 1990, Quality: catalog.QualityValue(5)},
			catalog.Movie{Name: "PopularOnly", Genre: "Musical", Year: 1970, Quality: catalog.QualityValue(9)},
		)
		f.judge(t, "alice", "Seed", preference.StateLiked)

		feed, err := f.service.GetHomepageFeed(context.Background(), username(t, "alice"))
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(feed.Entries), 2)
		for i := 1; i < len(feed.Entries); i++ {
			assert.GreaterOrEqual(t, feed.Entries[i-1].Movie.Score, feed.Entries[i].Movie.Score)
		}
		assert.Equal(t, "Strong", feed.Entries[0].Movie.Movie.Name)
	})
}
