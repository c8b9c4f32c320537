package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cinegraph-backend/domain/catalog"
)

const testYear = 2026

func movieWithQuality(name, genre, director string, quality float64, year int) catalog.Movie {
	return catalog.Movie{
		Name:     name,
		Genre:    genre,
		Director: director,
		Quality:  catalog.QualityValue(quality),
		Year:     year,
	}
}

func TestScore(t *testing.T) {
	liked := []catalog.Movie{
		{Name: "Liked One", Genre: "Drama", Director: "X", Company: "Acme", Star: "S", Year: 1990},
	}
	profile := BuildAffinityProfile(liked)

	t.Run("genre plus quality", func(t *testing.T) {
		a := movieWithQuality("A", "Drama", "", 6, 1990)
		assert.InDelta(t, 11.8, Score(a, profile, testYear), 1e-9)
	})

	t.Run("director plus quality", func(t *testing.T) {
		b := movieWithQuality("B", "Comedy", "X", 9, 1990)
		assert.InDelta(t, 7.7, Score(b, profile, testYear), 1e-9)
	})

	t.Run("all attributes match", func(t *testing.T) {
		m := catalog.Movie{
			Name:     "Full Match",
			Genre:    "Drama",
			Director: "X",
			Company:  "Acme",
			Star:     "S",
			Quality:  catalog.QualityValue(10),
			Year:     testYear,
		}
		// 10 + 5 + 3 + 4 + 3 + 1
		assert.InDelta(t, 26, Score(m, profile, testYear), 1e-9)
	})

	t.Run("missing quality scores zero on the quality term", func(t *testing.T) {
		m := catalog.Movie{Name: "No Quality", Genre: "Drama", Year: 1990}
		assert.InDelta(t, 10, Score(m, profile, testYear), 1e-9)
	})

	t.Run("recency bonus at the window edge", func(t *testing.T) {
		inside := catalog.Movie{Name: "Recent", Genre: "Drama", Year: testYear - 10}
		outside := catalog.Movie{Name: "Old", Genre: "Drama", Year: testYear - 11}
		assert.InDelta(t, 11, Score(inside, profile, testYear), 1e-9)
		assert.InDelta(t, 10, Score(outside, profile, testYear), 1e-9)
	})

	t.Run("quality and recency alone never score", func(t *testing.T) {
		m := movieWithQuality("Acclaimed Stranger", "Musical", "", 9, testYear)
		assert.Zero(t, Score(m, profile, testYear))
	})
}

func TestScoreCandidates(t *testing.T) {
	profile := BuildAffinityProfile([]catalog.Movie{
		{Name: "Seed", Genre: "Drama"},
	})

	t.Run("zero scores are excluded not ranked last", func(t *testing.T) {
		candidates := []catalog.Movie{
			{Name: "Zero", Genre: "Comedy", Year: 1980},
			movieWithQuality("Scored", "Drama", "", 5, 1980),
		}
		scored := ScoreCandidates(candidates, profile, testYear)
		assert.Len(t, scored, 1)
		assert.Equal(t, "Scored", scored[0].Movie.Name)
	})

	t.Run("no attribute overlap is excluded despite quality and recency", func(t *testing.T) {
		candidates := []catalog.Movie{
			movieWithQuality("Acclaimed Stranger", "Musical", "", 9, testYear),
			movieWithQuality("Scored", "Drama", "", 5, 1980),
		}
		scored := ScoreCandidates(candidates, profile, testYear)
		assert.Len(t, scored, 1)
		assert.Equal(t, "Scored", scored[0].Movie.Name)
	})

	t.Run("empty profile scores every candidate zero", func(t *testing.T) {
		candidates := []catalog.Movie{
			movieWithQuality("Rated", "Drama", "", 9, testYear),
		}
		assert.Empty(t, ScoreCandidates(candidates, NewAffinityProfile(), testYear))
	})

	t.Run("empty catalog yields empty result", func(t *testing.T) {
		assert.Empty(t, ScoreCandidates(nil, profile, testYear))
	})
}

func TestBuildAffinityProfile(t *testing.T) {
	t.Run("distinct values only", func(t *testing.T) {
		liked := []catalog.Movie{
			{Name: "M1", Genre: "Drama", Director: "X"},
			{Name: "M2", Genre: "Drama", Director: "Y"},
		}
		profile := BuildAffinityProfile(liked)
		assert.Len(t, profile.Genres, 1)
		assert.Len(t, profile.Directors, 2)
		assert.Equal(t, 2, profile.LikedCount)
	})

	t.Run("empty attributes are not collected", func(t *testing.T) {
		liked := []catalog.Movie{{Name: "M1", Genre: "Drama"}}
		profile := BuildAffinityProfile(liked)
		assert.Empty(t, profile.Directors)
		assert.Empty(t, profile.Companies)
		assert.Empty(t, profile.Stars)
	})

	t.Run("zero likes gives empty profile", func(t *testing.T) {
		profile := BuildAffinityProfile(nil)
		assert.True(t, profile.IsEmpty())
		assert.Equal(t, 0, profile.LikedCount)
	})
}
