package recommend

import (
	"cinegraph-backend/domain/catalog"
)

// Scoring weights. Genre is the strongest taste signal; quality and recency
// act as tie-breaking modifiers, not primary drivers.
const (
	GenreWeight    = 10.0
	DirectorWeight = 5.0
	CompanyWeight  = 3.0
	StarWeight     = 4.0
	QualityWeight  = 3.0

	RecencyBonus  = 1.0
	RecencyWindow = 10 // years
)

// ScoredMovie pairs a candidate with its computed relevance score
type ScoredMovie struct {
	Movie catalog.Movie
	Score float64
}

// Score computes the weighted relevance of one candidate against an
// affinity profile. Quality and recency are modifiers only: a candidate
// sharing no liked attribute scores zero regardless of how well rated or
// recent it is. A missing quality scores 0 on the quality term.
func Score(movie catalog.Movie, profile AffinityProfile, currentYear int) float64 {
	var affinity float64

	if profile.likesGenre(movie.Genre) {
		affinity += GenreWeight
	}
	if profile.likesDirector(movie.Director) {
		affinity += DirectorWeight
	}
	if profile.likesCompany(movie.Company) {
		affinity += CompanyWeight
	}
	if profile.likesStar(movie.Star) {
		affinity += StarWeight
	}

	if affinity == 0 {
		return 0
	}

	total := affinity + (movie.QualityOrZero()/10)*QualityWeight

	if movie.Year >= currentYear-RecencyWindow {
		total += RecencyBonus
	}

	return total
}

// ScoreCandidates scores every candidate and drops those with a zero total.
// A zero score means no signal at all; those candidates never appear in the
// personalized list and an all-zero pass triggers the fallback.
func ScoreCandidates(candidates []catalog.Movie, profile AffinityProfile, currentYear int) []ScoredMovie {
	scored := make([]ScoredMovie, 0, len(candidates))
	for _, movie := range candidates {
		total := Score(movie, profile, currentYear)
		if total == 0 {
			continue
		}
		scored = append(scored, ScoredMovie{Movie: movie, Score: total})
	}
	return scored
}
