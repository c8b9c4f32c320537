package recommend

import (
	"sort"

	"cinegraph-backend/domain/catalog"
)

// Result-size limits
const (
	PersonalizedLimit = 20
	PopularityLimit   = 10
)

// Provenance labels which computation produced a result entry
type Provenance string

const (
	ProvenanceRecommended Provenance = "recommended"
	ProvenancePopular     Provenance = "popular"
	ProvenanceFallback    Provenance = "fallback"
)

// RankedResult is the output of one recommendation pass
type RankedResult struct {
	Movies     []ScoredMovie
	Provenance Provenance
}

// Rank orders scored candidates by score descending, ties broken by quality
// descending. The sort is stable so equal entries keep catalog order, which
// keeps repeated passes over the same snapshot reproducible.
func Rank(scored []ScoredMovie, limit int) []ScoredMovie {
	ranked := make([]ScoredMovie, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Movie.QualityOrZero() > ranked[j].Movie.QualityOrZero()
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// PopularityOrder sorts unjudged movies by quality descending, equal quality
// broken by name ascending so the order is deterministic.
func PopularityOrder(movies []catalog.Movie, limit int) []catalog.Movie {
	ordered := make([]catalog.Movie, len(movies))
	copy(ordered, movies)

	sort.SliceStable(ordered, func(i, j int) bool {
		qi, qj := ordered[i].QualityOrZero(), ordered[j].QualityOrZero()
		if qi != qj {
			return qi > qj
		}
		return ordered[i].Name < ordered[j].Name
	})

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// RankWithFallback runs the full personalized pass: score, filter zeros,
// rank, truncate. A user with no affinity signal at all goes straight to
// the fallback; quality and recency alone are tie-breakers, not grounds
// for a personalized pick. If affinity exists but nothing survives the
// zero filter, the fallback substitutes too, so the caller never sees an
// empty list while unjudged movies exist.
func RankWithFallback(candidates []catalog.Movie, profile AffinityProfile, currentYear int) RankedResult {
	if !profile.IsEmpty() {
		scored := ScoreCandidates(candidates, profile, currentYear)
		if len(scored) > 0 {
			return RankedResult{
				Movies:     Rank(scored, PersonalizedLimit),
				Provenance: ProvenanceRecommended,
			}
		}
	}

	fallback := PopularityOrder(candidates, PersonalizedLimit)
	movies := make([]ScoredMovie, 0, len(fallback))
	for _, movie := range fallback {
		movies = append(movies, ScoredMovie{Movie: movie})
	}
	return RankedResult{
		Movies:     movies,
		Provenance: ProvenanceFallback,
	}
}
