package recommend

import (
	"sort"
)

// FeedEntry is one movie in the homepage feed with its provenance
type FeedEntry struct {
	Movie      ScoredMovie
	Provenance Provenance
}

// FeedStats carries the per-category counts for caller-facing messaging
type FeedStats struct {
	PersonalizedCount int `json:"personalizedCount"`
	PopularCount      int `json:"popularCount"`
	TotalCount        int `json:"totalCount"`
}

// Feed is the blended homepage output
type Feed struct {
	Entries []FeedEntry
	Stats   FeedStats
}

// BlendFeed merges the personalized list with the popularity list.
// Duplicates keep their first occurrence, so a movie in both lists stays
// tagged as recommended. Final ordering is score descending with
// popularity-only entries at score 0, quality descending as tie-break.
func BlendFeed(personalized RankedResult, popular []ScoredMovie) Feed {
	seen := make(map[string]struct{}, len(personalized.Movies)+len(popular))
	entries := make([]FeedEntry, 0, len(personalized.Movies)+len(popular))

	personalizedTag := ProvenanceRecommended
	if personalized.Provenance == ProvenanceFallback {
		personalizedTag = ProvenanceFallback
	}

	var stats FeedStats
	for _, sm := range personalized.Movies {
		if _, dup := seen[sm.Movie.Name]; dup {
			continue
		}
		seen[sm.Movie.Name] = struct{}{}
		entries = append(entries, FeedEntry{Movie: sm, Provenance: personalizedTag})
		stats.PersonalizedCount++
	}

	for _, sm := range popular {
		if _, dup := seen[sm.Movie.Name]; dup {
			continue
		}
		seen[sm.Movie.Name] = struct{}{}
		entries = append(entries, FeedEntry{Movie: sm, Provenance: ProvenancePopular})
		stats.PopularCount++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Movie.Score != entries[j].Movie.Score {
			return entries[i].Movie.Score > entries[j].Movie.Score
		}
		return entries[i].Movie.Movie.QualityOrZero() > entries[j].Movie.Movie.QualityOrZero()
	})

	stats.TotalCount = len(entries)
	return Feed{Entries: entries, Stats: stats}
}
