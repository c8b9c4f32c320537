// Package recommend implements the scoring pipeline: affinity extraction
// from liked movies, weighted candidate scoring, ranking with a popularity
// fallback, and the homepage blend.
package recommend

import (
	"cinegraph-backend/domain/catalog"
)

// AffinityProfile holds the distinct attribute values drawn from a user's
// liked movies. Scoring only tests membership; set contents are unordered.
type AffinityProfile struct {
	Genres     map[string]struct{}
	Directors  map[string]struct{}
	Companies  map[string]struct{}
	Stars      map[string]struct{}
	LikedCount int
}

// NewAffinityProfile returns an empty profile. A user with zero likes gets
// this, which routes the recommendation pass to the popularity fallback.
func NewAffinityProfile() AffinityProfile {
	return AffinityProfile{
		Genres:    make(map[string]struct{}),
		Directors: make(map[string]struct{}),
		Companies: make(map[string]struct{}),
		Stars:     make(map[string]struct{}),
	}
}

// BuildAffinityProfile projects the attributes of liked movies into
// preference sets. Empty attribute values are skipped so a catalog entry
// with a missing director never matches other entries missing one too.
func BuildAffinityProfile(liked []catalog.Movie) AffinityProfile {
	profile := NewAffinityProfile()
	profile.LikedCount = len(liked)

	for _, movie := range liked {
		if movie.Genre != "" {
			profile.Genres[movie.Genre] = struct{}{}
		}
		if movie.Director != "" {
			profile.Directors[movie.Director] = struct{}{}
		}
		if movie.Company != "" {
			profile.Companies[movie.Company] = struct{}{}
		}
		if movie.Star != "" {
			profile.Stars[movie.Star] = struct{}{}
		}
	}

	return profile
}

// IsEmpty reports whether the profile carries no affinity signal
func (p AffinityProfile) IsEmpty() bool {
	return len(p.Genres) == 0 && len(p.Directors) == 0 && len(p.Companies) == 0 && len(p.Stars) == 0
}

func (p AffinityProfile) likesGenre(genre string) bool {
	_, ok := p.Genres[genre]
	return ok
}

func (p AffinityProfile) likesDirector(director string) bool {
	_, ok := p.Directors[director]
	return ok
}

func (p AffinityProfile) likesCompany(company string) bool {
	_, ok := p.Companies[company]
	return ok
}

func (p AffinityProfile) likesStar(star string) bool {
	_, ok := p.Stars[star]
	return ok
}
