package queries

import (
	"errors"

	"cinegraph-backend/domain/recommend"
)

// GetHomepageFeedQuery requests the blended homepage feed for a user
type GetHomepageFeedQuery struct {
	Username string `json:"username"`
}

// Validate validates the query
func (q GetHomepageFeedQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// FeedMovieResult is one feed entry with its provenance tag
type FeedMovieResult struct {
	MovieResult
	Provenance string `json:"provenance"`
}

// GetHomepageFeedResult is the deduplicated feed with category counts
type GetHomepageFeedResult struct {
	Movies []FeedMovieResult   `json:"movies"`
	Stats  recommend.FeedStats `json:"stats"`
}
