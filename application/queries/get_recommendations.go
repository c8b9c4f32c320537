package queries

import (
	"errors"
)

// GetRecommendationsQuery requests the personalized ranking for a user
type GetRecommendationsQuery struct {
	Username string `json:"username"`
}

// Validate validates the query
func (q GetRecommendationsQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// MovieResult is the wire shape of one recommended movie
type MovieResult struct {
	Name     string   `json:"name"`
	Genre    string   `json:"genre,omitempty"`
	Director string   `json:"director,omitempty"`
	Company  string   `json:"company,omitempty"`
	Star     string   `json:"star,omitempty"`
	Year     int      `json:"year,omitempty"`
	Quality  *float64 `json:"quality,omitempty"`
	Runtime  int      `json:"runtime,omitempty"`
	Score    float64  `json:"score"`
}

// GetRecommendationsResult is the ranked list with its provenance
type GetRecommendationsResult struct {
	Movies     []MovieResult `json:"movies"`
	Provenance string        `json:"provenance"`
}
