package queries

import (
	"errors"
)

// GetPreferenceStatusQuery asks for the judgment state of one pair
type GetPreferenceStatusQuery struct {
	Username  string `json:"username"`
	MovieName string `json:"movieName"`
}

// Validate validates the query
func (q GetPreferenceStatusQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	if q.MovieName == "" {
		return errors.New("movieName is required")
	}
	return nil
}

// GetPreferenceStatusResult reports neutral, liked or disliked
type GetPreferenceStatusResult struct {
	Username  string `json:"username"`
	MovieName string `json:"movieName"`
	Status    string `json:"status"`
}
