package queries

import (
	"errors"
)

// GetUserStatsQuery requests judgment and friendship counts for a user
type GetUserStatsQuery struct {
	Username string `json:"username"`
}

// Validate validates the query
func (q GetUserStatsQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// GetUserStatsResult carries the aggregate counts
type GetUserStatsResult struct {
	Username      string `json:"username"`
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
	FriendsCount  int    `json:"friendsCount"`
}

// ListJudgedMoviesQuery requests the movies a user holds in one state
type ListJudgedMoviesQuery struct {
	Username string `json:"username"`
	State    string `json:"state"`
}

// Validate validates the query
func (q ListJudgedMoviesQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	if q.State != "liked" && q.State != "disliked" {
		return errors.New("state must be liked or disliked")
	}
	return nil
}

// ListJudgedMoviesResult carries the judged movies with full attributes
type ListJudgedMoviesResult struct {
	Username string        `json:"username"`
	State    string        `json:"state"`
	Movies   []MovieResult `json:"movies"`
}

// ListFriendsQuery requests a user's friends
type ListFriendsQuery struct {
	Username string `json:"username"`
}

// Validate validates the query
func (q ListFriendsQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// ListFriendsResult carries the friend usernames
type ListFriendsResult struct {
	Username string   `json:"username"`
	Friends  []string `json:"friends"`
}
