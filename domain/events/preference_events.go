package events

import (
	"fmt"
	"time"

	"cinegraph-backend/domain/preference"
)

// PreferenceChanged is raised when a (user, movie) pair transitions state.
// No-op judgments (already in the target state) do not raise it.
type PreferenceChanged struct {
	BaseEvent
	Username  string           `json:"username"`
	MovieName string           `json:"movie_name"`
	From      preference.State `json:"from"`
	To        preference.State `json:"to"`
}

// NewPreferenceChanged creates a PreferenceChanged event
func NewPreferenceChanged(username, movieName string, from, to preference.State, timestamp time.Time) PreferenceChanged {
	return PreferenceChanged{
		BaseEvent: newBaseEvent(
			fmt.Sprintf("%s#%s", username, movieName),
			"preference.changed",
			timestamp,
		),
		Username:  username,
		MovieName: movieName,
		From:      from,
		To:        to,
	}
}

// FriendshipCreated is raised when a mutual friendship pair is written
type FriendshipCreated struct {
	BaseEvent
	Username string `json:"username"`
	Friend   string `json:"friend"`
}

// NewFriendshipCreated creates a FriendshipCreated event
func NewFriendshipCreated(username, friend string, timestamp time.Time) FriendshipCreated {
	return FriendshipCreated{
		BaseEvent: newBaseEvent(
			fmt.Sprintf("%s#%s", username, friend),
			"friendship.created",
			timestamp,
		),
		Username: username,
		Friend:   friend,
	}
}

// FriendshipRemoved is raised when a mutual friendship pair is deleted
type FriendshipRemoved struct {
	BaseEvent
	Username string `json:"username"`
	Friend   string `json:"friend"`
}

// NewFriendshipRemoved creates a FriendshipRemoved event
func NewFriendshipRemoved(username, friend string, timestamp time.Time) FriendshipRemoved {
	return FriendshipRemoved{
		BaseEvent: newBaseEvent(
			fmt.Sprintf("%s#%s", username, friend),
			"friendship.removed",
			timestamp,
		),
		Username: username,
		Friend:   friend,
	}
}
