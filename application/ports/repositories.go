package ports

import (
	"context"

	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/events"
	"cinegraph-backend/domain/preference"
)

// CatalogRepository defines the read-only port over the movie catalog.
// One scoring pass works against one consistent snapshot; implementations
// must not interleave catalog mutations into a single GetAllMovies call.
type CatalogRepository interface {
	// GetAllMovies returns the full catalog snapshot
	GetAllMovies(ctx context.Context) ([]catalog.Movie, error)

	// GetMovieByName retrieves a single catalog entry
	GetMovieByName(ctx context.Context, name string) (*catalog.Movie, error)

	// GetGenres returns the distinct genres present in the catalog
	GetGenres(ctx context.Context) ([]string, error)
}

// UserRepository defines the read-only port over user identities
type UserRepository interface {
	// GetByUsername retrieves a user by normalized username
	GetByUsername(ctx context.Context, username catalog.Username) (*catalog.User, error)

	// Exists reports whether the username has a user node behind it
	Exists(ctx context.Context, username catalog.Username) (bool, error)
}

// PreferenceRepository defines the port for preference edge state.
// SetState must apply the judgment atomically and report the state the
// pair held before the write; a concurrent reader never observes a pair
// holding two judgments at once.
type PreferenceRepository interface {
	// GetState returns the current state for a (user, movie) pair,
	// StateNeutral when no edge exists
	GetState(ctx context.Context, username catalog.Username, movieName string) (preference.State, error)

	// SetState writes the judged state for a pair and returns the
	// previous state in one indivisible operation
	SetState(ctx context.Context, username catalog.Username, movieName string, state preference.State) (preference.State, error)

	// ClearState removes the edge for a pair, returning the previous state
	ClearState(ctx context.Context, username catalog.Username, movieName string) (preference.State, error)

	// ListStates returns every judged movie for the user keyed by name
	ListStates(ctx context.Context, username catalog.Username) (map[string]preference.State, error)

	// ListByState returns the movie names the user holds in one state
	ListByState(ctx context.Context, username catalog.Username, state preference.State) ([]string, error)
}

// FriendshipRepository defines the port for the mutual-edge friends
// feature. Edges are written and removed as a matched pair: A's edge to B
// exists iff B's edge to A does.
type FriendshipRepository interface {
	// AddFriendship writes both directions of the pair atomically
	AddFriendship(ctx context.Context, username, friend catalog.Username) error

	// RemoveFriendship deletes both directions of the pair atomically
	RemoveFriendship(ctx context.Context, username, friend catalog.Username) error

	// ListFriends returns the usernames this user is friends with
	ListFriends(ctx context.Context, username catalog.Username) ([]string, error)

	// AreFriends reports whether the mutual pair exists
	AreFriends(ctx context.Context, username, friend catalog.Username) (bool, error)
}

// EventPublisher defines the port for publishing domain events.
// Publishing is best-effort; a failed publish never rolls back the state
// change that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}
