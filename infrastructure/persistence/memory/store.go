// Package memory provides in-process implementations of the persistence
// ports, used by tests and local development. Semantics mirror the
// DynamoDB adapters: one judgment record per pair, mirrored friendship
// entries, state swaps that report the previous state.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/events"
	"cinegraph-backend/domain/preference"
)

// MovieStore is an in-memory CatalogRepository
type MovieStore struct {
	mu     sync.RWMutex
	movies map[string]catalog.Movie
	order  []string
}

// NewMovieStore creates an empty movie store
func NewMovieStore() *MovieStore {
	return &MovieStore{
		movies: make(map[string]catalog.Movie),
	}
}

// Seed inserts catalog entries, preserving insertion order for snapshots
func (s *MovieStore) Seed(movies ...catalog.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, movie := range movies {
		if _, exists := s.movies[movie.Name]; !exists {
			s.order = append(s.order, movie.Name)
		}
		s.movies[movie.Name] = movie
	}
}

// GetAllMovies returns the catalog snapshot in insertion order
func (s *MovieStore) GetAllMovies(ctx context.Context) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Movie, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.movies[name])
	}
	return out, nil
}

// GetMovieByName retrieves a single entry, nil when absent
func (s *MovieStore) GetMovieByName(ctx context.Context, name string) (*catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movie, ok := s.movies[name]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

// GetGenres returns the distinct genres, sorted
func (s *MovieStore) GetGenres(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, movie := range s.movies {
		if movie.Genre != "" {
			seen[movie.Genre] = struct{}{}
		}
	}
	genres := make([]string, 0, len(seen))
	for genre := range seen {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres, nil
}

// UserStore is an in-memory UserRepository
type UserStore struct {
	mu    sync.RWMutex
	users map[string]catalog.User
}

// NewUserStore creates an empty user store
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]catalog.User),
	}
}

// Seed inserts user profiles
func (s *UserStore) Seed(users ...catalog.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range users {
		s.users[user.Username.String()] = user
	}
}

// GetByUsername retrieves a user, nil when absent
func (s *UserStore) GetByUsername(ctx context.Context, username catalog.Username) (*catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username.String()]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Exists reports whether the username is known
func (s *UserStore) Exists(ctx context.Context, username catalog.Username) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username.String()]
	return ok, nil
}

// PreferenceStore is an in-memory PreferenceRepository. A single map slot
// per pair makes the mutual-exclusivity invariant structural here too.
type PreferenceStore struct {
	mu     sync.Mutex
	states map[string]preference.State
}

// NewPreferenceStore creates an empty preference store
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		states: make(map[string]preference.State),
	}
}

func prefStoreKey(username catalog.Username, movieName string) string {
	return username.String() + "\x00" + movieName
}

// GetState returns the current judgment, StateNeutral when absent
func (s *PreferenceStore) GetState(ctx context.Context, username catalog.Username, movieName string) (preference.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[prefStoreKey(username, movieName)]
	if !ok {
		return preference.StateNeutral, nil
	}
	return state, nil
}

// SetState swaps the judgment under one lock, returning the previous state
func (s *PreferenceStore) SetState(ctx context.Context, username catalog.Username, movieName string, state preference.State) (preference.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := prefStoreKey(username, movieName)
	previous, ok := s.states[key]
	if !ok {
		previous = preference.StateNeutral
	}
	s.states[key] = state
	return previous, nil
}

// ClearState removes the judgment, returning the previous state
func (s *PreferenceStore) ClearState(ctx context.Context, username catalog.Username, movieName string) (preference.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := prefStoreKey(username, movieName)
	previous, ok := s.states[key]
	if !ok {
		previous = preference.StateNeutral
	}
	delete(s.states, key)
	return previous, nil
}

// ListStates returns every judged movie for the user keyed by name
func (s *PreferenceStore) ListStates(ctx context.Context, username catalog.Username) (map[string]preference.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := username.String() + "\x00"
	out := make(map[string]preference.State)
	for key, state := range s.states {
		if strings.HasPrefix(key, prefix) {
			out[strings.TrimPrefix(key, prefix)] = state
		}
	}
	return out, nil
}

// ListByState returns the movie names the user holds in one state
func (s *PreferenceStore) ListByState(ctx context.Context, username catalog.Username, state preference.State) ([]string, error) {
	states, err := s.ListStates(ctx, username)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(states))
	for name, st := range states {
		if st == state {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// FriendshipStore is an in-memory FriendshipRepository keeping mirrored
// entries under one lock
type FriendshipStore struct {
	mu      sync.Mutex
	friends map[string]map[string]struct{}
}

// NewFriendshipStore creates an empty friendship store
func NewFriendshipStore() *FriendshipStore {
	return &FriendshipStore{
		friends: make(map[string]map[string]struct{}),
	}
}

func (s *FriendshipStore) link(a, b string) {
	if s.friends[a] == nil {
		s.friends[a] = make(map[string]struct{})
	}
	s.friends[a][b] = struct{}{}
}

// AddFriendship writes both directions under one lock
func (s *FriendshipStore) AddFriendship(ctx context.Context, username, friend catalog.Username) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.link(username.String(), friend.String())
	s.link(friend.String(), username.String())
	return nil
}

// RemoveFriendship deletes both directions under one lock
func (s *FriendshipStore) RemoveFriendship(ctx context.Context, username, friend catalog.Username) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friends[username.String()], friend.String())
	delete(s.friends[friend.String()], username.String())
	return nil
}

// ListFriends returns the usernames this user is friends with, sorted
func (s *FriendshipStore) ListFriends(ctx context.Context, username catalog.Username) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.friends[username.String()]))
	for friend := range s.friends[username.String()] {
		out = append(out, friend)
	}
	sort.Strings(out)
	return out, nil
}

// AreFriends reports whether the mutual pair exists
func (s *FriendshipStore) AreFriends(ctx context.Context, username, friend catalog.Username) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.friends[username.String()][friend.String()]
	return ok, nil
}

// EventRecorder is an in-memory EventPublisher capturing published events
type EventRecorder struct {
	mu     sync.Mutex
	Events []events.DomainEvent
}

// NewEventRecorder creates an empty event recorder
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Publish records a single event
func (r *EventRecorder) Publish(ctx context.Context, event events.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return nil
}

// PublishBatch records a batch of events
func (r *EventRecorder) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, batch...)
	return nil
}

// Recorded returns a copy of the captured events
func (r *EventRecorder) Recorded() []events.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.DomainEvent, len(r.Events))
	copy(out, r.Events)
	return out
}
