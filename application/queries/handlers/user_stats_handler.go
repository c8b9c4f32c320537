package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/application/queries"
	"cinegraph-backend/application/queries/bus"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/preference"
)

// GetUserStatsHandler aggregates judgment and friendship counts. Unknown
// users read as all-zero; stats are a read path and never hard-fail on
// identity.
type GetUserStatsHandler struct {
	prefRepo   ports.PreferenceRepository
	friendRepo ports.FriendshipRepository
	logger     *zap.Logger
}

// NewGetUserStatsHandler creates a new handler instance
func NewGetUserStatsHandler(
	prefRepo ports.PreferenceRepository,
	friendRepo ports.FriendshipRepository,
	logger *zap.Logger,
) *GetUserStatsHandler {
	return &GetUserStatsHandler{
		prefRepo:   prefRepo,
		friendRepo: friendRepo,
		logger:     logger,
	}
}

// Handle executes the user stats query
func (h *GetUserStatsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetUserStatsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	username, err := catalog.NewUsername(q.Username)
	if err != nil {
		return nil, err
	}

	states, err := h.prefRepo.ListStates(ctx, username)
	if err != nil {
		return nil, err
	}

	result := &queries.GetUserStatsResult{Username: username.String()}
	for _, state := range states {
		switch state {
		case preference.StateLiked:
			result.LikesCount++
		case preference.StateDisliked:
			result.DislikesCount++
		}
	}

	friends, err := h.friendRepo.ListFriends(ctx, username)
	if err != nil {
		h.logger.Warn("friend count unavailable for stats",
			zap.String("username", username.String()),
			zap.Error(err),
		)
	} else {
		result.FriendsCount = len(friends)
	}

	return result, nil
}

// ListJudgedMoviesHandler returns the full catalog entries a user has
// judged with one state
type ListJudgedMoviesHandler struct {
	catalogRepo ports.CatalogRepository
	prefRepo    ports.PreferenceRepository
	logger      *zap.Logger
}

// NewListJudgedMoviesHandler creates a new handler instance
func NewListJudgedMoviesHandler(
	catalogRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	logger *zap.Logger,
) *ListJudgedMoviesHandler {
	return &ListJudgedMoviesHandler{
		catalogRepo: catalogRepo,
		prefRepo:    prefRepo,
		logger:      logger,
	}
}

// Handle executes the judged movies query
func (h *ListJudgedMoviesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListJudgedMoviesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	username, err := catalog.NewUsername(q.Username)
	if err != nil {
		return nil, err
	}

	names, err := h.prefRepo.ListByState(ctx, username, preference.State(q.State))
	if err != nil {
		return nil, err
	}

	result := &queries.ListJudgedMoviesResult{
		Username: username.String(),
		State:    q.State,
		Movies:   make([]queries.MovieResult, 0, len(names)),
	}

	for _, name := range names {
		movie, err := h.catalogRepo.GetMovieByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			// edge survived a catalog removal; skip it
			continue
		}
		result.Movies = append(result.Movies, queries.MovieResult{
			Name:     movie.Name,
			Genre:    movie.Genre,
			Director: movie.Director,
			Company:  movie.Company,
			Star:     movie.Star,
			Year:     movie.Year,
			Quality:  movie.Quality,
			Runtime:  movie.Runtime,
		})
	}

	return result, nil
}

// ListFriendsHandler returns a user's friends
type ListFriendsHandler struct {
	friendRepo ports.FriendshipRepository
	logger     *zap.Logger
}

// NewListFriendsHandler creates a new handler instance
func NewListFriendsHandler(friendRepo ports.FriendshipRepository, logger *zap.Logger) *ListFriendsHandler {
	return &ListFriendsHandler{
		friendRepo: friendRepo,
		logger:     logger,
	}
}

// Handle executes the list friends query
func (h *ListFriendsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListFriendsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	username, err := catalog.NewUsername(q.Username)
	if err != nil {
		return nil, err
	}

	friends, err := h.friendRepo.ListFriends(ctx, username)
	if err != nil {
		return nil, err
	}

	return &queries.ListFriendsResult{
		Username: username.String(),
		Friends:  friends,
	}, nil
}
