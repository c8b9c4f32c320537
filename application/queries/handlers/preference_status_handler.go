package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/application/queries"
	"cinegraph-backend/application/queries/bus"
	"cinegraph-backend/domain/catalog"
	pkgerrors "cinegraph-backend/pkg/errors"
)

// GetPreferenceStatusHandler projects the current judgment for a pair.
// An unknown movie is a hard failure here; the absence of both edges on a
// known movie reads as neutral.
type GetPreferenceStatusHandler struct {
	movieRepo ports.CatalogRepository
	prefRepo  ports.PreferenceRepository
	logger    *zap.Logger
}

// NewGetPreferenceStatusHandler creates a new handler instance
func NewGetPreferenceStatusHandler(
	movieRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	logger *zap.Logger,
) *GetPreferenceStatusHandler {
	return &GetPreferenceStatusHandler{
		movieRepo: movieRepo,
		prefRepo:  prefRepo,
		logger:    logger,
	}
}

// Handle executes the preference status query
func (h *GetPreferenceStatusHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetPreferenceStatusQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	username, err := catalog.NewUsername(q.Username)
	if err != nil {
		return nil, err
	}

	movie, err := h.movieRepo.GetMovieByName(ctx, q.MovieName)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, pkgerrors.NewMovieNotFoundError(q.MovieName)
	}

	state, err := h.prefRepo.GetState(ctx, username, movie.Name)
	if err != nil {
		return nil, err
	}

	return &queries.GetPreferenceStatusResult{
		Username:  username.String(),
		MovieName: movie.Name,
		Status:    string(state),
	}, nil
}
