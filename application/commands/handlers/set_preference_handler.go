package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cinegraph-backend/application/commands"
	"cinegraph-backend/application/commands/bus"
	"cinegraph-backend/application/ports"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/events"
	"cinegraph-backend/domain/preference"
	pkgerrors "cinegraph-backend/pkg/errors"
)

// SetPreferenceHandler applies like/dislike judgments. The write is one
// atomic state swap: the store returns the state the pair held before, so
// applied/alreadyInState comes from the same operation that changed it.
type SetPreferenceHandler struct {
	userRepo  ports.UserRepository
	movieRepo ports.CatalogRepository
	prefRepo  ports.PreferenceRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewSetPreferenceHandler creates a new handler instance
func NewSetPreferenceHandler(
	userRepo ports.UserRepository,
	movieRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *SetPreferenceHandler {
	return &SetPreferenceHandler{
		userRepo:  userRepo,
		movieRepo: movieRepo,
		prefRepo:  prefRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the set preference command
func (h *SetPreferenceHandler) Handle(ctx context.Context, cmd bus.Command) (*bus.CommandResult, error) {
	c, ok := cmd.(commands.SetPreferenceCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	username, err := catalog.NewUsername(c.Username)
	if err != nil {
		return nil, err
	}
	kind, err := preference.ParseKind(c.Kind)
	if err != nil {
		return nil, err
	}

	// Writes fail loudly on unknown identities; an edge cannot hang off
	// a node that does not exist.
	exists, err := h.userRepo.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pkgerrors.NewUserNotFoundError(username.String())
	}

	movie, err := h.movieRepo.GetMovieByName(ctx, c.MovieName)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, pkgerrors.NewMovieNotFoundError(c.MovieName)
	}

	previous, err := h.prefRepo.SetState(ctx, username, movie.Name, kind.Target())
	if err != nil {
		return nil, err
	}

	transition := preference.Apply(previous, kind)
	if transition.Applied {
		event := events.NewPreferenceChanged(username.String(), movie.Name, transition.From, transition.To, time.Now())
		if pubErr := h.publisher.Publish(ctx, event); pubErr != nil {
			h.logger.Warn("preference event publish failed",
				zap.String("username", username.String()),
				zap.String("movie", movie.Name),
				zap.Error(pubErr),
			)
		}
	}

	h.logger.Info("preference judgment processed",
		zap.String("username", username.String()),
		zap.String("movie", movie.Name),
		zap.String("from", string(transition.From)),
		zap.String("to", string(transition.To)),
		zap.Bool("applied", transition.Applied),
	)

	return &bus.CommandResult{
		Applied:        transition.Applied,
		AlreadyInState: transition.AlreadyInState,
		Data: map[string]interface{}{
			"status": string(transition.To),
		},
	}, nil
}

// ClearPreferenceHandler returns a pair to neutral
type ClearPreferenceHandler struct {
	userRepo ports.UserRepository
	prefRepo ports.PreferenceRepository
	logger   *zap.Logger
}

// NewClearPreferenceHandler creates a new handler instance
func NewClearPreferenceHandler(
	userRepo ports.UserRepository,
	prefRepo ports.PreferenceRepository,
	logger *zap.Logger,
) *ClearPreferenceHandler {
	return &ClearPreferenceHandler{
		userRepo: userRepo,
		prefRepo: prefRepo,
		logger:   logger,
	}
}

// Handle executes the clear preference command
func (h *ClearPreferenceHandler) Handle(ctx context.Context, cmd bus.Command) (*bus.CommandResult, error) {
	c, ok := cmd.(commands.ClearPreferenceCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	username, err := catalog.NewUsername(c.Username)
	if err != nil {
		return nil, err
	}

	exists, err := h.userRepo.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pkgerrors.NewUserNotFoundError(username.String())
	}

	previous, err := h.prefRepo.ClearState(ctx, username, c.MovieName)
	if err != nil {
		return nil, err
	}

	return &bus.CommandResult{
		Applied:        previous.IsJudged(),
		AlreadyInState: previous == preference.StateNeutral,
		Data: map[string]interface{}{
			"status": string(preference.StateNeutral),
		},
	}, nil
}
