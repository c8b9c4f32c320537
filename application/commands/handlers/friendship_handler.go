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
	pkgerrors "cinegraph-backend/pkg/errors"
)

// FriendshipHandler maintains the mutual FRIENDS_WITH pair. Both directions
// are written or removed in one transaction; a half-pair is never visible.
type FriendshipHandler struct {
	userRepo   ports.UserRepository
	friendRepo ports.FriendshipRepository
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewFriendshipHandler creates a new handler instance
func NewFriendshipHandler(
	userRepo ports.UserRepository,
	friendRepo ports.FriendshipRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *FriendshipHandler {
	return &FriendshipHandler{
		userRepo:   userRepo,
		friendRepo: friendRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle executes add and remove friendship commands
func (h *FriendshipHandler) Handle(ctx context.Context, cmd bus.Command) (*bus.CommandResult, error) {
	switch c := cmd.(type) {
	case commands.AddFriendCommand:
		return h.add(ctx, c)
	case commands.RemoveFriendCommand:
		return h.remove(ctx, c)
	default:
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
}

func (h *FriendshipHandler) resolve(ctx context.Context, rawUser, rawFriend string) (catalog.Username, catalog.Username, error) {
	username, err := catalog.NewUsername(rawUser)
	if err != nil {
		return catalog.Username{}, catalog.Username{}, err
	}
	friend, err := catalog.NewUsername(rawFriend)
	if err != nil {
		return catalog.Username{}, catalog.Username{}, err
	}

	for _, u := range []catalog.Username{username, friend} {
		exists, err := h.userRepo.Exists(ctx, u)
		if err != nil {
			return catalog.Username{}, catalog.Username{}, err
		}
		if !exists {
			return catalog.Username{}, catalog.Username{}, pkgerrors.NewUserNotFoundError(u.String())
		}
	}

	return username, friend, nil
}

func (h *FriendshipHandler) add(ctx context.Context, c commands.AddFriendCommand) (*bus.CommandResult, error) {
	username, friend, err := h.resolve(ctx, c.Username, c.Friend)
	if err != nil {
		return nil, err
	}

	already, err := h.friendRepo.AreFriends(ctx, username, friend)
	if err != nil {
		return nil, err
	}
	if already {
		return &bus.CommandResult{AlreadyInState: true}, nil
	}

	if err := h.friendRepo.AddFriendship(ctx, username, friend); err != nil {
		return nil, err
	}

	event := events.NewFriendshipCreated(username.String(), friend.String(), time.Now())
	if pubErr := h.publisher.Publish(ctx, event); pubErr != nil {
		h.logger.Warn("friendship event publish failed", zap.Error(pubErr))
	}

	return &bus.CommandResult{Applied: true}, nil
}

func (h *FriendshipHandler) remove(ctx context.Context, c commands.RemoveFriendCommand) (*bus.CommandResult, error) {
	username, friend, err := h.resolve(ctx, c.Username, c.Friend)
	if err != nil {
		return nil, err
	}

	already, err := h.friendRepo.AreFriends(ctx, username, friend)
	if err != nil {
		return nil, err
	}
	if !already {
		return &bus.CommandResult{AlreadyInState: true}, nil
	}

	if err := h.friendRepo.RemoveFriendship(ctx, username, friend); err != nil {
		return nil, err
	}

	event := events.NewFriendshipRemoved(username.String(), friend.String(), time.Now())
	if pubErr := h.publisher.Publish(ctx, event); pubErr != nil {
		h.logger.Warn("friendship event publish failed", zap.Error(pubErr))
	}

	return &bus.CommandResult{Applied: true}, nil
}
