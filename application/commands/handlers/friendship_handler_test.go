package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinegraph-backend/application/commands"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/events"
	"cinegraph-backend/infrastructure/persistence/memory"
	pkgerrors "cinegraph-backend/pkg/errors"
)

type friendFixture struct {
	handler  *FriendshipHandler
	friends  *memory.FriendshipStore
	recorder *memory.EventRecorder
}

func newFriendFixture(t *testing.T, usernames ...string) *friendFixture {
	t.Helper()

	users := memory.NewUserStore()
	for _, raw := range usernames {
		u, err := catalog.NewUsername(raw)
		require.NoError(t, err)
		users.Seed(catalog.User{Username: u})
	}

	friends := memory.NewFriendshipStore()
	recorder := memory.NewEventRecorder()

	return &friendFixture{
		handler:  NewFriendshipHandler(users, friends, recorder, zap.NewNop()),
		friends:  friends,
		recorder: recorder,
	}
}

func TestFriendshipHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("adding a friendship makes both directions visible", func(t *testing.T) {
		f := newFriendFixture(t, "alice", "bob")

		result, err := f.handler.Handle(ctx, commands.AddFriendCommand{
			Username: "alice", Friend: "bob",
		})
		require.NoError(t, err)
		assert.True(t, result.Applied)

		alice, _ := catalog.NewUsername("alice")
		bob, _ := catalog.NewUsername("bob")

		mutual, err := f.friends.AreFriends(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, mutual)

		reverse, err := f.friends.AreFriends(ctx, bob, alice)
		require.NoError(t, err)
		assert.True(t, reverse)

		recorded := f.recorder.Recorded()
		require.Len(t, recorded, 1)
		_, ok := recorded[0].(events.FriendshipCreated)
		assert.True(t, ok)
	})

	t.Run("adding an existing friendship is a no-op", func(t *testing.T) {
		f := newFriendFixture(t, "alice", "bob")

		_, err := f.handler.Handle(ctx, commands.AddFriendCommand{Username: "alice", Friend: "bob"})
		require.NoError(t, err)

		result, err := f.handler.Handle(ctx, commands.AddFriendCommand{Username: "bob", Friend: "alice"})
		require.NoError(t, err)

		assert.False(t, result.Applied)
		assert.True(t, result.AlreadyInState)
		assert.Len(t, f.recorder.Recorded(), 1)
	})

	t.Run("removing a friendship clears both directions", func(t *testing.T) {
		f := newFriendFixture(t, "alice", "bob")

		_, err := f.handler.Handle(ctx, commands.AddFriendCommand{Username: "alice", Friend: "bob"})
		require.NoError(t, err)

		result, err := f.handler.Handle(ctx, commands.RemoveFriendCommand{Username: "alice", Friend: "bob"})
		require.NoError(t, err)
		assert.True(t, result.Applied)

		alice, _ := catalog.NewUsername("alice")
		bob, _ := catalog.NewUsername("bob")

		mutual, err := f.friends.AreFriends(ctx, bob, alice)
		require.NoError(t, err)
		assert.False(t, mutual)

		recorded := f.recorder.Recorded()
		require.Len(t, recorded, 2)
		_, ok := recorded[1].(events.FriendshipRemoved)
		assert.True(t, ok)
	})

	t.Run("removing an absent friendship is a no-op", func(t *testing.T) {
		f := newFriendFixture(t, "alice", "bob")

		result, err := f.handler.Handle(ctx, commands.RemoveFriendCommand{Username: "alice", Friend: "bob"})
		require.NoError(t, err)

		assert.False(t, result.Applied)
		assert.True(t, result.AlreadyInState)
		assert.Empty(t, f.recorder.Recorded())
	})

	t.Run("both endpoints must exist", func(t *testing.T) {
		f := newFriendFixture(t, "alice")

		_, err := f.handler.Handle(ctx, commands.AddFriendCommand{Username: "alice", Friend: "ghost"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsUserNotFound(err))
	})

	t.Run("self friendship fails validation", func(t *testing.T) {
		cmd := commands.AddFriendCommand{Username: "alice", Friend: "Alice"}
		assert.Error(t, cmd.Validate())
	})
}
