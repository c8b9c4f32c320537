package commands

import (
	"errors"
	"strings"

	"cinegraph-backend/pkg/utils"
)

// AddFriendCommand creates the mutual FRIENDS_WITH pair
type AddFriendCommand struct {
	Username string `json:"username" validate:"required,max=64"`
	Friend   string `json:"friend" validate:"required,max=64"`
}

// Validate validates the command
func (c AddFriendCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if strings.EqualFold(c.Username, c.Friend) {
		return errors.New("cannot befriend yourself")
	}
	return nil
}

// RemoveFriendCommand removes the mutual FRIENDS_WITH pair
type RemoveFriendCommand struct {
	Username string `json:"username" validate:"required,max=64"`
	Friend   string `json:"friend" validate:"required,max=64"`
}

// Validate validates the command
func (c RemoveFriendCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if strings.EqualFold(c.Username, c.Friend) {
		return errors.New("cannot unfriend yourself")
	}
	return nil
}
