package commands

import (
	"cinegraph-backend/pkg/utils"
)

// SetPreferenceCommand applies a like or dislike judgment to a
// (user, movie) pair
type SetPreferenceCommand struct {
	Username  string `json:"username" validate:"required,max=64"`
	MovieName string `json:"movieName" validate:"required,max=256"`
	Kind      string `json:"kind" validate:"required,oneof=like dislike"`
}

// Validate validates the command
func (c SetPreferenceCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ClearPreferenceCommand returns a pair to neutral by removing its edge
type ClearPreferenceCommand struct {
	Username  string `json:"username" validate:"required,max=64"`
	MovieName string `json:"movieName" validate:"required,max=256"`
}

// Validate validates the command
func (c ClearPreferenceCommand) Validate() error {
	return utils.ValidateStruct(c)
}
