// Package preference models the per-(user, movie) judgment state machine.
// A pair is in exactly one of three states: neutral (no edge), liked, or
// disliked. Transitions swap edges atomically; both edges never coexist.
package preference

import (
	"fmt"

	pkgerrors "cinegraph-backend/pkg/errors"
)

// State is the current judgment for a (user, movie) pair
type State string

const (
	StateNeutral  State = "neutral"
	StateLiked    State = "liked"
	StateDisliked State = "disliked"
)

// Kind is a requested judgment
type Kind string

const (
	KindLike    Kind = "like"
	KindDislike Kind = "dislike"
)

// ParseKind validates and converts a raw judgment string
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindLike:
		return KindLike, nil
	case KindDislike:
		return KindDislike, nil
	default:
		return "", pkgerrors.NewValidationError(fmt.Sprintf("kind must be %q or %q", KindLike, KindDislike))
	}
}

// Target returns the state a judgment of this kind lands in
func (k Kind) Target() State {
	if k == KindLike {
		return StateLiked
	}
	return StateDisliked
}

// Transition computes the outcome of applying a judgment to the current
// state. Applying a judgment the pair already holds is a no-op reported
// through AlreadyInState, never an error.
type Transition struct {
	From           State
	To             State
	Applied        bool
	AlreadyInState bool
}

// Apply resolves the state machine for one judgment
func Apply(current State, kind Kind) Transition {
	target := kind.Target()
	if current == target {
		return Transition{
			From:           current,
			To:             current,
			Applied:        false,
			AlreadyInState: true,
		}
	}
	return Transition{
		From:    current,
		To:      target,
		Applied: true,
	}
}

// IsJudged reports whether the state carries an edge
func (s State) IsJudged() bool {
	return s == StateLiked || s == StateDisliked
}
