// Package arcade models the on-screen arcade deck: its raw button signals,
// the command bus they are published on and the product view that reacts.
package arcade

import (
	"fmt"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Kind is what a command asks the listeners to do.
type Kind int

const (
	ToggleWishlist Kind = iota + 1
	Navigate
)

func (k Kind) String() string {
	switch k {
	case ToggleWishlist:
		return "toggle_wishlist"
	case Navigate:
		return "navigate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Direction is the way a Navigate command moves.
type Direction int

const (
	Left Direction = iota + 1
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Command is one message on the bus. Direction is only set for Navigate.
type Command struct {
	Kind      Kind
	Direction Direction
}

// Raw signals sent by the deck's buttons.
const (
	SignalA     = "A"
	SignalB     = "B"
	SignalLeft  = "LEFT"
	SignalRight = "RIGHT"
)

// ParseSignal maps a raw button signal to a command. B is a valid signal
// with no command attached, reported as ok=false.
func ParseSignal(signal string) (cmd Command, ok bool, err error) {
	switch strings.ToUpper(strings.TrimSpace(signal)) {
	case SignalA:
		return Command{Kind: ToggleWishlist}, true, nil
	case SignalB:
		return Command{}, false, nil
	case SignalLeft:
		return Command{Kind: Navigate, Direction: Left}, true, nil
	case SignalRight:
		return Command{Kind: Navigate, Direction: Right}, true, nil
	default:
		return Command{}, false, apperrors.InvalidInput(fmt.Sprintf("unknown arcade signal %q", signal))
	}
}
