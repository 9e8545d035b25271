package arcade

import (
	"errors"
	"fmt"
)

var (
	ErrNoHandles     = errors.New("arcade: no product handles available")
	ErrUnknownHandle = errors.New("arcade: current handle not in list")
)

// Adjacent returns the handle next to current in dir, wrapping around at
// both ends.
func Adjacent(handles []string, current string, dir Direction) (string, error) {
	if len(handles) == 0 {
		return "", ErrNoHandles
	}
	idx := -1
	for i, h := range handles {
		if h == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", fmt.Errorf("%w: %q", ErrUnknownHandle, current)
	}

	n := len(handles)
	switch dir {
	case Left:
		return handles[(idx-1+n)%n], nil
	case Right:
		return handles[(idx+1)%n], nil
	default:
		return "", fmt.Errorf("arcade: invalid direction %d", int(dir))
	}
}
