package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownItem is returned when a toggle names an id that is not part of
// the loaded backlog or activity catalog.
var ErrUnknownItem = errors.New("unknown item")

// ErrNotScheduled is returned when an activity is logged on a weekday it does
// not recur on.
var ErrNotScheduled = errors.New("activity not scheduled on that day")

// DateError indicates a day argument that could not be interpreted.
type DateError struct {
	Input string
}

func (e DateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD, today, or +N/-N)", e.Input)
}
