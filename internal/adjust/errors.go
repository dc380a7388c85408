package adjust

import (
	"errors"
	"fmt"
	"time"
)

// ErrValueNotFound means no series value resolves at (or near) the requested
// date.
var ErrValueNotFound = errors.New("indicator value not found for date")

// ErrRangeNotCovered marks a compounding request whose months fall entirely
// outside the available series.
var ErrRangeNotCovered = errors.New("requested range not covered by series")

// RangeError reports the available series bounds alongside ErrRangeNotCovered
// so the caller can tell the user which months exist.
type RangeError struct {
	Min time.Time
	Max time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("no IPC data for the requested range; available from %s to %s",
		e.Min.Format("2006-01"), e.Max.Format("2006-01"))
}

func (e *RangeError) Is(target error) bool { return target == ErrRangeNotCovered }
