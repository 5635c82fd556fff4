package series

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when there is no date to anchor a shift on.
var ErrEmptyInput = errors.New("time series is empty")

// MalformedDateError reports a date key that is not YYYY-MM-DD.
type MalformedDateError struct {
	Date string
	Err  error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: %v", e.Date, e.Err)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }
