package series

import (
	"fmt"
	"strings"
	"time"

	"seriesshift/internal/util"
)

// Anchor selects which record of a series lands on the target date.
type Anchor int

const (
	AnchorEarliest Anchor = iota
	AnchorLatest
)

func (a Anchor) String() string {
	switch a {
	case AnchorLatest:
		return "latest"
	default:
		return "earliest"
	}
}

func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "earliest":
		return AnchorEarliest, nil
	case "latest":
		return AnchorLatest, nil
	default:
		return AnchorEarliest, fmt.Errorf("unknown anchor %q (want earliest or latest)", s)
	}
}

type shiftOptions struct {
	anchor Anchor
}

type ShiftOption func(*shiftOptions)

func WithAnchor(a Anchor) ShiftOption {
	return func(o *shiftOptions) { o.anchor = a }
}

// AnchorDate picks the smallest (or largest) key. YYYY-MM-DD keys sort
// lexicographically in calendar order, so no parsing is needed.
func AnchorDate(ts *TimeSeries, anchor Anchor) (string, error) {
	if ts.Len() == 0 {
		return "", ErrEmptyInput
	}
	keys := ts.Keys()
	best := keys[0]
	for _, k := range keys[1:] {
		if anchor == AnchorLatest && k > best || anchor == AnchorEarliest && k < best {
			best = k
		}
	}
	return best, nil
}

// Offset returns the signed day count that moves the anchor date onto target.
func Offset(ts *TimeSeries, target time.Time, anchor Anchor) (int, error) {
	date, err := AnchorDate(ts, anchor)
	if err != nil {
		return 0, err
	}
	from, err := util.ParseDate(date)
	if err != nil {
		return 0, &MalformedDateError{Date: date, Err: err}
	}
	return util.DaysBetween(from, target), nil
}

// Shift returns a copy of ds whose dates are all moved by the same number
// of days so that the anchor date (the earliest by default) equals target.
// Records and metadata are carried over unchanged and ds is not modified.
// The output keeps the input's key order.
func Shift(ds *Dataset, target time.Time, opts ...ShiftOption) (*Dataset, error) {
	o := shiftOptions{anchor: AnchorEarliest}
	for _, opt := range opts {
		opt(&o)
	}

	if ds == nil {
		return nil, ErrEmptyInput
	}

	offset, err := Offset(ds.Series, target, o.anchor)
	if err != nil {
		return nil, err
	}
	return ShiftBy(ds, offset)
}

// ShiftBy returns a copy of ds with every date moved by offset days.
func ShiftBy(ds *Dataset, offset int) (*Dataset, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyInput
	}

	shifted := NewTimeSeries()
	for _, date := range ds.Series.keys {
		d, err := util.ParseDate(date)
		if err != nil {
			return nil, &MalformedDateError{Date: date, Err: err}
		}
		shifted.Set(util.FormatDate(util.AddDays(d, offset)), ds.Series.records[date])
	}

	return &Dataset{Meta: ds.Meta, Series: shifted}, nil
}
