package availability

import (
	"fmt"
	"strconv"
	"strings"

	"beedical/pkg/apperror"
)

// Clock is a wall-clock time of day in minutes since midnight
type Clock int

const minutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" string. "24:00" is accepted as end of day.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !allDigits(hh) || !allDigits(mm) {
		return 0, apperror.InvalidInput(fmt.Sprintf("invalid time %q, use HH:MM", s))
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindInvalidInput, fmt.Sprintf("invalid time %q, use HH:MM", s), err)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindInvalidInput, fmt.Sprintf("invalid time %q, use HH:MM", s), err)
	}

	c := Clock(hours*60 + minutes)
	if hours < 0 || minutes < 0 || minutes > 59 || c > minutesPerDay {
		return 0, apperror.InvalidInput(fmt.Sprintf("invalid time %q, use HH:MM", s))
	}
	return c, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseClock is ParseClock for constants; it panics on malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a half-open interval [Start, End) within one day
type Window struct {
	Start Clock
	End   Clock
}

// ParseWindow parses a pair of "HH:MM" strings
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps uses half-open semantics: touching windows do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

func (w Window) Minutes() int {
	return int(w.End - w.Start)
}
