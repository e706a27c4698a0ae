// Package availability computes the bookable time slots of a doctor for one
// day from working hours, fixed unavailability windows and existing bookings.
// It performs no I/O.
package availability

import (
	"fmt"
	"time"

	"beedical/pkg/apperror"
)

// Slot is one bookable interval rendered as "HH:MM" strings
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Period is a raw unavailability window as stored in the dataset
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Booking is an existing appointment interval. Date carries the calendar day
// independently of the slot being tested.
type Booking struct {
	Date  time.Time
	Start string
	End   string
}

// Input gathers everything the calculator needs for one doctor and one day
type Input struct {
	WorkStart    string
	WorkEnd      string
	SlotDuration int // minutes
	Unavailable  []Period
	Date         time.Time
	Bookings     []Booking
}

// Generate walks [start, end) in steps of duration. The last slot is clamped
// to end and may be shorter than duration.
func Generate(start, end Clock, duration int) []Window {
	if duration <= 0 || start >= end {
		return nil
	}

	slots := make([]Window, 0, (int(end-start)+duration-1)/duration)
	for t := start; t < end; t += Clock(duration) {
		slotEnd := t + Clock(duration)
		if slotEnd > end {
			slotEnd = end
		}
		slots = append(slots, Window{Start: t, End: slotEnd})
	}
	return slots
}

// Calculate returns the slots of in.Date that overlap neither an
// unavailability window nor a booking on the same date, in chronological
// order. Malformed times or an empty working range fail with an
// InvalidInput error.
func Calculate(in Input) ([]Slot, error) {
	work, err := ParseWindow(in.WorkStart, in.WorkEnd)
	if err != nil {
		return nil, err
	}
	if work.Start >= work.End {
		return nil, apperror.InvalidInput(fmt.Sprintf("working hours %s-%s are empty", in.WorkStart, in.WorkEnd))
	}
	if in.SlotDuration <= 0 {
		return nil, apperror.InvalidInput(fmt.Sprintf("slot duration must be positive, got %d", in.SlotDuration))
	}

	blocked := make([]Window, 0, len(in.Unavailable)+len(in.Bookings))
	for _, p := range in.Unavailable {
		w, err := ParseWindow(p.Start, p.End)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, w)
	}
	for _, b := range in.Bookings {
		if !SameDay(b.Date, in.Date) {
			continue
		}
		w, err := ParseWindow(b.Start, b.End)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, w)
	}

	result := make([]Slot, 0)
	for _, slot := range Generate(work.Start, work.End, in.SlotDuration) {
		if overlapsAny(slot, blocked) {
			continue
		}
		result = append(result, Slot{Start: slot.Start.String(), End: slot.End.String()})
	}
	return result, nil
}

// Conflicts reports whether candidate overlaps any booking on date.
func Conflicts(candidate Window, date time.Time, bookings []Booking) (bool, error) {
	for _, b := range bookings {
		if !SameDay(b.Date, date) {
			continue
		}
		w, err := ParseWindow(b.Start, b.End)
		if err != nil {
			return false, err
		}
		if candidate.Overlaps(w) {
			return true, nil
		}
	}
	return false, nil
}

// SameDay compares calendar dates, each in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func overlapsAny(slot Window, blocked []Window) bool {
	for _, w := range blocked {
		if slot.Overlaps(w) {
			return true
		}
	}
	return false
}
