package domain

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

type boundaryKind int

const (
	operatingStart boundaryKind = iota
	operatingEnd
	bookingStart
	bookingEnd
)

// boundary is an interval endpoint annotated with the kind of interval it delimits.
type boundary struct {
	minute int
	kind   boundaryKind
}

// FindFreeSlots returns the parts of the operating intervals not covered by
// any booked interval, in time order. Booked intervals must not overlap each other.
//
// When an operating boundary and a booking boundary fall on the same minute,
// the operating boundary is processed first.
func FindFreeSlots(operating, booked []TimeInterval) []TimeInterval {
	booked = slices.Clone(booked)
	slices.SortStableFunc(booked, func(a, b TimeInterval) int {
		return a.Start.Minutes() - b.Start.Minutes()
	})

	points := make([]boundary, 0, 2*(len(operating)+len(booked)))
	for _, interval := range operating {
		points = append(points,
			boundary{minute: interval.Start.Minutes(), kind: operatingStart},
			boundary{minute: interval.End.Minutes(), kind: operatingEnd},
		)
	}
	for _, interval := range booked {
		points = append(points,
			boundary{minute: interval.Start.Minutes(), kind: bookingStart},
			boundary{minute: interval.End.Minutes(), kind: bookingEnd},
		)
	}
	slices.SortStableFunc(points, func(a, b boundary) int {
		return a.minute - b.minute
	})

	free := make([]TimeInterval, 0)
	emit := func(from, to int) {
		if from == to {
			return
		}
		free = append(free, TimeInterval{Start: Time{minutes: from}, End: Time{minutes: to}})
	}

	var (
		insideOperating bool
		insideBooking   bool
		freeStart       int
	)
	for _, p := range points {
		switch p.kind {
		case operatingStart:
			if !insideBooking {
				freeStart = p.minute
			}
			insideOperating = true
		case operatingEnd:
			if !insideBooking {
				emit(freeStart, p.minute)
			}
			insideOperating = false
		case bookingStart:
			if insideOperating && !insideBooking {
				emit(freeStart, p.minute)
			}
			insideBooking = true
		case bookingEnd:
			if insideOperating {
				freeStart = p.minute
			}
			insideBooking = false
		}
	}

	return free
}

// FilterByMinDuration keeps the slots lasting at least minDuration.
func FilterByMinDuration(slots []TimeInterval, minDuration time.Duration) []TimeInterval {
	return lo.Filter(slots, func(slot TimeInterval, _ int) bool {
		return slot.Duration() >= minDuration
	})
}

// TotalDuration sums the length of the given intervals.
func TotalDuration(intervals []TimeInterval) time.Duration {
	return lo.SumBy(intervals, func(interval TimeInterval) time.Duration {
		return interval.Duration()
	})
}
