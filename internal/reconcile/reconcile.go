// Package reconcile derives booking and car statuses from the current data
// snapshot. The derivation is pure: it takes slices, returns new slices plus
// the list of status changes to persist, and never touches a store itself.
package reconcile

import (
	"time"

	"github.com/driveops/fleet-rental/internal/models"
)

// BookingDelta is a booking status change to persist.
type BookingDelta struct {
	ID     string
	Status models.BookingStatus
}

// CarDelta is a car status change to persist.
type CarDelta struct {
	ID     string
	Status models.CarStatus
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	Bookings      []models.Booking
	Cars          []models.Car
	BookingDeltas []BookingDelta
	CarDeltas     []CarDelta
}

// Changed reports whether the pass produced any status transition.
func (r *Result) Changed() bool {
	return len(r.BookingDeltas) > 0 || len(r.CarDeltas) > 0
}

// Today returns the current calendar date in the booking date format.
// Computed once per pass and reused for every booking.
func Today() string {
	return time.Now().Format(models.DateFormat)
}

// CollectedAmount sums the payments counting toward a booking. Bounced and
// refunded payments are excluded, as are pending ones.
func CollectedAmount(payments []models.Payment, bookingID string) float64 {
	var sum float64
	for _, p := range payments {
		if p.BookingID == bookingID && p.Status.Collected() {
			sum += p.Amount
		}
	}
	return sum
}

// Run executes one reconciliation pass over the snapshot. Booking statuses
// are derived first, then car statuses from the set of open bookings. Dates
// are ISO calendar dates, so plain string comparison is ordering-correct.
//
// Transitions are monotonic: Upcoming -> Active -> Completed. Cancellation
// is a manual action and never produced here; a booking past its start date
// with nothing collected stays Upcoming.
func Run(bookings []models.Booking, payments []models.Payment, cars []models.Car, today string) Result {
	res := Result{
		Bookings: make([]models.Booking, len(bookings)),
		Cars:     make([]models.Car, len(cars)),
	}

	// Step 1: booking status derivation, each booking independent.
	for i, b := range bookings {
		switch b.Status {
		case models.BookingUpcoming:
			if b.StartDate <= today && CollectedAmount(payments, b.ID) > 0 {
				b.Status = models.BookingActive
				res.BookingDeltas = append(res.BookingDeltas, BookingDelta{ID: b.ID, Status: b.Status})
			}
		case models.BookingActive:
			if b.EndDate < today {
				b.Status = models.BookingCompleted
				res.BookingDeltas = append(res.BookingDeltas, BookingDelta{ID: b.ID, Status: b.Status})
			}
		}
		res.Bookings[i] = b
	}

	// Step 2: car status derivation from the post-step-1 booking set.
	// A booking referencing a nonexistent car contributes an unused entry.
	bookedCarIDs := make(map[string]bool)
	for _, b := range res.Bookings {
		if b.Open() && b.CarID != "" {
			bookedCarIDs[b.CarID] = true
		}
	}

	for i, c := range cars {
		if !c.ManuallyParked() {
			if bookedCarIDs[c.ID] && c.Status == models.CarAvailable {
				c.Status = models.CarBooked
				res.CarDeltas = append(res.CarDeltas, CarDelta{ID: c.ID, Status: c.Status})
			} else if !bookedCarIDs[c.ID] && c.Status == models.CarBooked {
				c.Status = models.CarAvailable
				res.CarDeltas = append(res.CarDeltas, CarDelta{ID: c.ID, Status: c.Status})
			}
		}
		res.Cars[i] = c
	}

	return res
}
