package reconcile

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/models"
)

// BookingStatusWriter is the booking write-back surface the applier needs.
// Satisfied by db.MongoBookings.
type BookingStatusWriter interface {
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
}

// CarStatusWriter is the car write-back surface the applier needs.
// Satisfied by db.MongoCars.
type CarStatusWriter interface {
	UpdateCarStatus(ctx context.Context, id string, status models.CarStatus) error
}

// Apply persists the deltas of a pass, each entity independently. A failed
// write is logged and skipped; the in-memory transition stands either way,
// and the next pass will derive the same delta again.
func Apply(ctx context.Context, bookings BookingStatusWriter, cars CarStatusWriter, res Result) {
	for _, d := range res.BookingDeltas {
		if err := bookings.UpdateBookingStatus(ctx, d.ID, d.Status); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"booking_id": d.ID,
				"status":     d.Status,
			}).Warn("Failed to persist booking status")
		}
	}
	for _, d := range res.CarDeltas {
		if err := cars.UpdateCarStatus(ctx, d.ID, d.Status); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"car_id": d.ID,
				"status": d.Status,
			}).Warn("Failed to persist car status")
		}
	}
}
