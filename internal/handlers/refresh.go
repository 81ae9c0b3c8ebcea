package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/db"
	"github.com/driveops/fleet-rental/internal/models"
	"github.com/driveops/fleet-rental/internal/notify"
	"github.com/driveops/fleet-rental/internal/reconcile"
)

// RefreshHandler runs a reconciliation pass on demand and returns the
// reconciled snapshot. The same pass also runs on the background schedule;
// this endpoint exists so the dashboard can force it on load.
type RefreshHandler struct {
	cars     db.CarCollection
	bookings db.BookingCollection
	payments db.PaymentCollection

	bookingWriter reconcile.BookingStatusWriter
	carWriter     reconcile.CarStatusWriter
}

// NewRefreshHandler creates a refresh handler. The writer arguments receive
// the derived status deltas; they are usually the same objects as the
// collections.
func NewRefreshHandler(cars db.CarCollection, bookings db.BookingCollection, payments db.PaymentCollection) *RefreshHandler {
	return &RefreshHandler{
		cars:          cars,
		bookings:      bookings,
		payments:      payments,
		bookingWriter: bookings,
		carWriter:     cars,
	}
}

// RefreshResponse is the payload of a refresh pass.
type RefreshResponse struct {
	Bookings      []models.Booking      `json:"bookings"`
	Cars          []models.Car          `json:"cars"`
	Notifications []models.Notification `json:"notifications"`
	Changed       bool                  `json:"changed"`
}

// Refresh handles POST /api/refresh.
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	bookings, err := h.bookings.ListBookings(ctx)
	if err != nil {
		http.Error(w, "Failed to load bookings", http.StatusInternalServerError)
		return
	}
	payments, err := h.payments.ListPayments(ctx)
	if err != nil {
		http.Error(w, "Failed to load payments", http.StatusInternalServerError)
		return
	}
	cars, err := h.cars.ListCars(ctx)
	if err != nil {
		http.Error(w, "Failed to load cars", http.StatusInternalServerError)
		return
	}

	today := reconcile.Today()
	res := reconcile.Run(bookings, payments, cars, today)
	if res.Changed() {
		log.WithFields(log.Fields{
			"booking_changes": len(res.BookingDeltas),
			"car_changes":     len(res.CarDeltas),
		}).Info("Reconciliation produced status changes")
		reconcile.Apply(ctx, h.bookingWriter, h.carWriter, res)
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		Bookings:      res.Bookings,
		Cars:          res.Cars,
		Notifications: notify.Generate(res.Bookings, today),
		Changed:       res.Changed(),
	})
}
