// Package notify derives dashboard notifications from the reconciled
// snapshot. Notifications are recomputed on every refresh and never stored.
package notify

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/models"
)

// Notification categories.
const (
	CategoryReturn = "return"
)

// Generate builds the notification list for one refresh pass. today is a
// calendar date in models.DateFormat, the same anchor the reconciler used.
//
// An active booking due back today or tomorrow raises an urgent return
// alert. Bookings with unparseable end dates are skipped.
func Generate(bookings []models.Booking, today string) []models.Notification {
	anchor, err := time.Parse(models.DateFormat, today)
	if err != nil {
		log.WithError(err).WithField("today", today).Error("Invalid anchor date for notifications")
		return nil
	}

	var alerts []models.Notification
	for _, b := range bookings {
		if b.Status != models.BookingActive {
			continue
		}
		end, err := time.Parse(models.DateFormat, b.EndDate)
		if err != nil {
			log.WithFields(log.Fields{
				"booking_id": b.ID,
				"end_date":   b.EndDate,
			}).Warn("Skipping booking with invalid end date")
			continue
		}

		daysLeft := int(end.Sub(anchor).Hours() / 24)
		if daysLeft < 0 || daysLeft > 1 {
			continue
		}

		when := "tomorrow"
		if daysLeft == 0 {
			when = "today"
		}
		alerts = append(alerts, models.Notification{
			ID:        b.ID + "-return",
			Type:      "urgent",
			Category:  CategoryReturn,
			Title:     "Return due",
			Message:   fmt.Sprintf("%s - %s (%s)", b.ClientName, b.CarModel, when),
			Date:      b.EndDate,
			RelatedID: b.ID,
			DaysLeft:  daysLeft,
		})
	}
	return alerts
}
