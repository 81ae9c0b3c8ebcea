package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driveops/fleet-rental/internal/models"
)

func TestGenerate_ReturnDue(t *testing.T) {
	today := "2026-08-30"
	bookings := []models.Booking{
		{ID: "b1", ClientName: "Amina", CarModel: "Model 3", Status: models.BookingActive, EndDate: "2026-08-30"},
		{ID: "b2", ClientName: "Youssef", CarModel: "X5", Status: models.BookingActive, EndDate: "2026-08-31"},
		{ID: "b3", ClientName: "Karim", CarModel: "A4", Status: models.BookingActive, EndDate: "2026-09-05"},
		{ID: "b4", ClientName: "Sara", CarModel: "Clio", Status: models.BookingUpcoming, EndDate: "2026-08-30"},
		{ID: "b5", ClientName: "Nadia", CarModel: "208", Status: models.BookingActive, EndDate: "2026-08-28"},
	}

	alerts := Generate(bookings, today)

	assert.Len(t, alerts, 2, "only active bookings due today or tomorrow alert")

	assert.Equal(t, "b1-return", alerts[0].ID)
	assert.Equal(t, "urgent", alerts[0].Type)
	assert.Equal(t, CategoryReturn, alerts[0].Category)
	assert.Equal(t, 0, alerts[0].DaysLeft)
	assert.Contains(t, alerts[0].Message, "today")

	assert.Equal(t, "b2", alerts[1].RelatedID)
	assert.Equal(t, 1, alerts[1].DaysLeft)
	assert.Contains(t, alerts[1].Message, "tomorrow")
}

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, Generate(nil, "2026-08-30"))
	assert.Empty(t, Generate([]models.Booking{
		{ID: "b1", Status: models.BookingCompleted, EndDate: "2026-08-30"},
	}, "2026-08-30"))
}

func TestGenerate_SkipsBadDates(t *testing.T) {
	alerts := Generate([]models.Booking{
		{ID: "b1", Status: models.BookingActive, EndDate: "not-a-date"},
		{ID: "b2", ClientName: "Amina", CarModel: "Model 3", Status: models.BookingActive, EndDate: "2026-08-30"},
	}, "2026-08-30")

	assert.Len(t, alerts, 1)
	assert.Equal(t, "b2", alerts[0].RelatedID)

	assert.Nil(t, Generate([]models.Booking{{ID: "b1", Status: models.BookingActive}}, "garbage"))
}
