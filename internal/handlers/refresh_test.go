package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveops/fleet-rental/internal/models"
)

func isoDaysFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.DateFormat)
}

func TestRefreshHandler_ActivatesPaidBooking(t *testing.T) {
	cars := newFakeCars(models.Car{ID: "car-1", Brand: "Tesla", Model: "Model 3", Status: models.CarAvailable})
	bookings := newFakeBookings(models.Booking{
		ID: "b1", CarID: "car-1", ClientName: "Amina", CarModel: "Model 3",
		StartDate: isoDaysFromNow(-1), EndDate: isoDaysFromNow(5),
		Status: models.BookingUpcoming,
	})
	payments := newFakePayments(models.Payment{
		ID: "p1", BookingID: "b1", Amount: 300, Status: models.PaymentPaid,
	})
	handler := NewRefreshHandler(cars, bookings, payments)

	req := httptest.NewRequest("POST", "/api/refresh", nil)
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Changed)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, models.BookingActive, resp.Bookings[0].Status)
	require.Len(t, resp.Cars, 1)
	assert.Equal(t, models.CarBooked, resp.Cars[0].Status)

	// Deltas were persisted, not just returned.
	stored, err := bookings.FindBookingByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingActive, stored.Status)
	car, err := cars.FindCarByID(context.Background(), "car-1")
	require.NoError(t, err)
	assert.Equal(t, models.CarBooked, car.Status)
}

func TestRefreshHandler_UnpaidBookingStaysUpcoming(t *testing.T) {
	cars := newFakeCars(models.Car{ID: "car-1", Brand: "Tesla", Model: "Model 3", Status: models.CarAvailable})
	bookings := newFakeBookings(models.Booking{
		ID: "b1", CarID: "car-1", ClientName: "Amina",
		StartDate: isoDaysFromNow(-1), EndDate: isoDaysFromNow(5),
		Status: models.BookingUpcoming,
	})
	handler := NewRefreshHandler(cars, bookings, newFakePayments())

	req := httptest.NewRequest("POST", "/api/refresh", nil)
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Changed)
	assert.Equal(t, models.BookingUpcoming, resp.Bookings[0].Status)
	assert.Equal(t, models.CarAvailable, resp.Cars[0].Status)
}

func TestRefreshHandler_ReturnDueNotification(t *testing.T) {
	cars := newFakeCars(models.Car{ID: "car-1", Brand: "Tesla", Model: "Model 3", Status: models.CarBooked})
	bookings := newFakeBookings(models.Booking{
		ID: "b1", CarID: "car-1", ClientName: "Amina", CarModel: "Model 3",
		StartDate: isoDaysFromNow(-5), EndDate: isoDaysFromNow(0),
		Status: models.BookingActive,
	})
	handler := NewRefreshHandler(cars, bookings, newFakePayments())

	req := httptest.NewRequest("POST", "/api/refresh", nil)
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "urgent", resp.Notifications[0].Type)
	assert.Equal(t, "b1", resp.Notifications[0].RelatedID)
	assert.Equal(t, 0, resp.Notifications[0].DaysLeft)
}

func TestRefreshHandler_MethodNotAllowed(t *testing.T) {
	handler := NewRefreshHandler(newFakeCars(), newFakeBookings(), newFakePayments())

	req := httptest.NewRequest("GET", "/api/refresh", nil)
	w := httptest.NewRecorder()
	handler.Refresh(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
