package models

import (
	"testing"
)

func TestTrackingVehicle_AppendFix(t *testing.T) {
	v := &TrackingVehicle{Car: Car{ID: "car-1"}}

	for i := 0; i < HistoryLimit+20; i++ {
		v.AppendFix(GPSLocation{Lat: float64(i), Timestamp: int64(i)})
	}

	if len(v.History) != HistoryLimit {
		t.Errorf("Expected history capped at %d, got %d", HistoryLimit, len(v.History))
	}
	if v.History[0].Timestamp != 20 {
		t.Errorf("Expected oldest retained fix to be 20, got %d", v.History[0].Timestamp)
	}
	if v.CurrentLocation.Timestamp != int64(HistoryLimit+19) {
		t.Errorf("Expected current location to track the latest fix, got %d", v.CurrentLocation.Timestamp)
	}
}

func TestPaymentStatus_Collected(t *testing.T) {
	collected := []PaymentStatus{PaymentPaid, PaymentCleared}
	excluded := []PaymentStatus{PaymentPending, PaymentBounced, PaymentRefunded}

	for _, s := range collected {
		if !s.Collected() {
			t.Errorf("Expected %s to count as collected", s)
		}
	}
	for _, s := range excluded {
		if s.Collected() {
			t.Errorf("Expected %s not to count as collected", s)
		}
	}
}
