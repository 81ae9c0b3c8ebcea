package models

// DateFormat is the calendar-date layout used for booking and payment dates.
// Dates in this format compare correctly as plain strings.
const DateFormat = "2006-01-02"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "Upcoming"
	BookingActive    BookingStatus = "Active"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking represents a rental reservation for a car over a date range.
// StartDate and EndDate are calendar dates (DateFormat), no time component.
type Booking struct {
	ID            string        `bson:"_id,omitempty" json:"id"`
	ClientID      string        `bson:"client_id,omitempty" json:"client_id,omitempty"`
	CarID         string        `bson:"car_id,omitempty" json:"car_id,omitempty"`
	ClientName    string        `bson:"client_name" json:"client_name"`
	CarModel      string        `bson:"car_model" json:"car_model"`
	StartDate     string        `bson:"start_date" json:"start_date"`
	EndDate       string        `bson:"end_date" json:"end_date"`
	TotalPrice    float64       `bson:"total_price" json:"total_price"`
	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus string        `bson:"payment_status" json:"payment_status"` // "Paid", "Pending", "Failed"
	DepositAmount float64       `bson:"deposit_amount,omitempty" json:"deposit_amount,omitempty"`
}

// Open reports whether the booking still claims its car, i.e. it is either
// running or yet to start.
func (b *Booking) Open() bool {
	return b.Status == BookingActive || b.Status == BookingUpcoming
}
