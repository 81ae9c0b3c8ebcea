package models

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Paid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentCleared  PaymentStatus = "Cleared"
	PaymentBounced  PaymentStatus = "Bounced"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Collected reports whether the payment counts toward a booking's collected
// amount. Pending, bounced and refunded payments never do.
func (s PaymentStatus) Collected() bool {
	return s == PaymentPaid || s == PaymentCleared
}

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCheck        PaymentMethod = "Check"
	MethodOnline       PaymentMethod = "Online (Stripe)"
)

// PaymentPurpose is what a payment is for.
type PaymentPurpose string

const (
	PurposeRental  PaymentPurpose = "Rental Fee"
	PurposeDeposit PaymentPurpose = "Security Deposit"
	PurposeExtra   PaymentPurpose = "Extra Charges"
	PurposeRefund  PaymentPurpose = "Refund"
)

// Payment represents money collected (or returned) against a booking.
type Payment struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	BookingID   string         `bson:"booking_id" json:"booking_id"`
	Amount      float64        `bson:"amount" json:"amount"`
	Currency    string         `bson:"currency" json:"currency"`
	Method      PaymentMethod  `bson:"method" json:"method"`
	Purpose     PaymentPurpose `bson:"purpose" json:"purpose"`
	Status      PaymentStatus  `bson:"status" json:"status"`
	Date        string         `bson:"date" json:"date"` // calendar date, DateFormat
	CollectedBy string         `bson:"collected_by" json:"collected_by"`
	Reference   string         `bson:"reference,omitempty" json:"reference,omitempty"`
	Notes       string         `bson:"notes,omitempty" json:"notes,omitempty"`
}
