package models

import "time"

// ContractComment is a dated remark attached to a contract.
type ContractComment struct {
	ID   string `bson:"id" json:"id"`
	Date string `bson:"date" json:"date"`
	Text string `bson:"text" json:"text"`
	User string `bson:"user" json:"user"`
}

// Contract represents the rental agreement backing a booking. A locked
// contract can no longer be edited.
type Contract struct {
	ID           string            `bson:"_id,omitempty" json:"id"`
	BookingID    string            `bson:"booking_id" json:"booking_id"`
	PaymentID    string            `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Status       string            `bson:"status" json:"status"` // "Draft" or "Locked"
	CustomTerms  string            `bson:"custom_terms,omitempty" json:"custom_terms,omitempty"`
	ContractDate string            `bson:"contract_date" json:"contract_date"`
	Language     string            `bson:"language" json:"language"` // "en", "fr", "ar"
	Comments     []ContractComment `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
}
