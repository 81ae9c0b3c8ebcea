package models

// Client represents a rental customer.
type Client struct {
	ID            string  `bson:"_id,omitempty" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Email         string  `bson:"email" json:"email"`
	Phone         string  `bson:"phone" json:"phone"`
	Spent         float64 `bson:"spent" json:"spent"`
	RentalsCount  int     `bson:"rentals_count" json:"rentals_count"`
	Status        string  `bson:"status" json:"status"` // "Active" or "Blocked"
	IDNumber      string  `bson:"id_number,omitempty" json:"id_number,omitempty"`
	LicenseNumber string  `bson:"license_number,omitempty" json:"license_number,omitempty"`
	LicenseExpiry string  `bson:"license_expiry,omitempty" json:"license_expiry,omitempty"`
}
