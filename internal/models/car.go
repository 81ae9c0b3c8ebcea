package models

// CarStatus is the rental availability state of a car.
type CarStatus string

const (
	CarAvailable   CarStatus = "Available"
	CarBooked      CarStatus = "Booked"
	CarMaintenance CarStatus = "Maintenance"
	CarUnavailable CarStatus = "Unavailable"
)

// Car represents a rental fleet car.
type Car struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	Brand              string    `bson:"brand" json:"brand"`
	Model              string    `bson:"model" json:"model"`
	Year               int       `bson:"year" json:"year"`
	LicensePlate       string    `bson:"license_plate" json:"license_plate"`
	Type               string    `bson:"type" json:"type"` // "Sedan", "SUV", "Coupe", ...
	FuelType           string    `bson:"fuel_type" json:"fuel_type"`
	PricePerDay        float64   `bson:"price_per_day" json:"price_per_day"`
	Status             CarStatus `bson:"status" json:"status"`
	Mileage            float64   `bson:"mileage" json:"mileage"` // in kilometers
	InsuranceExpiry    string    `bson:"insurance_expiry,omitempty" json:"insurance_expiry,omitempty"`
	RegistrationExpiry string    `bson:"registration_expiry,omitempty" json:"registration_expiry,omitempty"`
	InspectionExpiry   string    `bson:"inspection_expiry,omitempty" json:"inspection_expiry,omitempty"`
	SecurityDeposit    float64   `bson:"security_deposit,omitempty" json:"security_deposit,omitempty"`
	Rating             float64   `bson:"rating" json:"rating"`
	Features           []string  `bson:"features,omitempty" json:"features,omitempty"`
	// TraccarDeviceID is the GPS device identifier (e.g. IMEI) when the car
	// carries a real tracker. Empty means the car is simulated when tracked.
	TraccarDeviceID string `bson:"traccar_device_id,omitempty" json:"traccar_device_id,omitempty"`
}

// ManuallyParked reports whether the car's status was set by hand and must
// not be overwritten by automatic booking reconciliation.
func (c *Car) ManuallyParked() bool {
	return c.Status == CarMaintenance || c.Status == CarUnavailable
}
