package db

import (
	"context"

	"github.com/driveops/fleet-rental/internal/models"
)

// CarCollection defines the interface for car data operations.
type CarCollection interface {
	ListCars(ctx context.Context) ([]models.Car, error)
	FindCarByID(ctx context.Context, id string) (*models.Car, error)
	InsertCar(ctx context.Context, car models.Car) error
	UpdateCar(ctx context.Context, id string, car models.Car) error
	UpdateCarStatus(ctx context.Context, id string, status models.CarStatus) error
	DeleteCar(ctx context.Context, id string) error
}

// BookingCollection defines the interface for booking data operations.
type BookingCollection interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	FindBookingByID(ctx context.Context, id string) (*models.Booking, error)
	InsertBooking(ctx context.Context, booking models.Booking) error
	UpdateBooking(ctx context.Context, id string, booking models.Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	DeleteBooking(ctx context.Context, id string) error
}

// PaymentCollection defines the interface for payment data operations.
type PaymentCollection interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	InsertPayment(ctx context.Context, payment models.Payment) error
	UpdatePayment(ctx context.Context, id string, payment models.Payment) error
	DeletePayment(ctx context.Context, id string) error
}

// ClientCollection defines the interface for client data operations.
type ClientCollection interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	FindClientByID(ctx context.Context, id string) (*models.Client, error)
	InsertClient(ctx context.Context, client models.Client) error
	UpdateClient(ctx context.Context, id string, client models.Client) error
	DeleteClient(ctx context.Context, id string) error
}

// ContractCollection defines the interface for contract data operations.
type ContractCollection interface {
	ListContracts(ctx context.Context) ([]models.Contract, error)
	InsertContract(ctx context.Context, contract models.Contract) error
	UpdateContract(ctx context.Context, id string, contract models.Contract) error
	DeleteContract(ctx context.Context, id string) error
}
