package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/driveops/fleet-rental/internal/models"
)

// MongoCars implements CarCollection for MongoDB.
type MongoCars struct {
	Collection *mongo.Collection
}

// ListCars returns every car in the fleet.
func (c *MongoCars) ListCars(ctx context.Context) ([]models.Car, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// FindCarByID finds a car by its ID.
func (c *MongoCars) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var car models.Car
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("car not found")
		}
		return nil, err
	}
	return &car, nil
}

// InsertCar inserts a car record.
func (c *MongoCars) InsertCar(ctx context.Context, car models.Car) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, car)
	return err
}

// UpdateCar replaces a car's fields by ID.
func (c *MongoCars) UpdateCar(ctx context.Context, id string, car models.Car) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": car})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("car not found")
	}
	return nil
}

// UpdateCarStatus writes only the status field. Used by the reconciliation
// delta applier.
func (c *MongoCars) UpdateCarStatus(ctx context.Context, id string, status models.CarStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("car not found")
	}
	return nil
}

// DeleteCar deletes a car by its ID.
func (c *MongoCars) DeleteCar(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("car not found")
	}
	return nil
}

// MongoBookings implements BookingCollection for MongoDB.
type MongoBookings struct {
	Collection *mongo.Collection
}

// ListBookings returns every booking.
func (c *MongoBookings) ListBookings(ctx context.Context) ([]models.Booking, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindBookingByID finds a booking by its ID.
func (c *MongoBookings) FindBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var booking models.Booking
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// InsertBooking inserts a booking record.
func (c *MongoBookings) InsertBooking(ctx context.Context, booking models.Booking) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, booking)
	return err
}

// UpdateBooking replaces a booking's fields by ID.
func (c *MongoBookings) UpdateBooking(ctx context.Context, id string, booking models.Booking) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": booking})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

// UpdateBookingStatus writes only the status field. Used by the
// reconciliation delta applier.
func (c *MongoBookings) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

// DeleteBooking deletes a booking by its ID.
func (c *MongoBookings) DeleteBooking(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

// MongoPayments implements PaymentCollection for MongoDB.
type MongoPayments struct {
	Collection *mongo.Collection
}

// ListPayments returns every payment.
func (c *MongoPayments) ListPayments(ctx context.Context) ([]models.Payment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// InsertPayment inserts a payment record.
func (c *MongoPayments) InsertPayment(ctx context.Context, payment models.Payment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, payment)
	return err
}

// UpdatePayment replaces a payment's fields by ID.
func (c *MongoPayments) UpdatePayment(ctx context.Context, id string, payment models.Payment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": payment})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}

// DeletePayment deletes a payment by its ID.
func (c *MongoPayments) DeletePayment(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}

// MongoClients implements ClientCollection for MongoDB.
type MongoClients struct {
	Collection *mongo.Collection
}

// ListClients returns every client.
func (c *MongoClients) ListClients(ctx context.Context) ([]models.Client, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// FindClientByID finds a client by its ID.
func (c *MongoClients) FindClientByID(ctx context.Context, id string) (*models.Client, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var client models.Client
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("client not found")
		}
		return nil, err
	}
	return &client, nil
}

// InsertClient inserts a client record.
func (c *MongoClients) InsertClient(ctx context.Context, client models.Client) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, client)
	return err
}

// UpdateClient replaces a client's fields by ID.
func (c *MongoClients) UpdateClient(ctx context.Context, id string, client models.Client) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": client})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client not found")
	}
	return nil
}

// DeleteClient deletes a client by its ID.
func (c *MongoClients) DeleteClient(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("client not found")
	}
	return nil
}

// MongoContracts implements ContractCollection for MongoDB.
type MongoContracts struct {
	Collection *mongo.Collection
}

// ListContracts returns every contract.
func (c *MongoContracts) ListContracts(ctx context.Context) ([]models.Contract, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var contracts []models.Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// InsertContract inserts a contract record.
func (c *MongoContracts) InsertContract(ctx context.Context, contract models.Contract) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, contract)
	return err
}

// UpdateContract replaces a contract's fields by ID.
func (c *MongoContracts) UpdateContract(ctx context.Context, id string, contract models.Contract) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": contract})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("contract not found")
	}
	return nil
}

// DeleteContract deletes a contract by its ID.
func (c *MongoContracts) DeleteContract(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("contract not found")
	}
	return nil
}
