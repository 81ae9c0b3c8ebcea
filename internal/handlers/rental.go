package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/db"
	"github.com/driveops/fleet-rental/internal/models"
)

// RentalHandler serves the fleet, booking, client, payment and contract
// resources.
type RentalHandler struct {
	cars      db.CarCollection
	bookings  db.BookingCollection
	payments  db.PaymentCollection
	clients   db.ClientCollection
	contracts db.ContractCollection
}

// NewRentalHandler creates a handler over the given collections.
func NewRentalHandler(cars db.CarCollection, bookings db.BookingCollection, payments db.PaymentCollection, clients db.ClientCollection, contracts db.ContractCollection) *RentalHandler {
	return &RentalHandler{
		cars:      cars,
		bookings:  bookings,
		payments:  payments,
		clients:   clients,
		contracts: contracts,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathID returns the trailing id segment after the given prefix, or "" for
// the collection route itself.
func pathID(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

// Cars routes /api/cars and /api/cars/{id}.
func (h *RentalHandler) Cars(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/cars")

	switch {
	case r.Method == http.MethodGet && id == "":
		cars, err := h.cars.ListCars(r.Context())
		if err != nil {
			http.Error(w, "Failed to list cars", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cars)

	case r.Method == http.MethodGet:
		car, err := h.cars.FindCarByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Car not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, car)

	case r.Method == http.MethodPost && id == "":
		var car models.Car
		if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if car.Brand == "" || car.Model == "" {
			http.Error(w, "Brand and model are required", http.StatusBadRequest)
			return
		}
		if car.ID == "" {
			car.ID = uuid.NewString()
		}
		if car.Status == "" {
			car.Status = models.CarAvailable
		}
		if err := h.cars.InsertCar(r.Context(), car); err != nil {
			http.Error(w, "Failed to create car", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, car)

	case r.Method == http.MethodPut && id != "":
		var car models.Car
		if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := h.cars.UpdateCar(r.Context(), id, car); err != nil {
			http.Error(w, "Failed to update car", http.StatusNotFound)
			return
		}
		car.ID = id
		writeJSON(w, http.StatusOK, car)

	case r.Method == http.MethodDelete && id != "":
		if err := h.cars.DeleteCar(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete car", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Bookings routes /api/bookings and /api/bookings/{id}. Creating or
// cancelling a booking keeps the car status in step immediately; the
// reconciler would catch it on the next pass anyway.
func (h *RentalHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/bookings")

	switch {
	case r.Method == http.MethodGet && id == "":
		bookings, err := h.bookings.ListBookings(r.Context())
		if err != nil {
			http.Error(w, "Failed to list bookings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, bookings)

	case r.Method == http.MethodGet:
		booking, err := h.bookings.FindBookingByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case r.Method == http.MethodPost && id == "":
		var booking models.Booking
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := validateBooking(&booking); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if booking.ID == "" {
			booking.ID = uuid.NewString()
		}
		if booking.Status == "" {
			booking.Status = models.BookingUpcoming
		}
		if err := h.bookings.InsertBooking(r.Context(), booking); err != nil {
			http.Error(w, "Failed to create booking", http.StatusInternalServerError)
			return
		}
		h.syncCarForBooking(r, &booking)
		writeJSON(w, http.StatusCreated, booking)

	case r.Method == http.MethodPut && id != "":
		var booking models.Booking
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := h.bookings.UpdateBooking(r.Context(), id, booking); err != nil {
			http.Error(w, "Failed to update booking", http.StatusNotFound)
			return
		}
		booking.ID = id
		h.syncCarForBooking(r, &booking)
		writeJSON(w, http.StatusOK, booking)

	case r.Method == http.MethodDelete && id != "":
		booking, err := h.bookings.FindBookingByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		if err := h.bookings.DeleteBooking(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete booking", http.StatusInternalServerError)
			return
		}
		if booking.Open() {
			h.releaseCar(r, booking.CarID)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func validateBooking(b *models.Booking) error {
	switch {
	case b.CarID == "":
		return errors.New("car_id is required")
	case b.ClientName == "":
		return errors.New("client_name is required")
	case b.StartDate == "" || b.EndDate == "":
		return errors.New("start_date and end_date are required")
	case b.EndDate < b.StartDate:
		return errors.New("end_date is before start_date")
	}
	return nil
}

// syncCarForBooking books or releases the car behind a mutated booking.
// Manually parked cars are left alone.
func (h *RentalHandler) syncCarForBooking(r *http.Request, b *models.Booking) {
	car, err := h.cars.FindCarByID(r.Context(), b.CarID)
	if err != nil || car.ManuallyParked() {
		return
	}
	want := models.CarAvailable
	if b.Open() {
		want = models.CarBooked
	}
	if car.Status == want {
		return
	}
	if err := h.cars.UpdateCarStatus(r.Context(), b.CarID, want); err != nil {
		log.WithError(err).WithField("car_id", b.CarID).Warn("Failed to sync car status")
	}
}

func (h *RentalHandler) releaseCar(r *http.Request, carID string) {
	car, err := h.cars.FindCarByID(r.Context(), carID)
	if err != nil || car.ManuallyParked() || car.Status == models.CarAvailable {
		return
	}
	if err := h.cars.UpdateCarStatus(r.Context(), carID, models.CarAvailable); err != nil {
		log.WithError(err).WithField("car_id", carID).Warn("Failed to release car")
	}
}

// Clients routes /api/clients and /api/clients/{id}.
func (h *RentalHandler) Clients(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/clients")

	switch {
	case r.Method == http.MethodGet && id == "":
		clients, err := h.clients.ListClients(r.Context())
		if err != nil {
			http.Error(w, "Failed to list clients", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, clients)

	case r.Method == http.MethodGet:
		client, err := h.clients.FindClientByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, client)

	case r.Method == http.MethodPost && id == "":
		var client models.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if client.Name == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		if client.ID == "" {
			client.ID = uuid.NewString()
		}
		if client.Status == "" {
			client.Status = "Active"
		}
		if err := h.clients.InsertClient(r.Context(), client); err != nil {
			http.Error(w, "Failed to create client", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, client)

	case r.Method == http.MethodPut && id != "":
		var client models.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := h.clients.UpdateClient(r.Context(), id, client); err != nil {
			http.Error(w, "Failed to update client", http.StatusNotFound)
			return
		}
		client.ID = id
		writeJSON(w, http.StatusOK, client)

	case r.Method == http.MethodDelete && id != "":
		if err := h.clients.DeleteClient(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete client", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Payments routes /api/payments and /api/payments/{id}.
func (h *RentalHandler) Payments(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/payments")

	switch {
	case r.Method == http.MethodGet && id == "":
		payments, err := h.payments.ListPayments(r.Context())
		if err != nil {
			http.Error(w, "Failed to list payments", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, payments)

	case r.Method == http.MethodPost && id == "":
		var payment models.Payment
		if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if payment.BookingID == "" {
			http.Error(w, "booking_id is required", http.StatusBadRequest)
			return
		}
		if payment.Amount <= 0 {
			http.Error(w, "Amount must be positive", http.StatusBadRequest)
			return
		}
		if payment.ID == "" {
			payment.ID = uuid.NewString()
		}
		if payment.Status == "" {
			payment.Status = models.PaymentPending
		}
		if err := h.payments.InsertPayment(r.Context(), payment); err != nil {
			http.Error(w, "Failed to record payment", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, payment)

	case r.Method == http.MethodPut && id != "":
		var payment models.Payment
		if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := h.payments.UpdatePayment(r.Context(), id, payment); err != nil {
			http.Error(w, "Failed to update payment", http.StatusNotFound)
			return
		}
		payment.ID = id
		writeJSON(w, http.StatusOK, payment)

	case r.Method == http.MethodDelete && id != "":
		if err := h.payments.DeletePayment(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete payment", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Payment deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Contracts routes /api/contracts and /api/contracts/{id}.
func (h *RentalHandler) Contracts(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/contracts")

	switch {
	case r.Method == http.MethodGet && id == "":
		contracts, err := h.contracts.ListContracts(r.Context())
		if err != nil {
			http.Error(w, "Failed to list contracts", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, contracts)

	case r.Method == http.MethodPost && id == "":
		var contract models.Contract
		if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if contract.BookingID == "" {
			http.Error(w, "booking_id is required", http.StatusBadRequest)
			return
		}
		if contract.ID == "" {
			contract.ID = uuid.NewString()
		}
		if contract.Status == "" {
			contract.Status = "Draft"
		}
		if contract.Language == "" {
			contract.Language = "en"
		}
		if err := h.contracts.InsertContract(r.Context(), contract); err != nil {
			http.Error(w, "Failed to create contract", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, contract)

	case r.Method == http.MethodPut && id != "":
		var contract models.Contract
		if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := h.contracts.UpdateContract(r.Context(), id, contract); err != nil {
			http.Error(w, "Failed to update contract", http.StatusNotFound)
			return
		}
		contract.ID = id
		writeJSON(w, http.StatusOK, contract)

	case r.Method == http.MethodDelete && id != "":
		if err := h.contracts.DeleteContract(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete contract", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Contract deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
