package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/auth"
	"github.com/driveops/fleet-rental/internal/config"
	"github.com/driveops/fleet-rental/internal/db"
	"github.com/driveops/fleet-rental/internal/handlers"
	"github.com/driveops/fleet-rental/internal/middleware"
	"github.com/driveops/fleet-rental/internal/notify"
	"github.com/driveops/fleet-rental/internal/reconcile"
	"github.com/driveops/fleet-rental/internal/tracking"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	database := client.Database(cfg.MongoDB)
	log.WithField("db", cfg.MongoDB).Info("Connected to MongoDB")

	cars := &db.MongoCars{Collection: database.Collection("cars")}
	bookings := &db.MongoBookings{Collection: database.Collection("bookings")}
	payments := &db.MongoPayments{Collection: database.Collection("payments")}
	clients := &db.MongoClients{Collection: database.Collection("clients")}
	contracts := &db.MongoContracts{Collection: database.Collection("contracts")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracking: build the fleet from the current car list, then run the
	// engine in whichever mode the configuration selects.
	carList, err := cars.ListCars(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to load cars for tracking")
	}
	fleet := tracking.NewFleet(carList)

	var traccar *tracking.TraccarClient
	if cfg.TraccarConfigured() {
		traccar = tracking.NewTraccarClient(cfg.TraccarURL, cfg.TraccarUsername, cfg.TraccarPassword)
	}

	var pub tracking.Publisher
	if cfg.MQTTBroker != "" {
		mq, err := tracking.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			log.WithError(err).Warn("MQTT publisher unavailable, fixes will not be streamed")
		} else {
			pub = mq
			defer mq.Close()
		}
	}

	engine := tracking.NewEngine(fleet, traccar, pub, cfg.TrackingInterval)
	go engine.Run(ctx)

	// Scheduled reconciliation, in addition to the on-demand endpoint.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReconcileSchedule, func() {
		runReconcile(ctx, cars, bookings, payments)
	}); err != nil {
		log.WithError(err).WithField("schedule", cfg.ReconcileSchedule).Fatal("Invalid reconcile schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := handlers.NewAuthHandler(authService, users)
	rentalHandler := handlers.NewRentalHandler(cars, bookings, payments, clients, contracts)
	refreshHandler := handlers.NewRefreshHandler(cars, bookings, payments)
	trackingHandler := handlers.NewTrackingHandler(fleet, engine)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/profile", profileRouter(authHandler))
	mux.HandleFunc("/api/auth/change-password", authHandler.ChangePassword)

	mux.HandleFunc("/api/cars", rentalHandler.Cars)
	mux.HandleFunc("/api/cars/", rentalHandler.Cars)
	mux.HandleFunc("/api/bookings", rentalHandler.Bookings)
	mux.HandleFunc("/api/bookings/", rentalHandler.Bookings)
	mux.HandleFunc("/api/clients", rentalHandler.Clients)
	mux.HandleFunc("/api/clients/", rentalHandler.Clients)
	mux.HandleFunc("/api/payments", rentalHandler.Payments)
	mux.HandleFunc("/api/payments/", rentalHandler.Payments)
	mux.HandleFunc("/api/contracts", rentalHandler.Contracts)
	mux.HandleFunc("/api/contracts/", rentalHandler.Contracts)

	mux.HandleFunc("/api/refresh", refreshHandler.Refresh)

	mux.HandleFunc("/api/tracking/vehicles", trackingHandler.Vehicles)
	mux.HandleFunc("/api/tracking/status", trackingHandler.Status)
	mux.HandleFunc("/api/tracking/interval", trackingHandler.Interval)
	mux.HandleFunc("/api/tracking/geofences", trackingHandler.Geofences)
	mux.HandleFunc("/api/tracking/alerts", trackingHandler.Alerts)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	authMW := middleware.NewAuthMiddleware(authService)
	rateMW := middleware.NewRateLimitMiddleware()
	handler := rateMW.RateLimit(300, 60)(authMW.Authenticate(mux))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}
	go func() {
		<-ctx.Done()
		log.Info("Shutting down HTTP server")
		srv.Shutdown(context.Background())
	}()

	log.WithFields(log.Fields{
		"port": cfg.Port,
		"mode": engine.Mode(),
	}).Info("HTTP server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("HTTP server failed")
	}
}

// profileRouter dispatches the profile endpoint by method; GET reads, PUT
// updates.
func profileRouter(h *handlers.AuthHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetProfile(w, r)
		case http.MethodPut:
			h.UpdateProfile(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func runReconcile(ctx context.Context, cars *db.MongoCars, bookings *db.MongoBookings, payments *db.MongoPayments) {
	bs, err := bookings.ListBookings(ctx)
	if err != nil {
		log.WithError(err).Warn("Scheduled reconcile: failed to load bookings")
		return
	}
	ps, err := payments.ListPayments(ctx)
	if err != nil {
		log.WithError(err).Warn("Scheduled reconcile: failed to load payments")
		return
	}
	cs, err := cars.ListCars(ctx)
	if err != nil {
		log.WithError(err).Warn("Scheduled reconcile: failed to load cars")
		return
	}

	today := reconcile.Today()
	res := reconcile.Run(bs, ps, cs, today)
	if !res.Changed() {
		return
	}
	log.WithFields(log.Fields{
		"booking_changes": len(res.BookingDeltas),
		"car_changes":     len(res.CarDeltas),
	}).Info("Scheduled reconciliation applied changes")
	reconcile.Apply(ctx, bookings, cars, res)

	if alerts := notify.Generate(res.Bookings, today); len(alerts) > 0 {
		log.WithField("count", len(alerts)).Info("Return-due alerts pending")
	}
}
