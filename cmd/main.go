package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/lakshya2505/LogiCore/internal/auth"
	"github.com/lakshya2505/LogiCore/internal/db"
	"github.com/lakshya2505/LogiCore/internal/events"
	"github.com/lakshya2505/LogiCore/internal/handlers"
	"github.com/lakshya2505/LogiCore/internal/middleware"
	"github.com/lakshya2505/LogiCore/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded configuration from .env")
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	log.Info("connected to MongoDB")

	colls := db.NewCollections(client, db.DatabaseName())

	snap, err := colls.LoadSnapshot(context.Background())
	if err != nil {
		log.WithError(err).Fatal("failed to load fleet snapshot")
	}
	log.WithFields(log.Fields{
		"vehicles": len(snap.Vehicles),
		"drivers":  len(snap.Drivers),
		"trips":    len(snap.Trips),
	}).Info("fleet snapshot loaded")

	fleetStore := store.New(snap, db.NewMongoWriter(client, colls))

	// Change feed: optional MQTT fan-out of every committed change.
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		publisher, err := events.NewPublisher(broker, "logicore-server", os.Getenv("MQTT_TOPIC_PREFIX"))
		if err != nil {
			log.WithError(err).Fatal("failed to connect to MQTT broker")
		}
		defer publisher.Close()
		fleetStore.AddListener(publisher.Publish)
		log.WithField("broker", broker).Info("publishing fleet changes over MQTT")
	}

	startWatchers(context.Background(), colls, fleetStore)

	authService := auth.NewServiceFromEnv()
	authMW := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()
	userColl := &db.MongoUserCollection{Collection: colls.Users}

	router := &handlers.Router{
		Auth:        handlers.NewAuthHandler(authService, userColl),
		Vehicles:    handlers.NewVehicleHandler(fleetStore),
		Drivers:     handlers.NewDriverHandler(fleetStore),
		Trips:       handlers.NewTripHandler(fleetStore),
		Maintenance: handlers.NewMaintenanceHandler(fleetStore),
		Expenses:    handlers.NewExpenseHandler(fleetStore),
		Dashboard:   handlers.NewDashboardHandler(fleetStore),
		AuthMW:      authMW,
	}

	handler := authMW.Authenticate(rateLimiter.RateLimit(300, 60)(router.Mux()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.WithError(err).Fatal("HTTP server stopped")
	}
}

// startWatchers follows each collection's change stream and swaps the
// latest full collection into the store on every remote change. Without
// a replica set the streams are unavailable; the server then serves the
// snapshot it loaded at boot plus its own writes.
func startWatchers(ctx context.Context, colls *db.Collections, s *store.Store) {
	watch := func(name string, start func() error) {
		if err := start(); err != nil {
			log.WithError(err).WithField("collection", name).Warn("change stream unavailable, running without live updates")
		}
	}

	watch("vehicles", func() error {
		return db.Watch(ctx, colls.Vehicles, func() {
			if vehicles, err := colls.LoadVehicles(ctx); err == nil {
				s.ReplaceVehicles(vehicles)
			}
		})
	})
	watch("drivers", func() error {
		return db.Watch(ctx, colls.Drivers, func() {
			if drivers, err := colls.LoadDrivers(ctx); err == nil {
				s.ReplaceDrivers(drivers)
			}
		})
	})
	watch("trips", func() error {
		return db.Watch(ctx, colls.Trips, func() {
			if trips, err := colls.LoadTrips(ctx); err == nil {
				s.ReplaceTrips(trips)
			}
		})
	})
	watch("maintenance_logs", func() error {
		return db.Watch(ctx, colls.Maintenance, func() {
			if logs, err := colls.LoadMaintenanceLogs(ctx); err == nil {
				s.ReplaceMaintenanceLogs(logs)
			}
		})
	})
	watch("expenses", func() error {
		return db.Watch(ctx, colls.Expenses, func() {
			if expenses, err := colls.LoadExpenses(ctx); err == nil {
				s.ReplaceExpenses(expenses)
			}
		})
	})
}
