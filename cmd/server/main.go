package main

import (
	"github.com/joho/godotenv"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/auth"
	bookinghandler "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/handler"
	bookingrepo "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/repository"
	bookingservice "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/service"
	bookingvalidator "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/validator"
	resourcehandler "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/resources/handler"
	resourcerepo "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/resources/repository"
	resourceservice "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/resources/service"
	userhandler "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/handler"
	userrepo "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/repository"
	userservice "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/service"
	uservalidator "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/validator"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/app"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/config"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/contracts"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/events"
)

const ServiceName = "booking-reservation"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting booking reservation service")

	publisher := initPublisher(cfg)
	if producer, ok := publisher.(*events.Producer); ok {
		defer producer.Close()
	}

	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("Kafka brokers not configured, domain events disabled")
		return nil
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaEventsTopic)
	return producer
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	sessions := auth.NewRedisSessionStore(cfg.Client.Redis, cfg.SessionTTL)

	users := userservice.NewUserService(
		userrepo.NewMongoUserRepository(cfg),
		sessions,
		uservalidator.NewUserValidator(cfg.Log),
		publisher,
		cfg,
	)
	guard := auth.NewMiddleware(users, cfg.Log)

	bookings := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		bookingrepo.NewBookingLockRepository(cfg),
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	resources := resourceservice.NewResourceService(
		resourcerepo.NewMongoResourceRepository(cfg),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		userhandler.NewUserHandler(users, cfg.Log),
		bookinghandler.NewBookingHandler(bookings, guard, cfg.Log),
		resourcehandler.NewResourceHandler(resources, guard, cfg.Log),
	}
}
