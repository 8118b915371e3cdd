package main

import (
	"context"
	"net/http"
	"nutriplan-service/internal/app/config"
	"nutriplan-service/internal/app/delivery/http/controllers"
	"nutriplan-service/internal/app/delivery/http/middlewares"
	"nutriplan-service/internal/app/delivery/http/routers"
	"nutriplan-service/internal/app/drivers/database"
	"nutriplan-service/internal/app/drivers/logger"
	"nutriplan-service/internal/app/drivers/messaging"
	"nutriplan-service/internal/app/services/core/appointments"
	"nutriplan-service/internal/app/services/core/availability"
	"nutriplan-service/internal/app/services/core/session"
	"nutriplan-service/internal/app/services/core/users"
	"nutriplan-service/internal/app/services/shared/notifqueue"
	"nutriplan-service/internal/app/services/shared/redis"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	dispatcher := bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		ZapLogger:      zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	if err := dispatcher.Start(dispatcherCtx); err != nil {
		log.Warnf("Notification dispatcher failed to start: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that were already received by the server to be processed..")

	dispatcher.Stop()
	stopDispatcher()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := rabbitMQ.Close(); err != nil {
		log.Warnf("Error closing RabbitMQ connection: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Warnf("Error closing Redis client: %v", err)
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Warnf("Error disconnecting MongoDB client: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) *notifqueue.Dispatcher {
	clock := time.Now

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Session
	sessionTTL := time.Duration(bootstrap.InternalConfig.App.SessionTTLInHour) * time.Hour
	sessionService := session.NewSessionService(redisRepository, sessionTTL)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.ZapLogger, sessionService, bootstrap.InternalConfig)

	// Notification queue
	notificationQueue, err := notifqueue.NewNotificationQueueService(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.App.NotificationQueue,
		bootstrap.ZapLogger,
	)
	if err != nil {
		bootstrap.Logger.Fatalf("Failed to initialize notification queue: %v", err)
	}

	// User
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	userUsecase := users.NewUserUsecase(userMongoRepository, redisRepository, bootstrap.ZapLogger)

	// Appointment
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, clock, bootstrap.ZapLogger)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentMongoRepository, notificationQueue, clock, bootstrap.ZapLogger)
	transitionUsecase := appointments.NewTransitionUsecase(appointmentMongoRepository, notificationQueue, bootstrap.ZapLogger)
	conflictUsecase := appointments.NewConflictUsecase(appointmentMongoRepository, notificationQueue, bootstrap.ZapLogger)

	// Availability
	availabilityUsecase := availability.NewAvailabilityUsecase(appointmentMongoRepository, clock, bootstrap.ZapLogger)

	// Controllers
	authController := controllers.NewAuthController(bootstrap.ZapLogger, sessionService, userUsecase, bootstrap.InternalConfig)
	availabilityController := controllers.NewAvailabilityController(bootstrap.ZapLogger, availabilityUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.ZapLogger, appointmentUsecase, transitionUsecase, userUsecase, appointmentMongoRepository)
	conflictController := controllers.NewConflictController(bootstrap.ZapLogger, conflictUsecase, userUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		availabilityController,
		appointmentController,
		conflictController,
	)

	limiter := rate.NewLimiter(
		rate.Limit(bootstrap.InternalConfig.App.NotificationRatePerSecond),
		bootstrap.InternalConfig.App.NotificationBurst,
	)
	return notifqueue.NewDispatcher(
		appointmentMongoRepository,
		userUsecase,
		notificationQueue,
		limiter,
		bootstrap.ZapLogger,
	)
}
