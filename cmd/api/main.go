// @title        Hotel Management API
// @version      1.0
// @description  Guests, staff, rooms, laundry, halls, dishes, inventory, service requests and payments.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/handler"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/service"
	mongodb "github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/db/mongo"
	redisdb "github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/db/redis"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/images"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/mailer"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/messaging"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/payments"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/queue"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/refs"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/pkg/config"
	"github.com/classicrowndev/cc-hotel-backend-sub000/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Env: cfg.Env})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{URL: cfg.Redis.URL, Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Adapters ---
	var mail ports.Mailer
	if cfg.Mail.Host != "" {
		m, err := mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			FromName: cfg.Mail.FromName,
		}, logger.Component("mailer"))
		if err != nil {
			return err
		}
		mail = m
	} else {
		log.Warn().Msg("SMTP_HOST not set, email delivery disabled")
	}

	var publisher ports.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		p, err := messaging.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger.Component("messaging"))
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
	}

	var imageStore ports.ImageStore
	if cfg.Cloudinary.URL != "" {
		s, err := images.New(cfg.Cloudinary.URL, cfg.Cloudinary.Folder, logger.Component("images"))
		if err != nil {
			return err
		}
		imageStore = s
	} else {
		log.Warn().Msg("CLOUDINARY_URL not set, image uploads disabled")
	}

	gateway := payments.NewPaystack(payments.Config{
		SecretKey:   cfg.Paystack.SecretKey,
		BaseURL:     cfg.Paystack.BaseURL,
		CallbackURL: cfg.Paystack.CallbackURL,
		Timeout:     cfg.Paystack.Timeout,
	}, logger.Component("paystack"))

	references, err := refs.NewGenerator(cfg.Refs.Salt)
	if err != nil {
		return err
	}

	// --- Notifications ---
	dispatcher := queue.NewDispatcher(queue.Config{
		Workers:         cfg.Notify.Workers,
		Buffer:          cfg.Notify.Buffer,
		DeliveryTimeout: cfg.Notify.Timeout,
	}, service.NewNotificationService(mail, publisher, cfg.Notify.Timeout, logger.Component("notifications")), logger.Component("dispatcher"))

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Repositories ---
	tx := mongodb.NewTxRunner(mongoClient)
	guestRepo := mongodb.NewGuestRepository(db)
	staffRepo := mongodb.NewStaffRepository(db)
	roomRepo := mongodb.NewRoomRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	laundryItemRepo := mongodb.NewLaundryItemRepository(db)
	laundryOrderRepo := mongodb.NewLaundryOrderRepository(db)
	hallRepo := mongodb.NewHallRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	dishRepo := mongodb.NewDishRepository(db)
	dishOrderRepo := mongodb.NewDishOrderRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)

	payables := service.Payables{
		domain.PurposeRoomBooking:     bookingRepo,
		domain.PurposeHallReservation: reservationRepo,
		domain.PurposeLaundryOrder:    laundryOrderRepo,
		domain.PurposeDishOrder:       dishOrderRepo,
	}

	// --- Services ---
	identity := service.NewIdentityResolver(service.IdentityConfig{
		Secret:    cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		AccessTTL: cfg.Auth.AccessTTL,
		ResetTTL:  cfg.Auth.ResetTTL,
	}, guestRepo, staffRepo)

	paymentEvents := service.NewPaymentEventService(
		tx, paymentRepo, payables, redisdb.NewDedupChecker(rdb, cfg.Redis.DedupTTL), dispatcher, logger.Component("payments"),
	)

	router := api.NewRouter(api.Services{
		Identity:        identity,
		Auth:            service.NewAuthService(guestRepo, staffRepo, identity, dispatcher, cfg.Mail.FrontendURL, logger.Component("auth")),
		Staff:           service.NewStaffService(staffRepo, dispatcher, logger.Component("staff")),
		Guests:          service.NewGuestService(guestRepo, logger.Component("guests")),
		Rooms:           service.NewRoomService(roomRepo, imageStore, logger.Component("rooms")),
		Bookings:        service.NewBookingService(tx, roomRepo, bookingRepo, references, dispatcher, logger.Component("bookings")),
		Laundry:         service.NewLaundryService(laundryItemRepo, laundryOrderRepo, references, dispatcher, service.LaundryConfig{RejectUnknownItems: cfg.Laundry.RejectUnknownItems}, logger.Component("laundry")),
		Halls:           service.NewHallService(hallRepo, reservationRepo, imageStore, references, dispatcher, logger.Component("halls")),
		Dishes:          service.NewDishService(tx, dishRepo, dishOrderRepo, imageStore, references, dispatcher, logger.Component("dishes")),
		Inventory:       service.NewInventoryService(mongodb.NewSupplierRepository(db), mongodb.NewInventoryRepository(db), dispatcher, logger.Component("inventory")),
		ServiceRequests: service.NewServiceRequestService(mongodb.NewServiceRequestRepository(db), dispatcher, logger.Component("service_requests")),
		Payments:        service.NewPaymentService(paymentRepo, payables, gateway, paymentEvents, cfg.Paystack.Currency, logger.Component("payments")),
		Dashboard:       service.NewDashboardService(mongodb.NewDashboardRepository(db)),
	}, api.Options{
		AllowOrigins: cfg.AllowOrigins,
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}, log)

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}
