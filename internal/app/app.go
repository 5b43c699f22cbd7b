// Package app builds the application context once at startup: storage,
// redis, external clients, services and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostel_booking/internal/admin"
	"hostel_booking/internal/api"
	"hostel_booking/internal/config"
	"hostel_booking/internal/db"
	"hostel_booking/internal/events"
	"hostel_booking/internal/mail"
	"hostel_booking/internal/middleware"
	"hostel_booking/internal/payment"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/service"
	"hostel_booking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	cacheTTL = 60 * time.Second
	lockTTL  = 10 * time.Second
)

// Clients are the external collaborators; nil fields fall back to no-ops.
type Clients struct {
	Gateway   payment.Gateway
	Mailer    mail.Sender
	Publisher events.Publisher
}

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Store     *repository.Store
	Publisher events.Publisher
	Router    *gin.Engine
}

// SetupLogger configures logrus the same way for every binary.
func SetupLogger(isProd bool) {
	if isProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Open connects to the database and redis named by cfg and builds the app
// with the real payment, mail and event clients.
func Open(cfg *config.Config) (*App, error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	clients := Clients{Gateway: newGateway(cfg.StripeSecretKey)}
	if cfg.MailEnabled() {
		clients.Mailer = mail.NewSMTPSender(mail.Config{
			Host:     cfg.MailServer,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			SSL:      cfg.MailUseSSL,
		})
	} else {
		logrus.Warn("MAIL_USERNAME not set, notifications are not emailed")
	}
	if len(cfg.KafkaBrokers) > 0 {
		clients.Publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	return New(cfg, gdb, rdb, clients), nil
}

// New wires services and routes over already opened connections.
func New(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, clients Clients) *App {
	if clients.Mailer == nil {
		clients.Mailer = mail.Discard{}
	}
	if clients.Publisher == nil {
		clients.Publisher = events.Nop{}
	}
	if clients.Gateway == nil {
		clients.Gateway = unconfiguredGateway{}
	}

	store := repository.NewStore(gdb)
	cache := utils.NewCache(rdb, cacheTTL)
	notifier := service.NewNotifier(clients.Mailer, clients.Publisher, cfg.MailSender)

	deps := api.Deps{
		Auth:         service.NewAuthService(store.Users, utils.NewSessionStore(rdb), cfg.JWTSecret, cfg.JWTTTL),
		Availability: service.NewAvailabilityService(store.RoomTypes),
		Bookings:     service.NewBookingService(store.Bookings, store.RoomTypes, utils.NewLocker(rdb, lockTTL), cache, notifier),
		Payments:     service.NewPaymentService(clients.Gateway, store.Bookings, store.Payments, cfg.ChargeAmount, cfg.ChargeCurrency, notifier),
		Reviews:      service.NewReviewService(store.Reviews),
		Gallery:      service.NewGalleryService(store.Photos, cache),
		Admin:        admin.NewRegistry(gdb, cache),
		AuthLimiter:  middleware.NewRateLimiter(cfg.AuthRatePerMinute),
		Probes: map[string]api.Probe{
			"db": func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}

	return &App{
		Config:    cfg,
		DB:        gdb,
		Redis:     rdb,
		Store:     store,
		Publisher: clients.Publisher,
		Router:    api.NewRouter(deps),
	}
}

// Close releases every connection the app opened.
func (a *App) Close() error {
	var errs []error
	errs = append(errs, a.Publisher.Close(), a.Redis.Close())
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

// newGateway returns the Stripe gateway, or one that refuses every charge
// when no secret key is configured.
func newGateway(secretKey string) payment.Gateway {
	if secretKey == "" {
		logrus.Warn("STRIPE_SECRET_KEY not set, charges are refused")
		return unconfiguredGateway{}
	}
	return payment.NewStripe(secretKey)
}

// unconfiguredGateway refuses every charge.
type unconfiguredGateway struct{}

func (unconfiguredGateway) Charge(context.Context, payment.ChargeRequest) (*payment.Charge, error) {
	return nil, errors.New("payment gateway not configured")
}
