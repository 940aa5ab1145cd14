package cmd

import (
	"context"
	"fmt"

	"medibook/config"
	"medibook/database"
	"medibook/database/repository"
	"medibook/services/admin"
	"medibook/services/appointment"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/services/notification"
	"medibook/services/payment"
	"medibook/services/storage"
	"medibook/services/tasks"
	"medibook/services/user"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// application holds the wired backends and services shared by the commands.
type application struct {
	mongo *mongo.Client
	redis *redis.Client
	queue *asynq.RedisClientOpt

	repos      repository.Repositories
	cache      doctor.DirectoryCache
	dispatcher tasks.Dispatcher
	mailer     notification.Mailer

	users        *user.DefaultUserService
	doctors      *doctor.DefaultDoctorService
	appointments *appointment.DefaultAppointmentService
	payments     *payment.DefaultPaymentService
	admin        *admin.DefaultAdminService
	dashboard    *dashboard.DefaultDashboardService

	closers []func()
}

// newApplication connects the configured store and optional backends.
// Redis, Cloudinary and SMTP degrade to local fallbacks when unavailable.
func newApplication(ctx context.Context) (*application, error) {
	logger := utils.GetLogger()
	cfg := config.AppConfig
	app := &application{}

	switch cfg.Store {
	case "mongo":
		client, err := database.InitDB(ctx)
		if err != nil {
			return nil, err
		}
		app.mongo = client
		app.closers = append(app.closers, func() { _ = client.Disconnect(context.Background()) })
		db := database.Database(client)
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		app.repos = repository.NewMongoRepositories(db)
	default:
		logger.Warn("Using in-memory store; data is lost on restart")
		app.repos = repository.NewMemoryRepositories()
	}

	app.cache = doctor.NoopDirectoryCache{}
	app.dispatcher = tasks.LogDispatcher{}
	if client, err := utils.InitCache(ctx); err != nil {
		logger.Warn("Redis unavailable; directory cache and task queue disabled", zap.Error(err))
	} else {
		app.redis = client
		app.closers = append(app.closers, func() { _ = client.Close() })
		app.cache = doctor.NewRedisDirectoryCache(client, cfg.DirectoryCacheTTL)

		addr, password, db := utils.QueueRedisOpt()
		opt := asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
		app.queue = &opt
		dispatcher := tasks.NewAsynqDispatcher(opt)
		app.closers = append(app.closers, func() { _ = dispatcher.Close() })
		app.dispatcher = dispatcher
	}

	var images storage.ImageStore = storage.DisabledStore{}
	if store, err := storage.NewCloudinaryStore(cfg); err != nil {
		logger.Warn("Image uploads disabled", zap.Error(err))
	} else {
		images = store
	}

	app.mailer = notification.NoopMailer{}
	if cfg.SMTPEnabled() {
		app.mailer = notification.NewSMTPMailer(cfg)
	}

	gateway, err := newGateway(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.users = &user.DefaultUserService{
		Repo:     app.repos.Patients,
		Images:   images,
		TokenTTL: cfg.TokenTTL,
	}
	app.doctors = &doctor.DefaultDoctorService{
		Repo:     app.repos.Doctors,
		Cache:    app.cache,
		Images:   images,
		TokenTTL: cfg.TokenTTL,
	}
	app.appointments = &appointment.DefaultAppointmentService{
		Doctors:      app.repos.Doctors,
		Patients:     app.repos.Patients,
		Appointments: app.repos.Appointments,
		Cache:        app.cache,
		Tasks:        app.dispatcher,
	}
	app.payments = &payment.DefaultPaymentService{
		Appointments: app.repos.Appointments,
		Gateway:      gateway,
		Currency:     cfg.PaymentCurrency,
	}
	app.admin = &admin.DefaultAdminService{
		Credentials: admin.AdminCredentials{
			Email:        cfg.AdminEmail,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
		},
		TokenTTL: cfg.TokenTTL,
	}
	app.dashboard = &dashboard.DefaultDashboardService{
		Doctors:      app.repos.Doctors,
		Patients:     app.repos.Patients,
		Appointments: app.repos.Appointments,
	}
	return app, nil
}

func newGateway(cfg config.Config) (payment.Gateway, error) {
	switch cfg.PaymentGateway {
	case "stripe":
		if cfg.StripeKey == "" {
			return nil, fmt.Errorf("STRIPE_KEY is required for the stripe gateway")
		}
		return payment.NewStripeGateway(cfg.StripeKey), nil
	default:
		if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
			utils.GetLogger().Warn("Razorpay keys not set; payment orders will fail")
		}
		return payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret), nil
	}
}

func (a *application) slotReconciler() *appointment.SlotReconciler {
	return appointment.NewSlotReconciler(a.repos.Doctors, a.repos.Appointments, a.cache)
}

// Close releases connections in reverse order of creation.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
