package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	medicron "medibook/cron"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, background worker and slot reconciler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	logger := utils.GetLogger()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	utils.StartHealthMonitor(ctx, app.redis, app.mongo)

	var worker *medicron.Worker
	if app.queue != nil {
		worker = medicron.NewWorker(*app.queue, app.appointments, app.repos.Appointments, app.mailer)
		worker.Start()
	}

	reconciler, err := medicron.NewReconciler(config.AppConfig.SlotReconcileSpec, app.slotReconciler())
	if err != nil {
		return err
	}
	reconciler.Start()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(handlers.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		User: &handlers.UserHandler{
			UserService:        app.users,
			AppointmentService: app.appointments,
			PaymentService:     app.payments,
		},
		Doctor: &handlers.DoctorHandler{
			DoctorService:      app.doctors,
			AppointmentService: app.appointments,
			DashboardService:   app.dashboard,
		},
		Admin: &handlers.AdminHandler{
			AdminService:       app.admin,
			DoctorService:      app.doctors,
			AppointmentService: app.appointments,
			DashboardService:   app.dashboard,
		},
	})

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("Server failed to start", zap.Error(err))
		return err
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	reconciler.Stop(shutdownCtx)
	if worker != nil {
		worker.Shutdown()
	}

	_ = logger.Sync()
	logger.Info("Server stopped gracefully")
	return nil
}
