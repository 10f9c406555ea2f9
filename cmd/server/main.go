package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/api"
	v1 "github.com/phenixmation/payables/internal/api/v1"
	"github.com/phenixmation/payables/internal/cache"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/httpclient"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/pdf"
	"github.com/phenixmation/payables/internal/repository"
	restRepo "github.com/phenixmation/payables/internal/repository/rest"
	"github.com/phenixmation/payables/internal/sentry"
	"github.com/phenixmation/payables/internal/service"
	"github.com/phenixmation/payables/internal/session"
	"github.com/phenixmation/payables/internal/validator"
	"go.uber.org/fx"
)

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,
			cache.NewDraftStore,

			// HTTP Client
			httpclient.NewDefaultClient,
			provideRESTClient,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewUserRepository,
			repository.NewAuthRepository,

			// PDF
			pdf.NewGenerator,
		),
	)

	// Monitoring
	opts = append(opts, sentry.Module())

	// Session (loaded on start)
	opts = append(opts, session.Module())

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewUserService,
			service.NewInvoiceService,
			service.NewDraftService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			initValidator,
			startAPIServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func initValidator() {
	validator.NewValidator()
}

// provideRESTClient hands the session to the REST repositories as their token source
func provideRESTClient(
	cfg *config.Configuration,
	httpClient httpclient.Client,
	s *session.Session,
	logger *logger.Logger,
) *restRepo.Client {
	return restRepo.NewClient(cfg, httpClient, s, logger)
}

func provideHandlers(
	logger *logger.Logger,
	s *session.Session,
	authService service.AuthService,
	userService service.UserService,
	invoiceService service.InvoiceService,
	draftService service.DraftService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(s, logger),
		Auth:    v1.NewAuthHandler(authService, logger),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
		Draft:   v1.NewDraftHandler(draftService, logger),
		User:    v1.NewUserHandler(userService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentrySvc *sentry.Service,
	s *session.Session,
) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, sentrySvc, s)
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
