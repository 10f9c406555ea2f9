package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/logger"
	"go.uber.org/fx"
)

type Service struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// Module provides fx options for Sentry
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewSentryService),
		fx.Invoke(RegisterHooks),
	)
}

// RegisterHooks registers lifecycle hooks for Sentry
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !svc.cfg.Sentry.Enabled {
				svc.logger.Info("Sentry is disabled")
				return nil
			}

			err := sentry.Init(sentry.ClientOptions{
				Dsn:              svc.cfg.Sentry.DSN,
				Environment:      svc.cfg.Sentry.Environment,
				EnableTracing:    true,
				TracesSampleRate: svc.cfg.Sentry.SampleRate,
				TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
					if ctx.Span.Name == "GET /health" {
						return 0.0
					}
					return svc.cfg.Sentry.SampleRate
				}),
			})
			if err != nil {
				svc.logger.Errorw("Failed to initialize Sentry", "error", err)
				return err
			}
			svc.logger.Infow("Sentry initialized",
				"environment", svc.cfg.Sentry.Environment,
				"sample_rate", svc.cfg.Sentry.SampleRate,
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if svc.cfg.Sentry.Enabled {
				svc.logger.Info("Flushing Sentry events before shutdown")
				sentry.Flush(2 * time.Second)
			}
			return nil
		},
	})
}

// NewSentryService creates a new Sentry service
func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Service) enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Sentry.Enabled
}

// CaptureException captures an error in Sentry
func (s *Service) CaptureException(err error) {
	if !s.enabled() {
		return
	}
	sentry.CaptureException(err)
}

// AddBreadcrumb adds a breadcrumb to the current scope
func (s *Service) AddBreadcrumb(category, message string, data map[string]interface{}) {
	if !s.enabled() {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
		Data:     data,
	})
}

// StartHTTPClientSpan starts a span for a call to the remote invoice API
func (s *Service) StartHTTPClientSpan(ctx context.Context, method, url string) (*sentry.Span, context.Context) {
	if !s.enabled() {
		return nil, ctx
	}

	span := sentry.StartSpan(ctx, "http.client")
	if span != nil {
		span.Description = method + " " + url
		span.SetData("http.method", method)
		span.SetData("http.url", url)
	}

	return span, span.Context()
}

// FinishSpan finishes a span started by this service. A nil span is ignored.
func (s *Service) FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}
