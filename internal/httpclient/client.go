package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/phenixmation/payables/internal/config"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/sentry"
	"golang.org/x/time/rate"
)

// Request represents an HTTP request
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client interface for making HTTP requests
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout   time.Duration
	RetryMax  int
	RateLimit float64
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	// Zero keeps the go-retryablehttp defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultClient implements the Client interface on top of go-retryablehttp
type DefaultClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logger.Logger
	sentry  *sentry.Service
}

// NewDefaultClient creates a new DefaultClient configured from the api section
func NewDefaultClient(cfg *config.Configuration, log *logger.Logger, sentrySvc *sentry.Service) Client {
	return NewClient(ClientConfig{
		Timeout:   cfg.API.Timeout,
		RetryMax:  cfg.API.RetryMax,
		RateLimit: cfg.API.RateLimit,
	}, log, sentrySvc)
}

// NewClient creates a DefaultClient from an explicit configuration
func NewClient(cfg ClientConfig, log *logger.Logger, sentrySvc *sentry.Service) *DefaultClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = cfg.Timeout
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	rc.Logger = &leveledLogger{log: log}
	// Non-2xx responses are turned into *Error by Send, so the last response
	// is passed through instead of being replaced by a "giving up" error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &DefaultClient{
		client: rc,
		logger: log,
		sentry: sentrySvc,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// Send makes an HTTP request and returns the response
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ierr.WithError(err).
				WithHint("The request was cancelled before it could be sent").
				Mark(ierr.ErrHTTPClient)
		}
	}

	span, ctx := c.sentry.StartHTTPClientSpan(ctx, req.Method, req.URL)
	defer c.sentry.FinishSpan(span)

	var body any
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrHTTPClient)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warnw("remote API call failed",
			"method", req.Method,
			"url", req.URL,
			"error", err,
		)
		return nil, ierr.WithError(err).
			WithHint("The invoice service could not be reached").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The invoice service sent an unreadable response").
			Mark(ierr.ErrHTTPClient)
	}

	c.logger.Debugw("remote API call",
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	headers := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.sentry.AddBreadcrumb("http", "remote API error", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"status": resp.StatusCode,
		})
		return nil, NewError(resp.StatusCode, respBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    headers,
	}, nil
}

// leveledLogger adapts the zap logger to retryablehttp.LeveledLogger
type leveledLogger struct {
	log *logger.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnw(msg, keysAndValues...)
}
