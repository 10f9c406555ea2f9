package rest

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	authToken "github.com/phenixmation/payables/internal/auth"
	"github.com/phenixmation/payables/internal/config"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/httpclient"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/types"
	"github.com/samber/lo"
)

// TokenProvider hands out the bearer token of the current session.
// An empty token means nobody is logged in.
type TokenProvider interface {
	Token() string
}

// Client is the shared plumbing of the REST repositories: URL building,
// JSON encoding, the bearer header and status code mapping.
type Client struct {
	http    httpclient.Client
	baseURL string
	tokens  TokenProvider
	logger  *logger.Logger
}

// NewClient creates the REST plumbing for the configured invoice API
func NewClient(cfg *config.Configuration, httpClient httpclient.Client, tokens TokenProvider, logger *logger.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		tokens:  tokens,
		logger:  logger,
	}
}

type call struct {
	method string
	path   string
	body   any
	// authenticated calls carry the session bearer token
	authenticated bool
	// statuses answered with ErrNotFound instead of ErrHTTPClient
	notFound []int
}

// do sends the call and decodes a JSON answer into out when out is not nil
func (c *Client) do(ctx context.Context, req call, out any) error {
	httpReq := &httpclient.Request{
		Method:  req.method,
		URL:     c.baseURL + req.path,
		Headers: map[string]string{},
	}

	if id := types.GetRequestID(ctx); id != "" {
		httpReq.Headers[types.HeaderRequestID] = id
	}

	token := ""
	if req.authenticated {
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return ierr.NewError("no session token").
				WithHint("Please log in").
				Mark(ierr.ErrUnauthorized)
		}
		httpReq.Headers[types.HeaderAuthorization] = "Bearer " + token
	}

	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return ierr.WithError(err).
				WithHint("The request could not be encoded").
				Mark(ierr.ErrSystem)
		}
		httpReq.Body = payload
	}

	resp, err := c.http.Send(ctx, httpReq)
	if err != nil {
		mapped := c.mapError(err, req)
		if ierr.IsUnauthorized(mapped) {
			mapped = authToken.WithRejectedToken(mapped, token)
		}
		return mapped
	}

	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		c.logger.Warnw("unexpected response from invoice API",
			"method", req.method,
			"path", req.path,
			"error", err,
		)
		return ierr.WithError(err).
			WithHint("The invoice service sent an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// mapError turns a non-2xx answer into a domain error. The HTTP error is not
// kept in the chain so that each error carries exactly one sentinel.
func (c *Client) mapError(err error, req call) error {
	httpErr, ok := httpclient.IsHTTPError(err)
	if !ok {
		return err
	}

	status := httpErr.StatusCode
	details := map[string]any{
		"status": status,
		"path":   req.path,
	}

	switch {
	case httpclient.IsAuthError(httpErr):
		return ierr.WithError(errors.Newf("%s %s: remote API answered %d", req.method, req.path, status)).
			WithHint("Your session has expired, please log in again").
			WithReportableDetails(details).
			Mark(ierr.ErrUnauthorized)
	case lo.Contains(req.notFound, status):
		return ierr.WithError(errors.Newf("%s %s: remote API answered %d", req.method, req.path, status)).
			WithHint("The requested invoice was not found").
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	default:
		c.logger.Warnw("invoice API error",
			"method", req.method,
			"path", req.path,
			"status", status,
			"response", string(httpErr.Response),
		)
		return ierr.WithError(errors.Newf("%s %s: remote API answered %d", req.method, req.path, status)).
			WithHintf("The invoice service answered with status %d", status).
			WithReportableDetails(details).
			Mark(ierr.ErrHTTPClient)
	}
}
