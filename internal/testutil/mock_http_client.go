package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/phenixmation/payables/internal/httpclient"
)

var _ httpclient.Client = (*MockHTTPClient)(nil)

// MockHTTPClient implements a mock HTTP client for testing. It answers like
// the real client: statuses of 400 or more come back as *httpclient.Error.
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for a method and a URL suffix
func (m *MockHTTPClient) RegisterResponse(method, url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[method+" "+url] = resp
}

// RegisterJSONResponse is a helper to register a JSON body
func (m *MockHTTPClient) RegisterJSONResponse(method, url string, status int, body string) {
	m.RegisterResponse(method, url, MockResponse{
		StatusCode: status,
		Body:       []byte(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	// Find the matching route
	var matchedResponse MockResponse
	var found bool
	for route, resp := range m.routes {
		method, suffix, _ := strings.Cut(route, " ")
		if method == req.Method && strings.HasSuffix(req.URL, suffix) {
			matchedResponse = resp
			found = true
			break
		}
	}

	if !found {
		return nil, httpclient.NewError(http.StatusNotFound, []byte("Not Found"))
	}
	if matchedResponse.StatusCode >= http.StatusBadRequest {
		return nil, httpclient.NewError(matchedResponse.StatusCode, matchedResponse.Body)
	}

	return &httpclient.Response{
		StatusCode: matchedResponse.StatusCode,
		Body:       matchedResponse.Body,
		Headers:    matchedResponse.Headers,
	}, nil
}

// Requests returns the requests sent so far
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*httpclient.Request(nil), m.requests...)
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
}
