// Package test_helpers provides an httptest-backed Graph API server for tests.
package test_helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// MockServer provides a configurable mock Graph API server for testing
type MockServer struct {
	server *httptest.Server

	mutex       sync.RWMutex
	responses   map[string]*MockResponse
	defaultResp *MockResponse
	delay       time.Duration

	logMutex   sync.Mutex
	requestLog []RequestEntry
	callCount  map[string]int
}

// RequestEntry logs incoming requests for assertions
type RequestEntry struct {
	Method       string
	Path         string
	Query        url.Values
	Form         url.Values
	Headers      http.Header
	Body         string
	Timestamp    time.Time
	ResponseCode int
}

// MockResponse defines a mock API response
type MockResponse struct {
	Status   int
	Body     string
	Headers  map[string]string
	Delay    time.Duration
	MaxCalls int // 0 = unlimited
}

// NewMockServer creates a new mock server instance. Paths without a
// configured response get a Graph "unknown path" error.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]*MockResponse),
		callCount: make(map[string]int),
		defaultResp: &MockResponse{
			Status: http.StatusBadRequest,
			Body:   GraphErrorBody(2500, 0, "OAuthException", "Unknown path components", "mock-trace"),
		},
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.serveHTTP))
	return ms
}

// URL returns the base URL of the mock server
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Client returns an HTTP client that talks to the server.
func (ms *MockServer) Client() *http.Client {
	return ms.server.Client()
}

// Close shuts down the mock server
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse configures a response for a specific path, e.g. "/v2.9/me".
func (ms *MockServer) SetResponse(path string, response *MockResponse) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.responses[path] = response
}

// SetDefaultResponse configures the response for unconfigured paths
func (ms *MockServer) SetDefaultResponse(response *MockResponse) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.defaultResp = response
}

// SetDelay adds delay to all responses
func (ms *MockServer) SetDelay(delay time.Duration) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.delay = delay
}

// SetJSON answers path with 200 and body.
func (ms *MockServer) SetJSON(path, body string) {
	ms.SetResponse(path, &MockResponse{
		Status:  http.StatusOK,
		Body:    body,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// SetGraphError answers path with status and a Graph error envelope.
func (ms *MockServer) SetGraphError(path string, status, code int, message string) {
	ms.SetResponse(path, &MockResponse{
		Status:  status,
		Body:    GraphErrorBody(code, 0, "OAuthException", message, "mock-trace"),
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// SetToken answers path with a token endpoint response.
func (ms *MockServer) SetToken(path, token string, expiresIn int64) {
	body := map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	}
	if expiresIn > 0 {
		body["expires_in"] = expiresIn
	}
	ms.SetJSON(path, mustJSON(body))
}

// GraphErrorBody renders a Graph error envelope.
func GraphErrorBody(code, subcode int, typ, message, traceID string) string {
	inner := map[string]any{
		"message":    message,
		"type":       typ,
		"code":       code,
		"fbtrace_id": traceID,
	}
	if subcode != 0 {
		inner["error_subcode"] = subcode
	}
	return mustJSON(map[string]any{"error": inner})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// GetRequestLog returns the request log
func (ms *MockServer) GetRequestLog() []RequestEntry {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	return append([]RequestEntry{}, ms.requestLog...)
}

// GetLastRequest returns the most recent request, or nil.
func (ms *MockServer) GetLastRequest() *RequestEntry {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	if len(ms.requestLog) == 0 {
		return nil
	}
	entry := ms.requestLog[len(ms.requestLog)-1]
	return &entry
}

// GetCallCount returns the call count for a path
func (ms *MockServer) GetCallCount(path string) int {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	return ms.callCount[path]
}

// ClearLog clears the request log and call counts
func (ms *MockServer) ClearLog() {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	ms.requestLog = ms.requestLog[:0]
	ms.callCount = make(map[string]int)
}

// WaitForRequests waits until at least n requests were logged or timeout passes.
func (ms *MockServer) WaitForRequests(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(ms.GetRequestLog()) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return len(ms.GetRequestLog()) >= n
}

func (ms *MockServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	entry := RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Headers:   r.Header.Clone(),
		Timestamp: time.Now(),
	}
	if r.Body != nil {
		body, _ := io.ReadAll(r.Body)
		entry.Body = string(body)
		entry.Form, _ = url.ParseQuery(entry.Body)
	}

	ms.logMutex.Lock()
	ms.callCount[r.URL.Path]++
	calls := ms.callCount[r.URL.Path]
	ms.logMutex.Unlock()

	ms.mutex.RLock()
	response, exists := ms.responses[r.URL.Path]
	if !exists {
		response = ms.defaultResp
	}
	delay := ms.delay + response.Delay
	ms.mutex.RUnlock()

	status := response.Status
	body := response.Body
	if response.MaxCalls > 0 && calls > response.MaxCalls {
		status = http.StatusNotFound
		body = GraphErrorBody(803, 0, "OAuthException", "call limit reached", "mock-trace")
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))

	entry.ResponseCode = status
	ms.logMutex.Lock()
	ms.requestLog = append(ms.requestLog, entry)
	ms.logMutex.Unlock()
}
