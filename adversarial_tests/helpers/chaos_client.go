package helpers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// ChaosMode defines the type of chaos to inject
type ChaosMode int

const (
	// ChaosNone returns Body with status 200
	ChaosNone ChaosMode = iota

	// ChaosConnectionReset fails the round trip
	ChaosConnectionReset

	// ChaosPartialRead fails while the body is being read
	ChaosPartialRead

	// ChaosEmptyBody returns 200 with no body
	ChaosEmptyBody

	// ChaosInvalidJSON returns 200 with a truncated JSON body
	ChaosInvalidJSON

	// ChaosHTMLError returns a proxy error page instead of JSON
	ChaosHTMLError

	// ChaosThrottled returns a Graph throttling error with Retry-After
	ChaosThrottled
)

// ErrConnectionReset is returned by ChaosConnectionReset.
var ErrConnectionReset = errors.New("connection reset by peer")

// ChaosTransport is an http.RoundTripper that injects failures without a network.
type ChaosTransport struct {
	Mode ChaosMode
	// Body is returned by ChaosNone.
	Body string
	// PartialReadBytes is how much of Body ChaosPartialRead delivers before failing.
	PartialReadBytes int

	requests atomic.Int64
	lastURL  atomic.Value
}

// Requests returns how many round trips were attempted.
func (c *ChaosTransport) Requests() int64 {
	return c.requests.Load()
}

// LastURL returns the full URL of the most recent request, credentials included.
func (c *ChaosTransport) LastURL() string {
	s, _ := c.lastURL.Load().(string)
	return s
}

// RoundTrip implements http.RoundTripper.
func (c *ChaosTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.requests.Add(1)
	c.lastURL.Store(req.URL.String())

	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	switch c.Mode {
	case ChaosConnectionReset:
		return nil, ErrConnectionReset
	case ChaosPartialRead:
		return respond(req, http.StatusOK, nil, &partialReadCloser{data: []byte(c.Body), limit: c.PartialReadBytes}), nil
	case ChaosEmptyBody:
		return respond(req, http.StatusOK, nil, io.NopCloser(strings.NewReader(""))), nil
	case ChaosInvalidJSON:
		return respond(req, http.StatusOK, nil, io.NopCloser(strings.NewReader(`{"id": "1", "message": `))), nil
	case ChaosHTMLError:
		return respond(req, http.StatusBadGateway, nil, io.NopCloser(strings.NewReader("<html><body>502 Bad Gateway</body></html>"))), nil
	case ChaosThrottled:
		header := http.Header{"Retry-After": {"1"}}
		body := `{"error":{"message":"Application request limit reached","type":"OAuthException","code":4}}`
		return respond(req, http.StatusForbidden, header, io.NopCloser(strings.NewReader(body))), nil
	default:
		return respond(req, http.StatusOK, nil, io.NopCloser(strings.NewReader(c.Body))), nil
	}
}

func respond(req *http.Request, status int, header http.Header, body io.ReadCloser) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       body,
		Request:    req,
	}
}

// partialReadCloser returns limit bytes of data and then fails.
type partialReadCloser struct {
	data  []byte
	limit int
	read  int
}

func (p *partialReadCloser) Read(buf []byte) (int, error) {
	if p.read >= p.limit || p.read >= len(p.data) {
		return 0, io.ErrUnexpectedEOF
	}
	end := min(p.limit, len(p.data))
	n := copy(buf, p.data[p.read:end])
	p.read += n
	return n, nil
}

func (p *partialReadCloser) Close() error {
	return nil
}

// NewChaosClient returns an http.Client using transport.
func NewChaosClient(transport *ChaosTransport) *http.Client {
	return &http.Client{Transport: transport}
}

