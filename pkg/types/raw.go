package types

import "net/http"

// RawResponse is an undecoded transport response.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *RawResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}
