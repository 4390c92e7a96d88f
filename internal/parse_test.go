package internal

import (
	"errors"
	"net/http"
	"testing"

	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name      string
		raw       *types.RawResponse
		wantAPI   *pkgerrs.APIError
		wantParse bool
		wantKey   string
	}{
		{
			name:    "success",
			raw:     &types.RawResponse{StatusCode: 200, Body: []byte(`{"id":"123"}`)},
			wantKey: "id",
		},
		{
			name: "error envelope on 400",
			raw: &types.RawResponse{StatusCode: 400, Body: []byte(`{"error":{"message":"Invalid token","type":"OAuthException",` +
				`"code":190,"error_subcode":463,"error_user_title":"Expired","error_user_msg":"Log in again","fbtrace_id":"AbC"}}`)},
			wantAPI: &pkgerrs.APIError{
				StatusCode:  400,
				Code:        190,
				SubCode:     463,
				Type:        "OAuthException",
				Message:     "Invalid token",
				UserTitle:   "Expired",
				UserMessage: "Log in again",
				FBTraceID:   "AbC",
			},
		},
		{
			name:    "error envelope on 200",
			raw:     &types.RawResponse{StatusCode: 200, Body: []byte(`{"error":{"code":190,"message":"Invalid token"}}`)},
			wantAPI: &pkgerrs.APIError{StatusCode: 200, Code: 190, Message: "Invalid token"},
		},
		{
			name:    "string error",
			raw:     &types.RawResponse{StatusCode: 400, Body: []byte(`{"error":"bad request"}`)},
			wantAPI: &pkgerrs.APIError{StatusCode: 400, Message: "bad request"},
		},
		{
			name: "non-2xx without envelope",
			raw: &types.RawResponse{
				StatusCode: 502,
				Header:     http.Header{"X-Fb-Trace-Id": {"trace"}},
				Body:       []byte(`<html>bad gateway</html>`),
			},
			wantAPI: &pkgerrs.APIError{StatusCode: 502, Message: "bad gateway", FBTraceID: "trace"},
		},
		{
			name:      "malformed success body",
			raw:       &types.RawResponse{StatusCode: 200, Body: []byte(`{"id":`)},
			wantParse: true,
		},
		{
			name:      "empty success body",
			raw:       &types.RawResponse{StatusCode: 200},
			wantParse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := DecodeResponse("Test", tt.raw)

			switch {
			case tt.wantAPI != nil:
				var apiErr *pkgerrs.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %T (%v)", err, err)
				}
				if *apiErr != *tt.wantAPI {
					t.Errorf("APIError = %+v, want %+v", *apiErr, *tt.wantAPI)
				}
				if body != nil {
					t.Errorf("expected no body alongside an API error")
				}
			case tt.wantParse:
				var parseErr *pkgerrs.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("expected ParseError, got %T (%v)", err, err)
				}
				if parseErr.Operation != "Test" {
					t.Errorf("Operation = %q, want Test", parseErr.Operation)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !body.Has(tt.wantKey) {
					t.Errorf("expected body to contain %q", tt.wantKey)
				}
			}
		})
	}
}

func TestParseErrorEnvelope_NoError(t *testing.T) {
	raw := &types.RawResponse{StatusCode: 200, Body: []byte(`{"id":"1"}`)}
	body, err := DecodeResponse("Test", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apiErr := ParseErrorEnvelope(raw, body); apiErr != nil {
		t.Fatalf("expected nil, got %v", apiErr)
	}
}

func TestParseErrorEnvelope_IgnoresNonEnvelopeValues(t *testing.T) {
	for _, body := range []string{
		`{"id":"1","error":null}`,
		`{"id":"1","error":[]}`,
		`{"id":"1","error":false}`,
		`{"id":"1","error":0}`,
	} {
		raw := &types.RawResponse{StatusCode: 200, Body: []byte(body)}
		obj, err := DecodeResponse("Test", raw)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", body, err)
			continue
		}
		if obj.String("id") != "1" {
			t.Errorf("%s: body not returned", body)
		}
	}
}

func TestParseErrorEnvelope_LegacyString(t *testing.T) {
	raw := &types.RawResponse{StatusCode: 200, Body: []byte(`{"error":"something went wrong"}`)}
	_, err := DecodeResponse("Test", raw)

	var apiErr *pkgerrs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "something went wrong" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestParseErrorEnvelope_FallsBackToStatusText(t *testing.T) {
	raw := &types.RawResponse{StatusCode: 403, Body: []byte(`{"error":{"code":10}}`)}
	_, err := DecodeResponse("Test", raw)

	var apiErr *pkgerrs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "forbidden" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "forbidden")
	}
	if apiErr.Code != pkgerrs.CodePermissionDenied {
		t.Errorf("Code = %d, want %d", apiErr.Code, pkgerrs.CodePermissionDenied)
	}
}
