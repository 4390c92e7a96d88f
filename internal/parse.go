package internal

import (
	"net/http"
	"strings"

	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/jsonobj"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// Keys of the Graph error envelope.
const (
	keyError        = "error"
	keyCode         = "code"
	keySubCode      = "error_subcode"
	keyType         = "type"
	keyMessage      = "message"
	keyUserTitle    = "error_user_title"
	keyUserMessage  = "error_user_msg"
	keyFBTraceID    = "fbtrace_id"
	headerFBTraceID = "X-FB-Trace-ID"
)

// DecodeResponse checks raw for a Graph error and returns its JSON body.
//
// An error envelope becomes an *APIError whatever the status code. A non-2xx
// response without an envelope becomes an *APIError carrying the status text.
// A 2xx response whose body is not a JSON object is a *ParseError.
func DecodeResponse(op string, raw *types.RawResponse) (jsonobj.Object, error) {
	body, parseErr := jsonobj.Parse(raw.Body)

	if parseErr == nil {
		if apiErr := ParseErrorEnvelope(raw, body); apiErr != nil {
			return nil, apiErr
		}
	}

	if !raw.IsSuccess() {
		return nil, statusError(raw)
	}

	if parseErr != nil {
		return nil, &pkgerrs.ParseError{Operation: op, Message: "response body is not a JSON object", Err: parseErr}
	}
	return body, nil
}

// ParseErrorEnvelope returns the APIError described by body, or nil when body
// has no "error" object or string.
func ParseErrorEnvelope(raw *types.RawResponse, body jsonobj.Object) *pkgerrs.APIError {
	env := body.Object(keyError)
	if _, legacy := body.Raw(keyError).(string); env == nil && !legacy {
		return nil
	}

	apiErr := &pkgerrs.APIError{StatusCode: raw.StatusCode}
	if env == nil {
		// Some legacy endpoints send a bare string.
		apiErr.Message = body.String(keyError)
	} else {
		apiErr.Code = env.Int(keyCode)
		apiErr.SubCode = env.Int(keySubCode)
		apiErr.Type = env.String(keyType)
		apiErr.Message = env.String(keyMessage)
		apiErr.UserTitle = env.String(keyUserTitle)
		apiErr.UserMessage = env.String(keyUserMessage)
		apiErr.FBTraceID = env.String(keyFBTraceID)
	}

	if apiErr.FBTraceID == "" && raw.Header != nil {
		apiErr.FBTraceID = raw.Header.Get(headerFBTraceID)
	}
	if apiErr.Message == "" {
		apiErr.Message = statusText(raw.StatusCode)
	}
	return apiErr
}

func statusError(raw *types.RawResponse) *pkgerrs.APIError {
	apiErr := &pkgerrs.APIError{
		StatusCode: raw.StatusCode,
		Message:    statusText(raw.StatusCode),
	}
	if raw.Header != nil {
		apiErr.FBTraceID = raw.Header.Get(headerFBTraceID)
	}
	return apiErr
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return strings.ToLower(text)
	}
	return "unexpected status"
}
