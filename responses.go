package fbgraph

import (
	"log/slog"

	"github.com/go-faster/errors"

	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/jsonobj"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// Response pairs a parsed value with the transport response it came from.
type Response[T any] struct {
	// Data is the parsed entity. It is never nil on a successful Wrap.
	Data *T
	// Raw is kept for diagnostics such as headers and the original body.
	Raw *types.RawResponse
}

// Wrap validates raw and parses its body with parse.
//
// A nil raw response yields a nil Response and no error. A Graph error
// envelope, or a non-2xx status, yields an *errors.APIError without invoking
// parse. A body that cannot be decoded, or that parse rejects, yields an
// *errors.ParseError.
func Wrap[T any](raw *types.RawResponse, parse jsonobj.Parser[T]) (*Response[T], error) {
	if raw == nil {
		return nil, nil
	}

	body, err := internal.DecodeResponse("Wrap", raw)
	if err != nil {
		return nil, err
	}

	data, err := parse(body)
	if err != nil {
		var parseErr *pkgerrs.ParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &pkgerrs.ParseError{Operation: "Wrap", Err: err}
	}
	if data == nil {
		return nil, &pkgerrs.ParseError{Operation: "Wrap", Message: "parser returned no value"}
	}

	return &Response[T]{Data: data, Raw: raw}, nil
}

// wrap is Wrap with a warning logged for API errors.
func wrap[T any](logger *slog.Logger, op string, raw *types.RawResponse, parse jsonobj.Parser[T]) (*Response[T], error) {
	resp, err := Wrap(raw, parse)
	if err == nil {
		return resp, nil
	}

	var apiErr *pkgerrs.APIError
	if errors.As(err, &apiErr) {
		logger.Warn("graph API error",
			slog.String("operation", op),
			slog.Int("status", apiErr.StatusCode),
			slog.Int("code", apiErr.Code),
			slog.Int("subcode", apiErr.SubCode),
			slog.String("type", apiErr.Type),
			slog.String("fbtrace_id", apiErr.FBTraceID),
		)
	}
	return nil, err
}
