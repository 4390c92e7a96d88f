// Package options turns per-call parameters into Graph API requests.
//
// Each options struct can be built with missing data. Required identifiers are
// checked only when Request is called, which fails with a
// *errors.PreconditionError naming the missing property. Optional parameters
// that were never set are left out of the query entirely.
package options

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/go-faster/errors"
	"github.com/gorilla/schema"

	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// Graph edge names used by the options in this package.
const (
	EdgeLikes       = "likes"
	EdgeComments    = "comments"
	EdgePhotos      = "photos"
	EdgePermissions = "permissions"
	EdgeFeed        = "feed"
)

var (
	validate = internal.NewValidator()
	encoder  = schema.NewEncoder()
)

func init() {
	encoder.RegisterEncoder(types.Fields{}, encodeStringer)
	encoder.RegisterEncoder(types.Scopes{}, encodeStringer)
}

func encodeStringer(v reflect.Value) string {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}

// Request is a serialized call. Path is relative to the versioned Graph root
// unless it is an absolute URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is sent form-encoded. It is only set for writes.
	Body url.Values
	// Anonymous requests are sent without the client's access token.
	Anonymous bool
}

// Builder is implemented by every options struct with a fixed path.
type Builder interface {
	Request() (*Request, error)
}

// NewRequest returns a request for path with an empty query.
func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path, Query: url.Values{}}
}

func encode(op string, src any) (url.Values, error) {
	values := url.Values{}
	if err := encoder.Encode(src, values); err != nil {
		return nil, errors.Wrap(err, "encode "+op)
	}
	return values, nil
}

// ObjectOptions reads a single node, GET /{id}.
type ObjectOptions struct {
	ID     string       `schema:"-" validate:"required,pathsegment"`
	Fields types.Fields `schema:"fields,omitempty"`
}

// Request validates the options and builds the request.
func (o ObjectOptions) Request() (*Request, error) {
	const op = "ObjectOptions"
	if err := validate.Struct(op, o); err != nil {
		return nil, err
	}
	q, err := encode(op, o)
	if err != nil {
		return nil, err
	}
	return &Request{Method: http.MethodGet, Path: "/" + o.ID, Query: q}, nil
}

// EdgeOptions reads one page of an edge, GET /{id}/{edge}. At most one of
// After and Before may be set.
type EdgeOptions struct {
	ID     string       `schema:"-" validate:"required,pathsegment"`
	Fields types.Fields `schema:"fields,omitempty"`
	Limit  int          `schema:"limit,omitempty" validate:"gte=0"`
	After  string       `schema:"after,omitempty"`
	Before string       `schema:"before,omitempty" validate:"excluded_with=After"`
	// Summary asks Graph to attach the edge summary (total_count and friends).
	Summary bool `schema:"summary,omitempty"`
}

// Request validates the options and builds the request for edge.
func (o EdgeOptions) Request(edge string) (*Request, error) {
	const op = "EdgeOptions"
	if err := internal.ValidatePathSegment(edge); err != nil {
		return nil, errors.Wrap(err, "edge")
	}
	if err := validate.Struct(op, o); err != nil {
		return nil, err
	}
	q, err := encode(op, o)
	if err != nil {
		return nil, err
	}
	return &Request{Method: http.MethodGet, Path: "/" + o.ID + "/" + edge, Query: q}, nil
}

// PhotoUploadOptions publishes a photo from a public URL, POST /{target}/photos.
// Target is a user, page or album id.
type PhotoUploadOptions struct {
	Target    string `schema:"-" validate:"required,pathsegment"`
	URL       string `schema:"url" validate:"required,url"`
	Caption   string `schema:"caption,omitempty"`
	Published *bool  `schema:"published,omitempty"`
	NoStory   bool   `schema:"no_story,omitempty"`
}

// Request validates the options and builds the request. Parameters are sent in
// the form body.
func (o PhotoUploadOptions) Request() (*Request, error) {
	const op = "PhotoUploadOptions"
	if err := validate.Struct(op, o); err != nil {
		return nil, err
	}
	body, err := encode(op, o)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   "/" + o.Target + "/" + EdgePhotos,
		Query:  url.Values{},
		Body:   body,
	}, nil
}

// PermissionsOptions lists the permissions a user granted the app,
// GET /{user}/permissions, or a single one when Permission is set.
type PermissionsOptions struct {
	UserID     string      `schema:"-" validate:"required,pathsegment"`
	Permission types.Scope `schema:"-" validate:"omitempty,pathsegment"`
}

// Request validates the options and builds the request.
func (o PermissionsOptions) Request() (*Request, error) {
	const op = "PermissionsOptions"
	if err := validate.Struct(op, o); err != nil {
		return nil, err
	}
	path := "/" + o.UserID + "/" + EdgePermissions
	if o.Permission != "" {
		path += "/" + string(o.Permission)
	}
	return NewRequest(http.MethodGet, path), nil
}

// Bool returns a pointer to b, for optional flags such as PhotoUploadOptions.Published.
func Bool(b bool) *bool {
	return &b
}
