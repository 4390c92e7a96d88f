package fbgraph

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/options"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/validation"
)

// Transport sends one HTTP request and returns the undecoded response.
// A non-2xx status is not an error at this level.
type Transport interface {
	Do(req *http.Request) (*types.RawResponse, error)
}

// OAuthClient owns the app credentials, the current access token and the
// request settings, and decorates every outbound call with them.
//
// There is no global "authenticated" state. Each operation checks the
// properties it needs and fails with a *errors.PreconditionError, before any
// network activity, when one is unset.
//
// Calls may run concurrently, but the setters must not be called while other
// goroutines are using the client.
type OAuthClient struct {
	clientID       string
	clientSecret   string
	redirectURI    string
	accessToken    string
	version        string
	locale         string
	appSecretProof bool

	graphURL  string
	dialogURL string

	transport Transport
	logger    *slog.Logger
	now       func() time.Time
}

// NewOAuthClient creates an OAuthClient from config. Empty URL and version
// settings take their defaults; present ones must be well formed.
func NewOAuthClient(config *Config) (*OAuthClient, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}
	cfg := *config
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := internal.NewLogger(cfg.Logger)

	transport := cfg.Transport
	if transport == nil {
		transport = internal.NewHTTPTransport(cfg.HTTPClient, cfg.RateLimit, logger)
	}

	return &OAuthClient{
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		redirectURI:    cfg.RedirectURI,
		accessToken:    cfg.AccessToken,
		version:        cfg.Version,
		locale:         cfg.Locale,
		appSecretProof: cfg.AppSecretProof,
		graphURL:       strings.TrimRight(cfg.GraphURL, "/"),
		dialogURL:      strings.TrimRight(cfg.DialogURL, "/"),
		transport:      transport,
		logger:         logger,
		now:            time.Now,
	}, nil
}

// AccessToken returns the token attached to outgoing requests.
func (c *OAuthClient) AccessToken() string { return c.accessToken }

// SetAccessToken replaces the token attached to outgoing requests. An empty
// token stops the client from attaching one.
func (c *OAuthClient) SetAccessToken(token string) { c.accessToken = token }

// Locale returns the locale attached to outgoing requests.
func (c *OAuthClient) Locale() string { return c.locale }

// SetLocale sets the locale attached to outgoing requests, e.g. "en_US".
func (c *OAuthClient) SetLocale(locale string) error {
	if locale != "" && !validation.IsValidLocale(locale) {
		return &pkgerrs.ConfigError{Field: "Locale", Message: "must look like en_US"}
	}
	c.locale = locale
	return nil
}

// Version returns the Graph API version segment, e.g. "v2.9".
func (c *OAuthClient) Version() string { return c.version }

// SetVersion sets the Graph API version. An empty version makes every
// request fail its precondition until a version is set again.
func (c *OAuthClient) SetVersion(version string) error {
	if version != "" && !validation.IsValidVersion(version) {
		return &pkgerrs.ConfigError{Field: "Version", Message: "must look like v2.9"}
	}
	c.version = version
	return nil
}

// SetRedirectURI sets the URI the OAuth dialog sends the user back to.
func (c *OAuthClient) SetRedirectURI(uri string) { c.redirectURI = uri }

// BuildAuthorizationURL returns the OAuth dialog URL the user should be sent
// to. state is an anti-forgery value the caller must check on the redirect; see
// NewState. The scopes are sent comma-joined and are omitted when empty.
func (c *OAuthClient) BuildAuthorizationURL(state string, scopes types.Scopes) (string, error) {
	const op = "BuildAuthorizationURL"
	if err := c.require(op,
		property{"Version", c.version},
		property{"ClientID", c.clientID},
		property{"RedirectURI", c.redirectURI},
		property{"state", state},
	); err != nil {
		return "", err
	}

	conf := &oauth2.Config{
		ClientID:    c.clientID,
		RedirectURL: c.redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.dialogURL + "/" + c.version + internal.DialogPath,
			TokenURL: c.tokenURL(),
		},
	}

	var opts []oauth2.AuthCodeOption
	if !scopes.IsEmpty() {
		opts = append(opts, oauth2.SetAuthURLParam(internal.ParamScope, scopes.String()))
	}
	return conf.AuthCodeURL(state, opts...), nil
}

// ExchangeAuthorizationCode trades the code delivered to the redirect URI for
// a user access token. The stored access token is not changed.
func (c *OAuthClient) ExchangeAuthorizationCode(ctx context.Context, code string) (*Response[types.AccessToken], error) {
	const op = "ExchangeAuthorizationCode"
	if err := c.require(op,
		property{"ClientID", c.clientID},
		property{"ClientSecret", c.clientSecret},
		property{"RedirectURI", c.redirectURI},
		property{"code", code},
	); err != nil {
		return nil, err
	}
	return c.tokenRequest(ctx, op, internal.CodeExchangeQuery(c.clientID, c.clientSecret, c.redirectURI, code))
}

// RenewAccessToken trades currentToken for a long-lived token. The stored
// access token is not changed; apply the result with SetAccessToken.
func (c *OAuthClient) RenewAccessToken(ctx context.Context, currentToken string) (*Response[types.AccessToken], error) {
	const op = "RenewAccessToken"
	if err := c.require(op,
		property{"ClientID", c.clientID},
		property{"ClientSecret", c.clientSecret},
		property{"currentToken", currentToken},
	); err != nil {
		return nil, err
	}
	return c.tokenRequest(ctx, op, internal.ExchangeTokenQuery(c.clientID, c.clientSecret, currentToken))
}

// GetAppAccessToken requests an app access token with the client credentials grant.
func (c *OAuthClient) GetAppAccessToken(ctx context.Context) (*Response[types.AccessToken], error) {
	const op = "GetAppAccessToken"
	if err := c.require(op,
		property{"ClientID", c.clientID},
		property{"ClientSecret", c.clientSecret},
	); err != nil {
		return nil, err
	}
	return c.tokenRequest(ctx, op, internal.ClientCredentialsQuery(c.clientID, c.clientSecret))
}

// AppTokenSource returns an oauth2.TokenSource that fetches an app access
// token on first use and reuses it while it is valid.
func (c *OAuthClient) AppTokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &appTokenSource{ctx: ctx, client: c})
}

type appTokenSource struct {
	ctx    context.Context
	client *OAuthClient
}

func (s *appTokenSource) Token() (*oauth2.Token, error) {
	resp, err := s.client.GetAppAccessToken(s.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch app access token")
	}
	return resp.Data.OAuth2Token(s.client.now()), nil
}

func (c *OAuthClient) tokenURL() string {
	return c.graphURL + "/" + c.version + internal.TokenEndpointPath
}

func (c *OAuthClient) tokenRequest(ctx context.Context, op string, query url.Values) (*Response[types.AccessToken], error) {
	req := &options.Request{
		Method:    http.MethodGet,
		Path:      internal.TokenEndpointPath,
		Query:     query,
		Anonymous: true,
	}
	raw, err := c.DoRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	return wrap(c.logger, op, raw, types.ParseAccessToken)
}

// DecorateRequest returns a copy of req ready for dispatch:
//
//   - a query embedded in the path is moved into Query
//   - a bare path is prefixed with the Graph URL and version segment
//   - access_token is added when absent and a token is held, unless req is
//     anonymous or addressed to a host other than the Graph URL's
//   - appsecret_proof is added when enabled, absent, and a token is being sent
//   - locale is added when absent and a locale is configured
//
// Values already in the query are never overwritten, so decorating twice
// gives the same result as decorating once.
func (c *OAuthClient) DecorateRequest(req *options.Request) (*options.Request, error) {
	const op = "DecorateRequest"
	if req == nil {
		return nil, &pkgerrs.PreconditionError{Operation: op, Property: "request"}
	}
	if err := c.require(op, property{"Version", c.version}); err != nil {
		return nil, err
	}

	out := *req
	out.Query = cloneValues(req.Query)

	// Fold an embedded query, such as the one in paging.next, into Query.
	if path, rawQuery, found := strings.Cut(out.Path, "?"); found {
		embedded, err := url.ParseQuery(rawQuery)
		if err != nil {
			return nil, &pkgerrs.PreconditionError{Operation: op, Property: "Path", Message: "has a malformed query"}
		}
		for k, vs := range embedded {
			if !out.Query.Has(k) {
				out.Query[k] = vs
			}
		}
		out.Path = path
	}

	graphOrigin := true
	if validation.IsAbsoluteURL(out.Path) {
		graphOrigin = c.isGraphOrigin(out.Path)
	} else {
		out.Path = c.graphURL + "/" + c.version + "/" + strings.TrimLeft(out.Path, "/")
	}

	// Credentials only go to the configured Graph host.
	if !out.Anonymous && graphOrigin {
		if !out.Query.Has(internal.ParamAccessToken) && c.accessToken != "" {
			out.Query.Set(internal.ParamAccessToken, c.accessToken)
		}
		token := out.Query.Get(internal.ParamAccessToken)
		if c.appSecretProof && c.clientSecret != "" && token != "" && !out.Query.Has(internal.ParamAppSecretProof) {
			out.Query.Set(internal.ParamAppSecretProof, internal.AppSecretProof(c.clientSecret, token))
		}
	}

	if !out.Query.Has(internal.ParamLocale) && c.locale != "" {
		out.Query.Set(internal.ParamLocale, c.locale)
	}

	return &out, nil
}

func (c *OAuthClient) isGraphOrigin(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	graph, err := url.Parse(c.graphURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, graph.Scheme) && strings.EqualFold(u.Host, graph.Host)
}

// DoRequest decorates req and sends it through the transport, returning the
// undecoded response.
func (c *OAuthClient) DoRequest(ctx context.Context, req *options.Request) (*types.RawResponse, error) {
	decorated, err := c.DecorateRequest(req)
	if err != nil {
		return nil, err
	}

	target := decorated.Path
	if len(decorated.Query) > 0 {
		target += "?" + decorated.Query.Encode()
	}

	var body io.Reader
	if len(decorated.Body) > 0 {
		body = strings.NewReader(decorated.Body.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, decorated.Method, target, body)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			Operation: "DoRequest",
			URL:       internal.RedactURLString(target),
			Message:   "build request",
			Err:       err,
		}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return c.transport.Do(httpReq)
}

// Get sends a GET for path with query.
func (c *OAuthClient) Get(ctx context.Context, path string, query url.Values) (*types.RawResponse, error) {
	return c.DoRequest(ctx, &options.Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST for path with a form-encoded body.
func (c *OAuthClient) Post(ctx context.Context, path string, body url.Values) (*types.RawResponse, error) {
	return c.DoRequest(ctx, &options.Request{Method: http.MethodPost, Path: path, Body: body})
}

// NewState returns a random value suitable for BuildAuthorizationURL's state.
func NewState() string {
	return uuid.Must(uuid.NewRandom()).String()
}

type property struct {
	name  string
	value string
}

func (c *OAuthClient) require(op string, props ...property) error {
	for _, p := range props {
		if p.value == "" {
			return &pkgerrs.PreconditionError{Operation: op, Property: p.name}
		}
	}
	return nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
