package fbgraph

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/validation"
)

const (
	// DefaultGraphURL is the root of resource and token calls.
	DefaultGraphURL = "https://graph.facebook.com"
	// DefaultDialogURL is the root of the OAuth dialog.
	DefaultDialogURL = "https://www.facebook.com"
	// DefaultVersion is the Graph API version used when none is configured.
	DefaultVersion = "v2.9"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// RateLimitConfig controls client-side throttling. See Config.RateLimit.
type RateLimitConfig = internal.RateLimitConfig

// Config holds the configuration for the Graph client.
//
// No credential is required at construction. Each operation checks the
// properties it needs when it is called, so a client built with only an access
// token can read the Graph but cannot exchange codes.
//
// Example for a server-side login flow:
//
//	config := &Config{
//		ClientID:     "your-app-id",
//		ClientSecret: "your-app-secret",
//		RedirectURI:  "https://example.com/callback",
//	}
//
// Example for reading with an existing token:
//
//	config := &Config{
//		AccessToken: "user-or-page-token",
//		Locale:      "en_US",
//	}
type Config struct {
	// ClientID and ClientSecret identify the Facebook app.
	// Required for the OAuth token operations.
	ClientID     string
	ClientSecret string

	// RedirectURI is where the OAuth dialog sends the user back to.
	// Required for BuildAuthorizationURL and ExchangeAuthorizationCode.
	RedirectURI string

	// AccessToken is attached to every non-anonymous request when set.
	AccessToken string

	// Version is the Graph API version segment, e.g. "v2.9".
	// Defaults to DefaultVersion if not specified.
	Version string

	// Locale is attached to every request when set, e.g. "en_US".
	Locale string

	// GraphURL and DialogURL override the Facebook hosts, mainly for tests.
	// Default to DefaultGraphURL and DefaultDialogURL.
	GraphURL  string
	DialogURL string

	// AppSecretProof signs every token-bearing request with appsecret_proof.
	// Requires ClientSecret. Enable it when "Require App Secret" is on for the app.
	AppSecretProof bool

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	// Ignored when Transport is set.
	HTTPClient *http.Client

	// Transport replaces the built-in rate-limited HTTP transport.
	Transport Transport

	// RateLimit configures the built-in transport's client-side throttle.
	// Defaults to 200 requests per minute with a burst of 20.
	RateLimit *RateLimitConfig

	// Logger for structured diagnostics.
	// Optional. Credentials are redacted from everything the client logs.
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.GraphURL == "" {
		c.GraphURL = DefaultGraphURL
	}
	if c.DialogURL == "" {
		c.DialogURL = DefaultDialogURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
}

func (c *Config) validate() error {
	if !validation.IsValidVersion(c.Version) {
		return &pkgerrs.ConfigError{Field: "Version", Message: "must look like v2.9"}
	}
	if c.Locale != "" && !validation.IsValidLocale(c.Locale) {
		return &pkgerrs.ConfigError{Field: "Locale", Message: "must look like en_US"}
	}
	if !validation.IsAbsoluteURL(c.GraphURL) {
		return &pkgerrs.ConfigError{Field: "GraphURL", Message: "must be an absolute URL"}
	}
	if !validation.IsAbsoluteURL(c.DialogURL) {
		return &pkgerrs.ConfigError{Field: "DialogURL", Message: "must be an absolute URL"}
	}
	if c.RedirectURI != "" {
		if err := validation.ValidateRedirectURI(c.RedirectURI); err != nil {
			return &pkgerrs.ConfigError{Field: "RedirectURI", Message: err.Error()}
		}
	}
	if c.AppSecretProof && c.ClientSecret == "" {
		return &pkgerrs.ConfigError{Field: "AppSecretProof", Message: "requires ClientSecret"}
	}
	return nil
}

// Client is the main Graph API client. It bundles an OAuthClient with the
// endpoint families that share it.
//
// Example usage:
//
//	client, err := NewClient(&Config{AccessToken: token})
//	if err != nil {
//		return err
//	}
//
//	resp, err := client.Posts.Get(ctx, options.ObjectOptions{
//		ID:     "123_456",
//		Fields: types.FieldID.With(types.FieldMessage),
//	})
type Client struct {
	OAuth *OAuthClient

	Posts       *PostsEndpoint
	Likes       *LikesEndpoint
	Comments    *CommentsEndpoint
	Photos      *PhotosEndpoint
	Users       *UsersEndpoint
	Permissions *PermissionsEndpoint
}

// NewClient creates a new Graph client with the provided configuration.
//
// Returns a *errors.ConfigError if:
//   - config is nil
//   - Version, Locale, GraphURL, DialogURL or RedirectURI are malformed
//   - AppSecretProof is set without a ClientSecret
//
// NewClient performs no network activity.
func NewClient(config *Config) (*Client, error) {
	oauth, err := NewOAuthClient(config)
	if err != nil {
		return nil, err
	}

	e := endpoint{client: oauth, logger: oauth.logger}
	return &Client{
		OAuth:       oauth,
		Posts:       &PostsEndpoint{e},
		Likes:       &LikesEndpoint{e},
		Comments:    &CommentsEndpoint{e},
		Photos:      &PhotosEndpoint{e},
		Users:       &UsersEndpoint{e},
		Permissions: &PermissionsEndpoint{e},
	}, nil
}
