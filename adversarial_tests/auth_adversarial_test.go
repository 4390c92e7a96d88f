package adversarial_tests

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	fbgraph "github.com/jamesprial/go-facebook-graph-wrapper"
	"github.com/jamesprial/go-facebook-graph-wrapper/adversarial_tests/helpers"
	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/options"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

const (
	userToken = "secret-user-token"
	appSecret = "app-secret"
	authCode  = "secret-auth-code"
)

var secrets = []string{userToken, appSecret, authCode, internal.AppSecretProof(appSecret, userToken)}

func assertNoSecrets(t *testing.T, where, text string) {
	t.Helper()
	for _, s := range secrets {
		if strings.Contains(text, s) {
			t.Errorf("%s leaks %q: %s", where, s, text)
		}
	}
}

// errorChainText joins the messages of err and everything it wraps.
func errorChainText(err error) string {
	var parts []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, " | ")
}

func proofClient(t *testing.T, transport *helpers.ChaosTransport, logger *slog.Logger) *fbgraph.Client {
	return newChaosGraphClient(t, transport, func(c *fbgraph.Config) {
		c.AppSecretProof = true
		c.RedirectURI = "https://example.com/callback"
		c.Logger = logger
	})
}

// TestTransportErrorsRedactCredentials checks every error kind for leaked credentials.
func TestTransportErrorsRedactCredentials(t *testing.T) {
	modes := map[string]helpers.ChaosMode{
		"connection reset": helpers.ChaosConnectionReset,
		"partial read":     helpers.ChaosPartialRead,
		"invalid json":     helpers.ChaosInvalidJSON,
		"html error":       helpers.ChaosHTMLError,
		"throttled":        helpers.ChaosThrottled,
	}

	for name, mode := range modes {
		t.Run(name, func(t *testing.T) {
			transport := &helpers.ChaosTransport{Mode: mode, Body: `{"id":"1","message":"hello"}`, PartialReadBytes: 5}
			client := proofClient(t, transport, nil)

			_, err := client.Posts.Get(context.Background(), options.ObjectOptions{ID: "1"})
			if err == nil {
				t.Fatal("expected an error")
			}
			assertNoSecrets(t, "error chain", errorChainText(err))

			// The token was really sent; only the reporting is masked.
			if !strings.Contains(transport.LastURL(), userToken) {
				t.Errorf("request did not carry the token: %s", transport.LastURL())
			}
		})
	}
}

// TestRequestErrorURLIsMasked checks the URL recorded on a RequestError.
func TestRequestErrorURLIsMasked(t *testing.T) {
	transport := &helpers.ChaosTransport{Mode: helpers.ChaosConnectionReset}
	client := proofClient(t, transport, nil)

	_, err := client.Users.Me(context.Background(), nil)
	var reqErr *pkgerrs.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}

	u, perr := url.Parse(reqErr.URL)
	if perr != nil {
		t.Fatalf("RequestError.URL does not parse: %v", perr)
	}
	for _, key := range []string{"access_token", "appsecret_proof"} {
		if got := u.Query().Get(key); got != "***" {
			t.Errorf("%s = %q, want ***", key, got)
		}
	}
	if !errors.Is(err, helpers.ErrConnectionReset) {
		t.Error("RequestError should unwrap to the transport failure")
	}
}

// TestTokenExchangeErrorsRedactCode checks the code and client secret on token calls.
func TestTokenExchangeErrorsRedactCode(t *testing.T) {
	transport := &helpers.ChaosTransport{Mode: helpers.ChaosConnectionReset}
	client := proofClient(t, transport, nil)

	_, err := client.OAuth.ExchangeAuthorizationCode(context.Background(), authCode)
	if err == nil {
		t.Fatal("expected an error")
	}
	assertNoSecrets(t, "exchange error", errorChainText(err))

	_, err = client.OAuth.RenewAccessToken(context.Background(), userToken)
	if err == nil {
		t.Fatal("expected an error")
	}
	assertNoSecrets(t, "renew error", errorChainText(err))
}

// TestLogsNeverContainCredentials drives successful, failing and throttled
// calls through a debug logger.
func TestLogsNeverContainCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	for _, mode := range []helpers.ChaosMode{helpers.ChaosNone, helpers.ChaosThrottled, helpers.ChaosHTMLError, helpers.ChaosConnectionReset} {
		transport := &helpers.ChaosTransport{Mode: mode, Body: `{"id":"1"}`}
		client := proofClient(t, transport, logger)

		_, _ = client.Posts.Get(context.Background(), options.ObjectOptions{ID: "1"})
		_, _ = client.OAuth.ExchangeAuthorizationCode(context.Background(), authCode)
	}

	if buf.Len() == 0 {
		t.Fatal("expected debug output")
	}
	assertNoSecrets(t, "log output", buf.String())

	// Credentials logged by hand through the redacting wrapper are masked too.
	buf.Reset()
	internal.NewLogger(logger).Info("manual", slog.String("access_token", userToken), slog.String("code", authCode))
	assertNoSecrets(t, "manual log", buf.String())
}

// TestAuthorizationURLCarriesNoSecrets checks the dialog URL.
func TestAuthorizationURLCarriesNoSecrets(t *testing.T) {
	client := proofClient(t, &helpers.ChaosTransport{}, nil)

	u, err := client.OAuth.BuildAuthorizationURL(fbgraph.NewState(), types.ScopeEmail.With(types.ScopeUserPosts))
	if err != nil {
		t.Fatalf("BuildAuthorizationURL() error = %v", err)
	}
	assertNoSecrets(t, "authorization URL", u)
	if strings.Contains(u, "client_secret") || strings.Contains(u, "access_token") {
		t.Errorf("authorization URL carries credentials: %s", u)
	}
}

// TestAppSecretProofFollowsSentToken checks that the proof signs the token on
// the wire, not the stored one, when a caller supplies its own token.
func TestAppSecretProofFollowsSentToken(t *testing.T) {
	transport := &helpers.ChaosTransport{Body: `{"id":"1"}`}
	client := proofClient(t, transport, nil)

	_, err := client.OAuth.Get(context.Background(), "/me", url.Values{"access_token": {"page-token"}})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	u, _ := url.Parse(transport.LastURL())
	q := u.Query()
	if q.Get("access_token") != "page-token" {
		t.Errorf("access_token = %q, want page-token", q.Get("access_token"))
	}
	if want := internal.AppSecretProof(appSecret, "page-token"); q.Get("appsecret_proof") != want {
		t.Errorf("appsecret_proof = %q, want %q", q.Get("appsecret_proof"), want)
	}
}

// TestForgedProofIsKept checks that a caller-supplied proof is not replaced.
func TestForgedProofIsKept(t *testing.T) {
	client := proofClient(t, &helpers.ChaosTransport{}, nil)

	req, err := client.OAuth.DecorateRequest(&options.Request{
		Method: "GET",
		Path:   "/me",
		Query:  url.Values{"appsecret_proof": {"caller-proof"}},
	})
	if err != nil {
		t.Fatalf("DecorateRequest() error = %v", err)
	}
	if got := req.Query.Get("appsecret_proof"); got != "caller-proof" {
		t.Errorf("appsecret_proof = %q, want caller-proof", got)
	}
}

// TestForeignHostGetsNoCredentials checks absolute URLs outside the Graph host.
func TestForeignHostGetsNoCredentials(t *testing.T) {
	transport := &helpers.ChaosTransport{Body: `{"id":"1"}`}
	client := proofClient(t, transport, nil)

	for _, target := range []string{
		"https://evil.example.com/x",
		"https://graph.facebook.com.evil.example.com/v2.9/me",
		"http://graph.facebook.com/v2.9/me",
	} {
		if _, err := client.OAuth.Get(context.Background(), target, nil); err != nil {
			t.Fatalf("Get(%s) error = %v", target, err)
		}
		sent := transport.LastURL()
		if strings.Contains(sent, "access_token") || strings.Contains(sent, "appsecret_proof") {
			t.Errorf("credentials sent to %s: %s", target, sent)
		}
	}
}
