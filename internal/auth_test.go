package internal

import (
	"net/url"
	"testing"
)

func TestAppSecretProof(t *testing.T) {
	t.Parallel()

	got := AppSecretProof("app-secret", "user-token")
	want := "b5a94d985eb7b68467d28ca5375162d12b9ca8fe238615acc927c8a9c08d2e95"
	if got != want {
		t.Errorf("AppSecretProof() = %q, want %q", got, want)
	}

	if AppSecretProof("app-secret", "other-token") == got {
		t.Error("expected different tokens to produce different proofs")
	}
}

func TestTokenQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query url.Values
		want  map[string]string
	}{
		{
			name:  "code exchange",
			query: CodeExchangeQuery("id", "secret", "https://example.com/cb", "the-code"),
			want: map[string]string{
				"client_id":     "id",
				"client_secret": "secret",
				"redirect_uri":  "https://example.com/cb",
				"code":          "the-code",
			},
		},
		{
			name:  "token exchange",
			query: ExchangeTokenQuery("id", "secret", "short-lived"),
			want: map[string]string{
				"grant_type":        "fb_exchange_token",
				"client_id":         "id",
				"client_secret":     "secret",
				"fb_exchange_token": "short-lived",
			},
		},
		{
			name:  "client credentials",
			query: ClientCredentialsQuery("id", "secret"),
			want: map[string]string{
				"grant_type":    "client_credentials",
				"client_id":     "id",
				"client_secret": "secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if len(tt.query) != len(tt.want) {
				t.Errorf("expected %d parameters, got %d: %v", len(tt.want), len(tt.query), tt.query)
			}
			for k, v := range tt.want {
				if got := tt.query.Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
		})
	}
}
