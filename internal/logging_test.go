package internal

import (
	"bytes"
	"log/slog"
	"net/url"
	"strings"
	"testing"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no credentials",
			input: "https://graph.facebook.com/v2.9/me?fields=id",
			want:  "https://graph.facebook.com/v2.9/me?fields=id",
		},
		{
			name:  "access token",
			input: "https://graph.facebook.com/v2.9/me?access_token=abc&fields=id",
			want:  "https://graph.facebook.com/v2.9/me?access_token=%2A%2A%2A&fields=id",
		},
		{
			name:  "token exchange",
			input: "https://graph.facebook.com/v2.9/oauth/access_token?client_secret=s&code=c&fb_exchange_token=t",
			want:  "https://graph.facebook.com/v2.9/oauth/access_token?client_secret=%2A%2A%2A&code=%2A%2A%2A&fb_exchange_token=%2A%2A%2A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.input)
			if err != nil {
				t.Fatalf("url.Parse: %v", err)
			}
			if got := RedactURL(u); got != tt.want {
				t.Errorf("RedactURL() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := RedactURL(nil); got != "" {
		t.Errorf("RedactURL(nil) = %q, want empty", got)
	}
	if got := RedactURLString("%zz"); got != redacted {
		t.Errorf("RedactURLString(invalid) = %q, want %q", got, redacted)
	}
}

func TestRedactingHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("token exchanged",
		slog.String("access_token", "secret-token"),
		slog.String("client_secret", "secret-key"),
		slog.String("url", "https://graph.facebook.com/v2.9/me?access_token=secret-token"),
		slog.String("client_id", "12345"),
	)

	out := buf.String()
	if strings.Contains(out, "secret-token") || strings.Contains(out, "secret-key") {
		t.Fatalf("expected credentials to be redacted, got %s", out)
	}
	if !strings.Contains(out, "client_id=12345") {
		t.Errorf("expected non-sensitive attributes to pass through, got %s", out)
	}
}

func TestNewLogger_NilDiscards(t *testing.T) {
	logger := NewLogger(nil)
	if logger == nil {
		t.Fatal("expected a logger")
	}
	logger.Info("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "info+2", want: slog.LevelInfo + 2},
		{input: "debug-4", want: slog.LevelDebug - 4},
		{input: "verbose", wantErr: true},
		{input: "info+x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
