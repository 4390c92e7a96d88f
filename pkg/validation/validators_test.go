package validation

import "testing"

func TestIsValidVersion(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"v2.9", true},
		{"v17.0", true},
		{"v2.10", true},
		{"2.9", false},
		{"v2", false},
		{"v02.9", false},
		{"v2.09", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidVersion(tt.input); got != tt.want {
				t.Errorf("IsValidVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidLocale(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"en_US", true},
		{"es_LA", true},
		{"en-US", false},
		{"EN_us", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidLocale(tt.input); got != tt.want {
				t.Errorf("IsValidLocale(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"123_456", true},
		{"me", false},
		{"123_", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidObjectID(tt.input); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	if !IsAbsoluteURL("https://graph.facebook.com") {
		t.Error("expected graph URL to be absolute")
	}
	if IsAbsoluteURL("me/feed") {
		t.Error("expected bare path to be relative")
	}
}

func TestValidateRedirectURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "https://example.com/callback"},
		{name: "empty", input: "", wantErr: true},
		{name: "relative", input: "/callback", wantErr: true},
		{name: "fragment", input: "https://example.com/cb#frag", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRedirectURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedirectURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
