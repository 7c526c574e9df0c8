package auth

import (
	"net/http/httptest"
	"testing"
)

func TestAuthenticator_ValidateAPIKey(t *testing.T) {
	a := NewAuthenticator([]string{HashAPIKey("secret-key")})

	if err := a.ValidateAPIKey("secret-key"); err != nil {
		t.Errorf("ValidateAPIKey(valid) error = %v", err)
	}
	if err := a.ValidateAPIKey("wrong-key"); err == nil {
		t.Error("ValidateAPIKey(invalid) should fail")
	}
}

func TestNewAuthenticator_EmptyMeansOpen(t *testing.T) {
	if a := NewAuthenticator(nil); a != nil {
		t.Error("NewAuthenticator(nil) should return nil for an open API")
	}
}

func TestExtractAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "no scheme", header: "abc123", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := ExtractAPIKey(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}
