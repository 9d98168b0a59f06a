package auth

import (
	"testing"

	"github.com/lamngoc/quizforge/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.Config{JWT: config.JWT{Secret: "test-secret", ExpiryHours: 1}})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()
	p := Principal{ID: 42, Email: "alice@example.com", Name: "Alice", FullName: "Alice Liddell"}

	token, err := svc.GenerateToken(p)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	parsed, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if *parsed != p {
		t.Errorf("round trip changed the principal: got %+v, want %+v", parsed, p)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	svc := newTestJWTService()

	if _, err := svc.ParseToken("garbage"); err == nil {
		t.Error("expected an error for a malformed token")
	}

	// Tokens without a user id are useless to the API.
	zero, err := svc.GenerateToken(Principal{ID: 0, Email: "nobody@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := svc.ParseToken(zero); err == nil {
		t.Error("expected an error for a token without a user id")
	}

	other := NewJWTService(&config.Config{JWT: config.JWT{Secret: "other-secret", ExpiryHours: 1}})
	forged, err := other.GenerateToken(Principal{ID: 7, Email: "mallory@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := svc.ParseToken(forged); err == nil {
		t.Error("expected an error for a token signed with a different secret")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
		want string
	}{
		{"full name wins", Principal{FullName: "Alice Liddell", Name: "Alice", Email: "a@x.com"}, "Alice Liddell"},
		{"name next", Principal{Name: "Alice", Email: "a@x.com"}, "Alice"},
		{"email local part", Principal{Email: "alice@example.com"}, "alice"},
		{"nothing", Principal{}, "Guest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
