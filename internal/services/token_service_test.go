package services

import (
	"testing"
	"time"

	"storeapi/internal/domain"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := TokenService{Secret: []byte("test-secret"), TTL: time.Hour}

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Verify(token, 42); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestTokenBoundToOrder(t *testing.T) {
	svc := TokenService{Secret: []byte("test-secret"), TTL: time.Hour}

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Verify(token, 43); !domain.IsInvalidToken(err) {
		t.Fatalf("expected InvalidTokenError for foreign order, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := TokenService{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
		Now:    func() time.Time { return time.Now().Add(-2 * time.Hour) },
	}
	verifier := TokenService{Secret: []byte("test-secret")}

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := verifier.Verify(token, 42); !domain.IsInvalidToken(err) {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	svc := TokenService{Secret: []byte("test-secret"), TTL: time.Hour}

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if err := svc.Verify(token, 42); !domain.IsInvalidToken(err) {
			t.Fatalf("token %q: expected InvalidTokenError, got %v", token, err)
		}
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := TokenService{Secret: []byte("one-secret"), TTL: time.Hour}
	verifier := TokenService{Secret: []byte("other-secret"), TTL: time.Hour}

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := verifier.Verify(token, 42); !domain.IsInvalidToken(err) {
		t.Fatalf("expected signature rejection, got %v", err)
	}
}
