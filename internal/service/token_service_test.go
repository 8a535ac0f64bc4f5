package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", DefaultTokenTTL, "test")

	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "u1" {
		t.Fatalf("expected subject u1, got %q", subject)
	}
}

func TestTokenService_DefaultTTLIsOneDay(t *testing.T) {
	svc := NewTokenService("secret", 0, "")
	if svc.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", svc.TTL())
	}
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour
	svc := NewTokenService("secret", ttl, "test")
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = fixedClock(issuedAt.Add(ttl - time.Second))
	if subject, err := svc.Verify(token); err != nil || subject != "u1" {
		t.Fatalf("expected token valid before expiry, got %q (%v)", subject, err)
	}

	svc.now = fixedClock(issuedAt.Add(ttl + time.Second))
	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected expiry to be an unauthenticated error")
	}
}

func TestTokenService_TamperedTokenNeverVerifies(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "test")
	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for i := 0; i < len(token); i++ {
		for bit := 0; bit < 8; bit++ {
			tampered := []byte(token)
			tampered[i] ^= 1 << bit
			subject, err := svc.Verify(string(tampered))
			if err == nil {
				t.Fatalf("byte %d bit %d: tampered token verified as %q", i, bit, subject)
			}
			if !errors.Is(err, ErrTokenSignature) && !errors.Is(err, ErrTokenMalformed) {
				t.Fatalf("byte %d bit %d: unexpected error %v", i, bit, err)
			}
		}
	}
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	issuer := NewTokenService("other-secret", time.Hour, "test")
	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc := NewTokenService("secret", time.Hour, "test")
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "test")
	for _, raw := range []string{"", "   ", "abc", "a.b.c", "a.b"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("%q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "test")
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    "test",
		Subject:   "u1",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(signed); err == nil {
		t.Fatalf("expected alg none token to be rejected")
	}
}

func TestTokenService_RejectsWrongIssuerAndMissingExpiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "test")
	now := time.Now().UTC()

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "other-issuer",
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := wrongIssuer.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(signed); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected wrong issuer to be rejected, got %v", err)
	}

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "test",
		Subject: "u1",
	})
	signed, err = noExpiry.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(signed); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected token without exp to be rejected, got %v", err)
	}
}

func TestTokenService_IssueRequiresSecretAndSubject(t *testing.T) {
	if _, err := NewTokenService("", time.Hour, "test").Issue("u1"); err == nil {
		t.Fatalf("expected error on empty secret")
	}
	if _, err := NewTokenService("secret", time.Hour, "test").Issue(" "); err == nil {
		t.Fatalf("expected error on empty subject")
	}
}

func TestTokenService_ExpiryWithFractionalIssueTime(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 700_000_000, time.UTC)
	ttl := time.Hour
	svc := NewTokenService("secret", ttl, "test")
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, at := range []time.Duration{ttl - 300*time.Millisecond, ttl} {
		svc.now = fixedClock(issuedAt.Add(at))
		if subject, err := svc.Verify(token); err != nil || subject != "u1" {
			t.Fatalf("at issue+%s: expected valid token, got %q (%v)", at, subject, err)
		}
	}

	svc.now = fixedClock(issuedAt.Add(ttl + time.Second))
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestExpiresAt(t *testing.T) {
	whole := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := expiresAt(whole, time.Hour); !got.Equal(whole.Add(time.Hour)) {
		t.Fatalf("expected exact expiry for whole-second issue, got %s", got)
	}
	fractional := whole.Add(1)
	if got := expiresAt(fractional, time.Hour); !got.Equal(whole.Add(time.Hour + time.Second)) {
		t.Fatalf("expected expiry rounded up, got %s", got)
	}
}
