package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func forgeToken(s *HMACStrategy, payload string) string {
	token := payload + ":" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token))
}

func TestHMACStrategyDefaults(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("default ttl = %s, want 24h", strategy.ttl)
	}
	if strategy.Name() != "hmac" {
		t.Fatalf("unexpected name %q", strategy.Name())
	}

	custom := NewHMACStrategy("secret", Options{TTL: 2 * time.Hour})
	if custom.ttl != 2*time.Hour {
		t.Fatalf("custom ttl = %s, want 2h", custom.ttl)
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})

	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user id = %d, want 42", userID)
	}
}

func TestHMACStrategyRejectsMalformedTokens(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})

	cases := map[string]string{
		"not base64":  "!!not-base64!!",
		"too few":     base64.RawURLEncoding.EncodeToString([]byte("only:two")),
		"too many":    base64.RawURLEncoding.EncodeToString([]byte("a:b:c:d")),
		"no colons":   base64.RawURLEncoding.EncodeToString([]byte("blob")),
		"bad user id": forgeToken(strategy, fmt.Sprintf("abc:%d", time.Now().Add(time.Minute).Unix())),
		"bad expiry":  forgeToken(strategy, "10:soon"),
	}
	for name, token := range cases {
		if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestHMACStrategyRejectsTamperedSignature(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})

	token, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	idx := strings.LastIndexByte(string(raw), ':')
	tampered := base64.RawURLEncoding.EncodeToString([]byte(string(raw[:idx]) + ":tampered"))
	if _, err := strategy.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// A token signed under another secret fails the same way.
	other := NewHMACStrategy("other", Options{TTL: time.Minute})
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsExpired(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token := forgeToken(strategy, fmt.Sprintf("10:%d", time.Now().Add(-time.Minute).Unix()))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
