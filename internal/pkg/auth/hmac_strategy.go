package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// HMACStrategy issues self-contained session tokens: "<uid>:<expiry>:<sig>",
// base64url encoded. No server-side session state is kept; revocation happens
// through expiry alone.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds the strategy from a signing secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a token for the user, valid for the configured TTL.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	expiry := time.Now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d:%d", userID, expiry)
	token := payload + ":" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken verifies the signature and expiry and returns the user ID. Every
// failure mode maps to ErrInvalidToken so callers cannot distinguish a forged
// token from a stale one.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	payload, sig, ok := cutLast(string(raw))
	if !ok {
		return 0, ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	uidPart, expiryPart, ok := strings.Cut(payload, ":")
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(uidPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(expiryPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if time.Now().After(time.Unix(expiry, 0)) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

// cutLast splits off the final colon-separated field, requiring exactly three
// fields overall.
func cutLast(raw string) (payload, sig string, ok bool) {
	idx := strings.LastIndexByte(raw, ':')
	if idx < 0 {
		return "", "", false
	}
	payload, sig = raw[:idx], raw[idx+1:]
	if strings.Count(payload, ":") != 1 {
		return "", "", false
	}
	return payload, sig, true
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
