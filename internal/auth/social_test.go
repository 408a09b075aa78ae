package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/s/librekpi/internal/apperrors"
)

func TestCaptureToken(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := (&oauth2.Token{
		AccessToken:  "EAAB-short-token",
		TokenType:    "bearer",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}).WithExtra(map[string]interface{}{"user_id": "100001", "scope": "email"})

	got, err := CaptureToken(tok, "user_id", "missing")
	if err != nil {
		t.Fatalf("CaptureToken() error = %v", err)
	}

	if got.Token != "EAAB-short-token" {
		t.Errorf("Token = %q", got.Token)
	}
	if got.Payload["token_type"] != "Bearer" {
		t.Errorf("token_type = %v, want Bearer", got.Payload["token_type"])
	}
	if got.Payload["expiry"] != "2026-01-02T03:04:05Z" {
		t.Errorf("expiry = %v", got.Payload["expiry"])
	}
	if got.Payload["has_refresh_token"] != true {
		t.Error("expected has_refresh_token")
	}
	if got.Payload["user_id"] != "100001" {
		t.Errorf("user_id = %v", got.Payload["user_id"])
	}
	if _, ok := got.Payload["missing"]; ok {
		t.Error("absent extra keys must not be copied")
	}
	if _, ok := got.Payload["scope"]; ok {
		t.Error("extra keys not requested must not be copied")
	}
}

func TestCaptureToken_Errors(t *testing.T) {
	if _, err := CaptureToken(nil); err == nil {
		t.Error("expected error for nil token")
	}
	if _, err := CaptureToken(&oauth2.Token{}); err == nil {
		t.Error("expected error for empty access token")
	}

	long := &oauth2.Token{AccessToken: strings.Repeat("x", TokenLength+1)}
	_, err := CaptureToken(long)
	if !errors.Is(err, apperrors.ErrValueTooLarge) {
		t.Errorf("error = %v, want ErrValueTooLarge", err)
	}
}
