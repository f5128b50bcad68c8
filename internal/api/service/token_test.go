package service

import (
	"crypto/sha256"
	"slices"
	"testing"
	"time"

	"github.com/minglehq/mingle/internal/domain"
)

func TestGenerateOTP(t *testing.T) {
	token, err := generateOTP("usr-1", domain.ScopeActivation, domain.ScopeActivationTTL)
	if err != nil {
		t.Fatal(err)
	}
	if len(token.PlainText) != 6 {
		t.Errorf("otp length = %d, want 6", len(token.PlainText))
	}
	for _, r := range token.PlainText {
		if r < '0' || r > '9' {
			t.Errorf("otp %q contains non digit %q", token.PlainText, r)
		}
	}
	hash := sha256.Sum256([]byte(token.PlainText))
	if !slices.Equal(token.Hash, hash[:]) {
		t.Error("stored hash does not match the plaintext hash")
	}
	if token.Expiry.Before(time.Now()) {
		t.Error("otp generated already expired")
	}
}

func TestGenerateAuthToken(t *testing.T) {
	token, err := generateAuthToken("usr-1", domain.ScopeAuthentication, domain.ScopeAuthenticationTTL)
	if err != nil {
		t.Fatal(err)
	}
	// 16 random bytes base32 encoded without padding
	if len(token.PlainText) != 26 {
		t.Errorf("auth token length = %d, want 26", len(token.PlainText))
	}
	hash := sha256.Sum256([]byte(token.PlainText))
	if !slices.Equal(token.Hash, hash[:]) {
		t.Error("stored hash does not match the plaintext hash")
	}

	other, err := generateAuthToken("usr-1", domain.ScopeAuthentication, domain.ScopeAuthenticationTTL)
	if err != nil {
		t.Fatal(err)
	}
	if token.PlainText == other.PlainText {
		t.Error("two generated tokens collided")
	}
}
