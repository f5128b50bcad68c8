package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"math/big"
	"time"

	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.TokenService = (*TokenService)(nil)

type TokenService struct {
	tokenRepo domain.TokenRepository
}

func NewTokenService(tokenRepo domain.TokenRepository) *TokenService {
	return &TokenService{tokenRepo: tokenRepo}
}

// GenerateToken mints a 6-digit OTP for ScopeActivation and an opaque bearer
// token for ScopeAuthentication, persisting only the sha256 hash.
func (s *TokenService) GenerateToken(ctx context.Context, userID string, scope string) (string, error) {
	var (
		token *domain.Token
		err   error
	)
	switch scope {
	case domain.ScopeActivation:
		token, err = generateOTP(userID, scope, domain.ScopeActivationTTL)
	case domain.ScopeAuthentication:
		token, err = generateAuthToken(userID, scope, domain.ScopeAuthenticationTTL)
	default:
		panic("invalid token scope")
	}
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	if err = s.tokenRepo.Insert(ctx, token); err != nil {
		return "", fmt.Errorf("error inserting token: %w", err)
	}
	return token.PlainText, nil
}

func (s *TokenService) DeleteAllForUser(ctx context.Context, userID string, scope string) error {
	return s.tokenRepo.DeleteAllForUser(ctx, userID, scope)
}

func generateOTP(userID, scope string, ttl time.Duration) (*domain.Token, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return nil, err
	}
	return sealToken(userID, scope, ttl, fmt.Sprintf("%06d", n)), nil
}

func generateAuthToken(userID, scope string, ttl time.Duration) (*domain.Token, error) {
	randBytes := make([]byte, 16)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, err
	}
	plain := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randBytes)
	return sealToken(userID, scope, ttl, plain), nil
}

func sealToken(userID, scope string, ttl time.Duration, plaintext string) *domain.Token {
	hash := sha256.Sum256([]byte(plaintext))
	return &domain.Token{
		UserID:    userID,
		Scope:     scope,
		Expiry:    time.Now().Add(ttl),
		PlainText: plaintext,
		Hash:      hash[:],
	}
}
