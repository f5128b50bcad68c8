package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minglehq/mingle/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var _ domain.UserService = (*UserService)(nil)

type UserService struct {
	repo domain.UserRepository
}

func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{repo: userRepo}
}

func (s *UserService) RegisterUser(ctx context.Context, u *domain.UserRegister) (string, error) {
	if ev := u.Validate(); ev != nil {
		return "", ev
	}
	ev := domain.NewErrValidation()
	exists, err := s.repo.ExistsUser(ctx, u.Email)
	if err != nil {
		return "", err
	}
	if exists {
		ev.AddError("email", "already exists")
		return "", ev
	}
	// the existence check runs first, bcrypt takes around 200ms
	passHash, err := hashPassword(u.Password)
	if err != nil {
		return "", fmt.Errorf("error generating password hash: %w", err)
	}
	userID, err := s.repo.RegisterUser(ctx, &domain.User{
		Name:     u.Name,
		Email:    u.Email,
		Password: passHash,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		ev.AddError("email", "already exists")
		return "", ev
	}
	return userID, err
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	// a malformed uuid reads as 404, no detail leaks to the caller
	if uuid.Validate(id) != nil {
		return nil, domain.ErrRecordNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) SearchUser(ctx context.Context, query string) ([]*domain.User, error) {
	column := "name"
	if strings.Contains(query, "@") {
		column = "email"
	}
	return s.repo.SearchUser(ctx, column, query)
}

func (s *UserService) GetForToken(ctx context.Context, scope string, plainToken string) (*domain.User, error) {
	ev := domain.NewErrValidation()
	switch scope {
	case domain.ScopeActivation:
		domain.ValidateOTP(plainToken, ev)
	case domain.ScopeAuthentication:
		domain.ValidateAuthenticationToken(plainToken, ev)
	}
	if ev.HasErrors() {
		return nil, ev
	}
	tokenHash := sha256.Sum256([]byte(plainToken))
	usr, err := s.repo.GetForToken(ctx, scope, tokenHash[:])
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			ev.AddError(tokenField(scope), "invalid")
			return nil, ev
		}
		return nil, err
	}
	return usr, nil
}

func (s *UserService) ActivateUser(ctx context.Context, user *domain.User) error {
	if user.Activated {
		return domain.ErrAlreadyActive
	}
	return s.repo.ActivateUser(ctx, user)
}

func (s *UserService) AuthenticateUser(ctx context.Context, u *domain.UserAuth) (string, error) {
	ev := domain.NewErrValidation()
	domain.ValidateEmail(u.Email, ev)
	domain.ValidatePlainPassword(u.Password, ev)
	if ev.HasErrors() {
		return "", ev
	}
	usr, err := s.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			ev.AddError("email", "not registered")
			return "", ev
		}
		return "", err
	}
	if !usr.Activated {
		ev.AddError("email", "not activated")
		return "", ev
	}
	if !passwordMatches(usr.Password, u.Password) {
		ev.AddError("password", "does not match")
		return "", ev
	}
	return usr.ID, nil
}

func tokenField(scope string) string {
	if scope == domain.ScopeActivation {
		return "otp"
	}
	return "token"
}

func hashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), 12)
}

func passwordMatches(hash []byte, plain string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
