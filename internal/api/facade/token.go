package facade

import (
	"context"
	"errors"

	"github.com/minglehq/mingle/internal/api/service"
	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/domain"
	"github.com/minglehq/mingle/internal/mailer"
)

type TokenFacade struct {
	service   *service.Service
	txManager TXManager
	mailer    *mailer.Mailer
	bgTask    *common.BackgroundTask
}

func NewTokenFacade(service *service.Service,
	txMan TXManager,
	mailer *mailer.Mailer,
	bgTask *common.BackgroundTask) *TokenFacade {
	return &TokenFacade{
		service:   service,
		txManager: txMan,
		mailer:    mailer,
		bgTask:    bgTask,
	}
}

func (t *TokenFacade) GenerateOTP(ctx context.Context, email string) error {
	usr, err := t.service.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			ev := domain.NewErrValidation()
			ev.AddError("email", "not registered")
			return ev
		}
		return err
	}
	if usr.Activated {
		return domain.ErrAlreadyActive
	}
	otp, err := t.service.GenerateToken(ctx, usr.ID, domain.ScopeActivation)
	if err != nil {
		return err
	}
	sendActivationMail(t.bgTask, t.mailer, usr.Name, email, otp)
	return nil
}

func (t *TokenFacade) GenerateAuthToken(ctx context.Context, u *domain.UserAuth) (string, error) {
	usrID, err := t.service.AuthenticateUser(ctx, u)
	if err != nil {
		return "", err
	}
	var token string
	if err = t.txManager.RunInTX(ctx, func(ctx context.Context) error {
		// one live auth token per user, a fresh login invalidates the rest
		if err = t.service.DeleteAllForUser(ctx, usrID, domain.ScopeAuthentication); err != nil {
			return err
		}
		token, err = t.service.GenerateToken(ctx, usrID, domain.ScopeAuthentication)
		return err
	}); err != nil {
		return "", err
	}
	return token, nil
}

func (t *TokenFacade) VerifyAuthToken(ctx context.Context, token string) (*domain.User, error) {
	return t.service.GetForToken(ctx, domain.ScopeAuthentication, token)
}
