package facade

import (
	"context"

	"github.com/minglehq/mingle/internal/api/service"
	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/domain"
	"github.com/minglehq/mingle/internal/mailer"
)

type UserFacade struct {
	service   *service.Service
	txManager TXManager
	mailer    *mailer.Mailer
	bgTask    *common.BackgroundTask
}

func NewUserFacade(service *service.Service,
	txMan TXManager,
	mailer *mailer.Mailer,
	bgTask *common.BackgroundTask) *UserFacade {
	return &UserFacade{
		service:   service,
		txManager: txMan,
		mailer:    mailer,
		bgTask:    bgTask,
	}
}

func (f *UserFacade) RegisterUser(ctx context.Context, u *domain.UserRegister) error {
	// the user row and its otp must land together or not at all
	var otp string
	if err := f.txManager.RunInTX(ctx, func(ctx context.Context) error {
		userID, err := f.service.RegisterUser(ctx, u)
		if err != nil {
			return err
		}
		otp, err = f.service.GenerateToken(ctx, userID, domain.ScopeActivation)
		return err
	}); err != nil {
		return err
	}
	sendActivationMail(f.bgTask, f.mailer, u.Name, u.Email, otp)
	return nil
}

func (f *UserFacade) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return f.service.GetByID(ctx, id)
}

func (f *UserFacade) ActivateUser(ctx context.Context, plainToken string) error {
	return f.txManager.RunInTX(ctx, func(ctx context.Context) error {
		usr, err := f.service.GetForToken(ctx, domain.ScopeActivation, plainToken)
		if err != nil {
			return err
		}
		if err = f.service.ActivateUser(ctx, usr); err != nil {
			return err
		}
		return f.service.DeleteAllForUser(ctx, usr.ID, domain.ScopeActivation)
	})
}

func (f *UserFacade) SearchUser(ctx context.Context, queryParam string) ([]*domain.User, error) {
	return f.service.SearchUser(ctx, queryParam)
}
