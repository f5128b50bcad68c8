package facade

import (
	"context"
	"log/slog"

	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/mailer"
)

type Facade struct {
	*UserFacade
	*TokenFacade
	*ConversationFacade
	*MessageFacade
}

func New(uf *UserFacade, tf *TokenFacade, cf *ConversationFacade, mf *MessageFacade) *Facade {
	return &Facade{
		UserFacade:         uf,
		TokenFacade:        tf,
		ConversationFacade: cf,
		MessageFacade:      mf,
	}
}

type TXManager interface {
	RunInTX(ctx context.Context, fn func(ctx context.Context) error) error
}

// sendActivationMail dispatches the otp mail off the request goroutine, a
// slow smtp round trip must not hold the response.
func sendActivationMail(bg *common.BackgroundTask, m *mailer.Mailer, name, email, otp string) {
	bg.Run(func(context.Context) {
		data := map[string]any{
			"name":  name,
			"token": otp,
		}
		if err := m.Send(email, "email.tmpl.html", data); err != nil {
			slog.Error(err.Error())
		}
	})
}
