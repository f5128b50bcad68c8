package facade

import (
	"context"
	"errors"
	"log/slog"

	"github.com/minglehq/mingle/internal/api/service"
	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/domain"
)

type MessageFacade struct {
	service   *service.Service
	txManager TXManager
	bgTask    *common.BackgroundTask
}

func NewMessageFacade(service *service.Service,
	txMan TXManager,
	bgTask *common.BackgroundTask) *MessageFacade {
	return &MessageFacade{
		service:   service,
		txManager: txMan,
		bgTask:    bgTask,
	}
}

// ProcessSentMessage validates and persists an inbound send, creating the
// conversation row on a first message, and returns the populated message plus
// the id of the user it should be relayed to.
func (f *MessageFacade) ProcessSentMessage(ctx context.Context, ev *domain.Event, u *domain.User) (*domain.Message, string, error) {
	if ev.Message == nil {
		ve := domain.NewErrValidation()
		ve.AddError("message", "must be provided")
		return nil, "", ve
	}
	msg := *ev.Message
	f.service.PopulateMessage(&msg, u)
	receiverID := ev.UserID
	if ev.IsNew {
		if receiverID == "" {
			ve := domain.NewErrValidation()
			ve.AddError("userID", "must be provided for a new conversation")
			return nil, "", ve
		}
		if err := f.service.CreateConversation(ctx, msg.ConversationID, u.ID, receiverID); err != nil {
			return nil, "", err
		}
	} else if receiverID == "" {
		var err error
		if receiverID, err = f.service.GetConversationPeer(ctx, msg.ConversationID, u.ID); err != nil {
			return nil, "", err
		}
	}
	if err := f.service.SaveMessage(ctx, &msg); err != nil {
		var ve *domain.ErrValidation
		if errors.As(err, &ve) {
			return nil, "", ve
		}
		// retry in the background, the receiver still gets the live relay
		f.persistWithRetries(&msg)
	}
	return &msg, receiverID, nil
}

func (f *MessageFacade) GetMessages(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	return f.service.GetMessages(ctx, conversationID)
}

// Helpers & Stuff ----------------------------------------------------------------------------------------------------

func (f *MessageFacade) persistWithRetries(msg *domain.Message) {
	f.bgTask.Run(func(ctx context.Context) {
		var err error
		for range 5 { // retries 5 times
			if err = f.service.SaveMessage(ctx, msg); err == nil {
				break
			}
		}
		if err != nil {
			slog.Error(err.Error())
		}
	})
}
