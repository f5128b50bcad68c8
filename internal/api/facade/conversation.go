package facade

import (
	"context"

	"github.com/minglehq/mingle/internal/api/service"
	"github.com/minglehq/mingle/internal/domain"
)

type ConversationFacade struct {
	service *service.Service
}

func NewConversationFacade(srv *service.Service) *ConversationFacade {
	return &ConversationFacade{srv}
}

func (f *ConversationFacade) GetConversations(ctx context.Context) ([]*domain.Conversation, error) {
	return f.service.GetConversations(ctx)
}

func (f *ConversationFacade) GetConversationPeer(ctx context.Context, id, usrID string) (string, error) {
	return f.service.GetConversationPeer(ctx, id, usrID)
}

func (f *ConversationFacade) MarkConversationRead(ctx context.Context, id, usrID string) error {
	return f.service.MarkConversationRead(ctx, id, usrID)
}

func (f *ConversationFacade) SetConversationUnread(ctx context.Context, id, senderID string) error {
	return f.service.SetConversationUnread(ctx, id, senderID)
}
