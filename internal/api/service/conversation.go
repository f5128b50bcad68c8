package service

import (
	"context"

	"github.com/minglehq/mingle/internal/api/utility"
	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.ConversationService = (*ConversationService)(nil)

type ConversationService struct {
	conversationRepository domain.ConversationRepository
}

func NewConversationService(cr domain.ConversationRepository) *ConversationService {
	return &ConversationService{conversationRepository: cr}
}

func (s *ConversationService) CreateConversation(ctx context.Context, id, initiatorID, peerID string) error {
	return s.conversationRepository.InsertConversation(ctx, id, initiatorID, peerID)
}

func (s *ConversationService) GetConversations(ctx context.Context) ([]*domain.Conversation, error) {
	usr := utility.ContextGetUser(ctx)
	return s.conversationRepository.GetConversations(ctx, usr.ID)
}

func (s *ConversationService) GetConversationPeer(ctx context.Context, id, usrID string) (string, error) {
	return s.conversationRepository.GetConversationPeer(ctx, id, usrID)
}

func (s *ConversationService) MarkConversationRead(ctx context.Context, id, usrID string) error {
	return s.conversationRepository.MarkConversationRead(ctx, id, usrID)
}

func (s *ConversationService) SetConversationUnread(ctx context.Context, id, senderID string) error {
	return s.conversationRepository.SetConversationUnread(ctx, id, senderID)
}
