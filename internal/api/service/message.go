package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.MessageService = (*MessageService)(nil)

type MessageService struct {
	messageRepo domain.MessageRepository
}

func NewMessageService(messageRepo domain.MessageRepository) *MessageService {
	return &MessageService{messageRepo}
}

// PopulateMessage stamps the authoritative fields the client is not trusted
// with, the sender identity and, when absent, id and send time
func (*MessageService) PopulateMessage(m *domain.Message, sndr *domain.User) {
	m.SenderID = sndr.ID
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.SentAt == nil {
		now := time.Now()
		m.SentAt = &now
	}
}

func (s *MessageService) SaveMessage(ctx context.Context, m *domain.Message) error {
	ev := domain.NewErrValidation()
	domain.ValidateMessageBody(m.Body, ev)
	if ev.HasErrors() {
		return ev
	}
	return s.messageRepo.InsertMessage(ctx, m)
}

func (s *MessageService) GetMessages(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	return s.messageRepo.GetMessages(ctx, conversationID)
}
