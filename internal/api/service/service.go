package service

import (
	"github.com/minglehq/mingle/internal/domain"
)

type Service struct {
	domain.UserService
	domain.TokenService
	domain.ConversationService
	domain.MessageService
}

func New(us domain.UserService, ts domain.TokenService, cs domain.ConversationService, ms domain.MessageService) *Service {
	return &Service{
		UserService:         us,
		TokenService:        ts,
		ConversationService: cs,
		MessageService:      ms,
	}
}
