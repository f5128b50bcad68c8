package client

import (
	"log/slog"

	"github.com/minglehq/mingle/internal/domain"
)

// wsEmitter satisfies chat.Emitter by queueing events onto the socket write
// loop. Emission is fire-and-forget: with no connection the event is dropped
// and the reconciliation silently goes stale until reconnect re-delivers
// fresh state.
type wsEmitter struct {
	c *Client
}

func (e wsEmitter) SendMessage(msg domain.Message, isNew bool, receiverID string) {
	e.c.queueEvent(&domain.Event{
		Op:      domain.SendMessageEvent,
		Message: &msg,
		IsNew:   isNew,
		UserID:  receiverID,
	})
}

func (e wsEmitter) UnreadStatus(msg domain.Message, isNew, unread bool) {
	e.c.queueEvent(&domain.Event{
		Op:       domain.UnreadStatusEvent,
		Message:  &msg,
		IsNew:    isNew,
		IsUnread: unread,
	})
}

func (e wsEmitter) MarkRead(conversationID, peerID string) {
	e.c.queueEvent(&domain.Event{
		Op:             domain.MessageReadEvent,
		ConversationID: conversationID,
		UserID:         peerID,
	})
}

func (e wsEmitter) Typing(peerID string, typing bool) {
	e.c.queueEvent(&domain.Event{
		Op:       domain.IsTypingEvent,
		UserID:   peerID,
		IsTyping: typing,
	})
}

func (c *Client) queueEvent(e *domain.Event) {
	select {
	case c.sentEvents <- e:
	default:
		slog.Warn("outbound event dropped, write buffer full or no connection", "op", e.Op)
	}
}
