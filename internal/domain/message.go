package domain

import (
	"context"
	"time"
)

type EventOp int

const (
	// AddUserEvent registers the connecting user with the hub, sent once on connect
	AddUserEvent EventOp = iota
	// AddMessageEvent carries a new message from the hub to the receiving client
	AddMessageEvent
	// SendMessageEvent carries a new message from the sending client to the hub
	SendMessageEvent
	// MessageReadEvent tells the hub/peer that a conversation's messages were seen
	MessageReadEvent
	// IsTypingEvent carries the ephemeral typing flag; never persisted
	IsTypingEvent
	// UnreadStatusEvent tells the hub whether the just-delivered message counts as unread
	UnreadStatusEvent
)

type Message struct {
	ID             string     `json:"id,omitempty"     db:"id"`
	ConversationID string     `json:"conversationID"   db:"conversation_id"`
	SenderID       string     `json:"senderID"         db:"sender_id"`
	Body           string     `json:"body"`
	SentAt         *time.Time `json:"sentAt,omitempty" db:"sent_at"`
}

// Event is the single envelope travelling both ways on the socket. Which
// fields are meaningful depends on Op; the rest stay zero valued and are
// omitted on the wire.
type Event struct {
	Op             EventOp  `json:"op"`
	Message        *Message `json:"message,omitempty"`
	ConversationID string   `json:"conversationID,omitempty"`
	// UserID is the self id for AddUserEvent, the receiver for SendMessageEvent
	// and the typing peer for IsTypingEvent
	UserID   string `json:"userID,omitempty"`
	IsNew    bool   `json:"isNew,omitempty"`
	IsUnread bool   `json:"isUnread,omitempty"`
	IsTyping bool   `json:"isTyping,omitempty"`
}

type EventChan chan *Event

type MessageService interface {
	PopulateMessage(m *Message, sndr *User)
	SaveMessage(ctx context.Context, m *Message) error
	GetMessages(ctx context.Context, conversationID string) ([]*Message, error)
}

type MessageRepository interface {
	InsertMessage(ctx context.Context, m *Message) error
	GetMessages(ctx context.Context, conversationID string) ([]*Message, error)
}

func ValidateMessageBody(body string, ev *ErrValidation) {
	ev.Check(body != "", "body", "must be provided")
	ev.Check(len(body) <= 5120, "body", "must be a max of 5120 bytes (5KB) long")
}
