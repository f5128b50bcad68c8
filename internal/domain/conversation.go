package domain

import "context"

// Conversation is a single two-party thread as the client renders it in the
// list view. PeerName and PeerAvatarURL are denormalized snapshots of the
// other participant, so the list renders without a user lookup.
type Conversation struct {
	ID                  string `json:"id"                  db:"id"`
	PeerID              string `json:"peerID"              db:"peer_id"`
	PeerName            string `json:"peerName"            db:"peer_name"`
	PeerAvatarURL       string `json:"peerAvatarURL"       db:"peer_avatar_url"`
	UnreadCount         int    `json:"unreadCount"         db:"unread_count"`
	LastMessageSenderID string `json:"lastMessageSenderID" db:"last_message_sender_id"`
}

type ConversationService interface {
	CreateConversation(ctx context.Context, id, initiatorID, peerID string) error
	GetConversations(ctx context.Context) ([]*Conversation, error)
	GetConversationPeer(ctx context.Context, id, usrID string) (string, error)
	MarkConversationRead(ctx context.Context, id, usrID string) error
	SetConversationUnread(ctx context.Context, id, senderID string) error
}

type ConversationRepository interface {
	InsertConversation(ctx context.Context, id, initiatorID, peerID string) error
	GetConversations(ctx context.Context, usrID string) ([]*Conversation, error)
	GetConversationPeer(ctx context.Context, id, usrID string) (string, error)
	MarkConversationRead(ctx context.Context, id, usrID string) error
	SetConversationUnread(ctx context.Context, id, senderID string) error
}
