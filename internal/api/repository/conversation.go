package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.ConversationRepository = (*ConversationRepository)(nil)

type ConversationRepository struct {
	db *DB
}

func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{db}
}

// InsertConversation is idempotent, the initiating client mints the id and the
// row may already exist by the time a second message for it arrives
func (r *ConversationRepository) InsertConversation(ctx context.Context, id, initiatorID, peerID string) error {
	query := `
		INSERT INTO conversation (id, initiator_id, peer_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
		`
	_, err := r.db.execer(ctx).ExecContext(ctx, query, id, initiatorID, peerID)
	return err
}

// GetConversations returns the viewer's side of every thread, the peer's
// profile denormalized in, most recently active first
func (r *ConversationRepository) GetConversations(ctx context.Context, usrID string) ([]*domain.Conversation, error) {
	query := `
		SELECT c.id,
	        CASE
	            WHEN c.initiator_id = $1 THEN c.peer_id
	            ELSE c.initiator_id
	        END AS peer_id,
	        CASE
	            WHEN c.initiator_id = $1 THEN peer.name
	            ELSE initiator.name
	        END AS peer_name,
	        CASE
	            WHEN c.initiator_id = $1 THEN peer.avatar_url
	            ELSE initiator.avatar_url
	        END AS peer_avatar_url,
	        CASE
	            WHEN c.initiator_id = $1 THEN c.initiator_unread
	            ELSE c.peer_unread
	        END AS unread_count,
	        c.last_message_sender_id
		FROM conversation c
		    INNER JOIN users initiator ON c.initiator_id = initiator.id
		    INNER JOIN users peer ON c.peer_id = peer.id
		WHERE c.initiator_id = $1 OR c.peer_id = $1
		ORDER BY (
		    SELECT MAX(m.sent_at) FROM message m WHERE m.conversation_id = c.id
		) DESC NULLS LAST
		`
	rows, err := r.db.execer(ctx).QueryxContext(ctx, query, usrID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	conversations := make([]*domain.Conversation, 0)
	for rows.Next() {
		var c domain.Conversation
		if err = rows.StructScan(&c); err != nil {
			return nil, err
		}
		conversations = append(conversations, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *ConversationRepository) GetConversationPeer(ctx context.Context, id, usrID string) (string, error) {
	query := `
		SELECT CASE
		    WHEN initiator_id = $2 THEN peer_id
		    ELSE initiator_id
	    END
		FROM conversation
		WHERE id = $1 AND (initiator_id = $2 OR peer_id = $2)
		`
	var peerID string
	if err := r.db.execer(ctx).QueryRowxContext(ctx, query, id, usrID).Scan(&peerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrRecordNotFound
		}
		return "", err
	}
	return peerID, nil
}

func (r *ConversationRepository) MarkConversationRead(ctx context.Context, id, usrID string) error {
	query := `
		UPDATE conversation
		SET initiator_unread = CASE WHEN initiator_id = $2 THEN 0 ELSE initiator_unread END,
		    peer_unread = CASE WHEN peer_id = $2 THEN 0 ELSE peer_unread END
		WHERE id = $1
		`
	_, err := r.db.execer(ctx).ExecContext(ctx, query, id, usrID)
	return err
}

// SetConversationUnread bumps the receiving side's counter. A consecutive run
// from the same sender accumulates, a message that breaks the other side's run
// starts the count over at one.
func (r *ConversationRepository) SetConversationUnread(ctx context.Context, id, senderID string) error {
	query := `
		UPDATE conversation
		SET initiator_unread = CASE
		        WHEN initiator_id = $2 THEN initiator_unread
		        WHEN last_message_sender_id = $2 THEN initiator_unread + 1
		        ELSE 1
	        END,
		    peer_unread = CASE
		        WHEN peer_id = $2 THEN peer_unread
		        WHEN last_message_sender_id = $2 THEN peer_unread + 1
		        ELSE 1
	        END,
		    last_message_sender_id = $2
		WHERE id = $1
		`
	_, err := r.db.execer(ctx).ExecContext(ctx, query, id, senderID)
	return err
}
