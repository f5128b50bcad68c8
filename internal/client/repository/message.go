package repository

import (
	"github.com/minglehq/mingle/internal/domain"
)

type LocalMessageRepository struct {
	db *DB
}

func NewLocalMessageRepository(db *DB) LocalMessageRepository {
	return LocalMessageRepository{db}
}

func (r LocalMessageRepository) SaveMessages(msgs ...*domain.Message) error {
	query := `
		INSERT INTO message (id, conversation_id, sender_id, body, sent_at)
		VALUES (:id, :conversation_id, :sender_id, :body, :sent_at)
		ON CONFLICT (id) DO NOTHING
	`
	for _, msg := range msgs {
		if _, err := r.db.NamedExec(query, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetMessages returns a conversation's cached log in send order, the order
// the engine's per-conversation log expects
func (r LocalMessageRepository) GetMessages(conversationID string) ([]*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, body, sent_at
		FROM message
		WHERE conversation_id = $1
		ORDER BY sent_at
	`
	rows, err := r.db.Query(query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		var sentAt *string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &sentAt); err != nil {
			return nil, err
		}
		m.SentAt, _ = parseTime(sentAt)
		msgs = append(msgs, &m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r LocalMessageRepository) DeleteMessages(conversationID string) error {
	query := `
		DELETE FROM message WHERE conversation_id = $1
	`
	_, err := r.db.Exec(query, conversationID)
	return err
}
