package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.MessageRepository = (*MessageRepository)(nil)

type MessageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db}
}

func (r *MessageRepository) InsertMessage(ctx context.Context, m *domain.Message) error {
	query := `
		INSERT INTO message (id, conversation_id, sender_id, body, sent_at)
		VALUES (:id, :conversation_id, :sender_id, :body, :sent_at)
		ON CONFLICT (id) DO NOTHING
		`
	_, err := sqlx.NamedExecContext(ctx, r.db.execer(ctx), query, m)
	return err
}

func (r *MessageRepository) GetMessages(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, body, sent_at
		FROM message
		WHERE conversation_id = $1
		ORDER BY sent_at
		`
	rows, err := r.db.execer(ctx).QueryxContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err = rows.StructScan(&m); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
