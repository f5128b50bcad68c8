package repository

import (
	"database/sql"
	"errors"

	"github.com/minglehq/mingle/internal/domain"
)

type LocalConversationRepository struct {
	db *DB
}

func NewLocalConversationRepository(db *DB) LocalConversationRepository {
	return LocalConversationRepository{db}
}

func (r LocalConversationRepository) SaveConversations(convos ...*domain.Conversation) error {
	query := `
		INSERT INTO conversation(id, peer_id, peer_name, peer_avatar_url, unread_count, last_message_sender_id)
		VALUES (:id, :peer_id, :peer_name, :peer_avatar_url, :unread_count, :last_message_sender_id)
		ON CONFLICT (id) DO UPDATE
		SET peer_name = excluded.peer_name,
		    peer_avatar_url = excluded.peer_avatar_url,
		    unread_count = excluded.unread_count,
		    last_message_sender_id = excluded.last_message_sender_id
	`
	for _, convo := range convos {
		_, err := r.db.NamedExec(query, convo)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r LocalConversationRepository) DeleteAllConversations() error {
	query := `
		DELETE FROM conversation
	`
	_, err := r.db.Exec(query)
	return err
}

func (r LocalConversationRepository) GetConversationByPeerID(id string) (*domain.Conversation, error) {
	query := `
		SELECT id, peer_id, peer_name, peer_avatar_url, unread_count, last_message_sender_id
		FROM conversation
		WHERE peer_id = $1
	`
	var c domain.Conversation
	if err := r.db.QueryRowx(query, id).StructScan(&c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r LocalConversationRepository) GetConversations() ([]*domain.Conversation, error) {
	query := `
		SELECT id, peer_id, peer_name, peer_avatar_url, unread_count, last_message_sender_id
		FROM conversation
	`
	rows, err := r.db.Queryx(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	convos := make([]*domain.Conversation, 0)
	for rows.Next() {
		var c domain.Conversation
		if err := rows.StructScan(&c); err != nil {
			return nil, err
		}
		convos = append(convos, &c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return convos, nil
}
