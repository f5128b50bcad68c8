package client

import (
	"fmt"
	"log/slog"

	"github.com/minglehq/mingle/internal/chat"
	"github.com/minglehq/mingle/internal/domain"
)

func (c *Client) getMessages(conversationID string) ([]*domain.Message, int, error) {
	var res struct {
		Messages []*domain.Message `json:"messages"`
	}
	code, err := c.getJSON(fmt.Sprintf(getMessagesFmt, conversationID), &res)
	if err != nil {
		return nil, code, err
	}
	return res.Messages, code, nil
}

// hydrateMessages replaces the in-memory log for a conversation, from the server
// while connected, from the local cache otherwise. Messages already appended by
// live socket events are overwritten with the authoritative history.
func (c *Client) hydrateMessages(conversationID string) {
	var msgs []*domain.Message
	if c.WsConnState.Get() == Connected {
		var err error
		msgs, _, err = c.getMessages(conversationID)
		if err != nil {
			msgs = nil
		} else {
			_ = c.repo.DeleteMessages(conversationID)
			_ = c.repo.SaveMessages(msgs...)
		}
	}
	if msgs == nil {
		var err error
		msgs, err = c.repo.GetMessages(conversationID)
		if err != nil {
			slog.Error(err.Error())
			return
		}
	}
	flat := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		flat[i] = *m
	}
	c.withReconciler(func(r *chat.Reconciler) {
		r.HydrateMessages(conversationID, flat)
	})
}
