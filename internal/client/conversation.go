package client

import (
	"context"
	"log"
	"net/http"

	"github.com/minglehq/mingle/internal/chat"
	"github.com/minglehq/mingle/internal/domain"
)

// populateConversationsAccordingToWsConnState hydrates the engine on every
// connection-state transition, once the connection state is Connected it
// fetches from the server, in case of Disconnected it retrieves from the
// local db
func (c *Client) populateConversationsAccordingToWsConnState(shtdwnCtx context.Context) {
	for {
		s := c.WsConnState.WaitForStateChange()
		select {
		case <-shtdwnCtx.Done():
			return
		default:
		}
		switch s {
		case Connected:
			convos, code, err := c.getConversations()
			if err != nil { // fetch from db
				convos, err = c.repo.GetConversations()
				if err != nil {
					log.Fatal(err)
				}
			}
			if code == http.StatusUnauthorized {
				c.LoginState.WriteToChan(false) // user will be redirected to log-in by tui
			} else {
				c.saveAndHydrateConvos(convos)
			}
		case Disconnected:
			convos, err := c.repo.GetConversations()
			if err != nil {
				log.Fatal(err)
			}
			c.saveAndHydrateConvos(convos)
		default:
		}
	}
}

func (c *Client) getConversations() ([]*domain.Conversation, int, error) {
	var res struct {
		Conversations []*domain.Conversation `json:"conversations"`
	}
	code, err := c.getJSON(getConversations, &res)
	if err != nil {
		return nil, code, err
	}
	return res.Conversations, code, nil
}

func (c *Client) saveAndHydrateConvos(convos []*domain.Conversation) {
	flat := make([]domain.Conversation, len(convos))
	for i, convo := range convos {
		flat[i] = *convo
	}
	c.withReconciler(func(r *chat.Reconciler) {
		r.HydrateConversations(flat)
	})
	_ = c.repo.DeleteAllConversations()
	_ = c.repo.SaveConversations(convos...) // ignore the error
}
