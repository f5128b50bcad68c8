package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/minglehq/mingle/internal/chat"
	"github.com/minglehq/mingle/internal/domain"
)

const wsReconnectWait = 5 * time.Second

// maintainWsConnection keeps one socket alive for the whole session, dialing
// again after every drop and flipping WsConnState so the rest of the client
// can react (conversation hydration, tui status badge)
func (c *Client) maintainWsConnection(shtdwnCtx context.Context) {
	for {
		if shtdwnCtx.Err() != nil {
			return
		}
		if c.AuthToken == "" || c.currentUser() == nil {
			// nothing to subscribe as, wait for a login
			select {
			case <-time.After(wsReconnectWait):
				continue
			case <-shtdwnCtx.Done():
				return
			}
		}
		c.WsConnState.WriteToChan(Connecting)
		if err, code := c.wsConnectAndServe(shtdwnCtx); err != nil {
			if code == http.StatusUnauthorized {
				c.LoginState.WriteToChan(false)
			}
			slog.Error("websocket connection dropped", "err", err.Error())
		}
		c.WsConnState.WriteToChan(Disconnected)
		select {
		case <-time.After(wsReconnectWait):
		case <-shtdwnCtx.Done():
			return
		}
	}
}

func (c *Client) wsConnectAndServe(shtdwnCtx context.Context) (error, int) {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+c.AuthToken)
	opts := &websocket.DialOptions{
		HTTPHeader:      h,
		CompressionMode: websocket.CompressionContextTakeover,
	}
	conn, resp, err := websocket.Dial(shtdwnCtx, subscribeTo, opts)
	if err != nil {
		code := http.StatusServiceUnavailable
		if resp != nil {
			code = resp.StatusCode
		}
		return getMostNestedError(err), code
	}
	defer conn.CloseNow()
	c.WsConnState.WriteToChan(Connected)
	// announce ourselves so the hub can route events this way
	if err = wsjson.Write(shtdwnCtx, conn, &domain.Event{
		Op:     domain.AddUserEvent,
		UserID: c.currentUser().ID,
	}); err != nil {
		return err, 0
	}

	// writer, drains queued outbound events until the conn dies
	writeCtx, cancelWrite := context.WithCancel(shtdwnCtx)
	defer cancelWrite()
	go func() {
		for {
			select {
			case e := <-c.sentEvents:
				if err := wsjson.Write(writeCtx, conn, e); err != nil {
					slog.Error("unable to write event to websocket", "op", e.Op, "err", err.Error())
					return
				}
			case <-writeCtx.Done():
				conn.Close(websocket.StatusNormalClosure, "client exited mingle")
				return
			}
		}
	}()

	for {
		var ev domain.Event
		if err = wsjson.Read(shtdwnCtx, conn, &ev); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || shtdwnCtx.Err() != nil {
				return nil, 0
			}
			return err, int(websocket.CloseStatus(err))
		}
		c.dispatchEvent(&ev)
	}
}

func (c *Client) dispatchEvent(ev *domain.Event) {
	switch ev.Op {
	case domain.AddMessageEvent:
		if ev.Message == nil {
			return
		}
		if err := c.repo.SaveMessages(ev.Message); err != nil {
			slog.Error("unable to cache received message", "err", err.Error())
		}
		c.withReconciler(func(r *chat.Reconciler) {
			r.ApplyMessage(*ev.Message, ev.IsNew)
		})
	case domain.MessageReadEvent:
		c.withReconciler(func(r *chat.Reconciler) {
			r.ApplyRead(ev.ConversationID)
		})
	case domain.IsTypingEvent:
		c.withReconciler(func(r *chat.Reconciler) {
			r.ApplyTyping(ev.UserID, ev.IsTyping)
		})
	default:
		slog.Warn("unexpected event from hub", "op", ev.Op)
	}
}

func (c *Client) currentUser() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentUsr
}
