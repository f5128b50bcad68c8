package client

import (
	"context"
	"sync"

	"github.com/minglehq/mingle/internal/chat"
	"github.com/minglehq/mingle/internal/client/repository"
	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/domain"
	msync "github.com/minglehq/mingle/internal/sync"
)

var (
	once   sync.Once
	client *Client
)

type WsConnState int

const (
	Disconnected WsConnState = iota
	Connecting
	Connected
)

// ChatState is the immutable snapshot the TUI renders from. A fresh one is
// broadcast after every reconciler mutation.
type ChatState struct {
	Conversations  []domain.Conversation
	ActiveIndex    int
	ActiveMessages []domain.Message
	Cursor         chat.UnreadCursor
	TotalUnread    int
	Typers         map[string]bool
	PendingPeer    string
}

// Client is the runtime behind the TUI: it owns the reconciliation engine,
// the socket transport, the keyring-held auth token and the sqlite cache.
// All reconciler access goes through mu, which serializes every handler
// invocation the way a single event loop would.
type Client struct {
	AuthToken  string // if zero valued -> requires login
	CurrentUsr *domain.User
	FilesDir   string

	krm  *keyringManager
	db   *repository.DB
	repo *repository.LocalRepository

	mu    sync.Mutex
	recon *chat.Reconciler

	Chats       *msync.Broadcaster[ChatState]
	WsConnState *msync.StateMonitor[WsConnState]
	LoginState  *msync.StateMonitor[bool]
	BT          *common.BackgroundTask

	sentEvents chan *domain.Event
}

func Init(filesDir string) error {
	var err error
	once.Do(func() {
		var c Client
		c.FilesDir = filesDir
		c.krm, err = newKeyringManager()
		if err != nil {
			return
		}
		// ignoring the error, the zero valued AuthToken routes to login
		c.AuthToken = c.krm.getAuthTokenFromKeyring()
		c.db, err = repository.OpenDB(filesDir)
		if err != nil {
			return
		}
		if err = c.db.RunMigrations(); err != nil {
			return
		}
		c.repo = repository.NewLocalRepository(c.db)
		c.Chats = msync.NewBroadcaster[ChatState]()
		c.WsConnState = msync.NewStateMonitor(Disconnected)
		c.LoginState = msync.NewStateMonitor(false)
		c.BT = common.NewBackgroundTask()
		c.sentEvents = make(chan *domain.Event, 64)
		client = &c
	})
	if err != nil {
		return err
	}
	client.runBackgroundProcesses()
	return nil
}

func Get() *Client {
	return client
}

func (c *Client) runBackgroundProcesses() {
	c.BT.Run(c.Chats.Broadcast)
	c.BT.Run(c.WsConnState.Broadcast)
	c.BT.Run(c.LoginState.Broadcast)
	c.BT.Run(c.maintainWsConnection)
	c.BT.Run(c.populateConversationsAccordingToWsConnState)
	c.BT.Run(c.manageUserSessions)
	if c.AuthToken != "" {
		// token restored from keyring, resume the session without a login
		c.BT.Run(func(context.Context) { c.LoginState.WriteToChan(true) })
	}
}

// startSession wires a fresh reconciler for the just-resolved user.
func (c *Client) startSession(u *domain.User) {
	c.mu.Lock()
	c.CurrentUsr = u
	c.recon = chat.NewReconciler(u.ID, wsEmitter{c}, userDirectory{c}, nil)
	c.mu.Unlock()
}

// withReconciler serializes a mutation against the engine and broadcasts the
// resulting snapshot. It is a no-op before a session starts.
func (c *Client) withReconciler(fn func(r *chat.Reconciler)) {
	c.mu.Lock()
	if c.recon == nil {
		c.mu.Unlock()
		return
	}
	fn(c.recon)
	state := c.snapshotLocked()
	c.mu.Unlock()
	c.Chats.Write(state)
}

func (c *Client) snapshotLocked() ChatState {
	r := c.recon
	s := ChatState{
		Conversations: r.Conversations(),
		ActiveIndex:   r.ActiveIndex(),
		Cursor:        r.Cursor(),
		TotalUnread:   r.TotalUnread(),
		Typers:        r.Typers(),
		PendingPeer:   r.PendingPeer(),
	}
	if id := r.ActiveConversationID(); id != "" {
		s.ActiveMessages = r.Messages(id)
	}
	return s
}

// Commands issued by the TUI ------------------------------------------------

func (c *Client) OpenConversation(conversationID string) error {
	var err error
	c.withReconciler(func(r *chat.Reconciler) {
		err = r.Open(conversationID)
	})
	if err != nil {
		return err
	}
	c.hydrateMessages(conversationID)
	return nil
}

func (c *Client) OpenNewChat(peerID string) error {
	var err error
	c.withReconciler(func(r *chat.Reconciler) {
		err = r.OpenNew(peerID)
	})
	return err
}

func (c *Client) CloseChat() {
	c.withReconciler(func(r *chat.Reconciler) { r.Close() })
}

func (c *Client) SetCompose(s string) {
	c.mu.Lock()
	if c.recon != nil {
		c.recon.SetCompose(s)
	}
	c.mu.Unlock()
}

func (c *Client) SendMessage() {
	c.withReconciler(func(r *chat.Reconciler) { r.Send() })
}

func (c *Client) SetTyping(typing bool) {
	c.mu.Lock()
	if c.recon != nil {
		c.recon.SetTyping(typing)
	}
	c.mu.Unlock()
}
