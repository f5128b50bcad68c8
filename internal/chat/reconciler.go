package chat

import (
	"strings"

	"github.com/google/uuid"
	"github.com/minglehq/mingle/internal/domain"
)

// Emitter is the outbound half of the transport. Every call is
// fire-and-forget: no acknowledgement, no retry, no cancellation.
type Emitter interface {
	SendMessage(msg domain.Message, isNew bool, receiverID string)
	UnreadStatus(msg domain.Message, isNew, unread bool)
	MarkRead(conversationID, peerID string)
	Typing(peerID string, typing bool)
}

// Directory resolves a user id to its display data, backed by the read-side
// user query. Needed when the first message of a brand-new conversation
// arrives from a peer the list has never seen.
type Directory interface {
	Lookup(userID string) (domain.User, error)
}

// UnreadCursor marks the trailing unread block of the open conversation.
// The divider only renders when Sender is the peer; a cursor whose Sender is
// the local user exists purely to style just-sent messages.
type UnreadCursor struct {
	Count  int
	Sender string
}

type pendingChat struct {
	peerID        string
	convoID       string
	peerName      string
	peerAvatarURL string
}

// Reconciler applies inbound socket events and local user actions to the
// conversation list, the message logs, the typing map and the unread
// counters, keeping them mutually consistent. It is written for a
// single-writer world: the caller serializes all invocations.
type Reconciler struct {
	selfID  string
	emitter Emitter
	dir     Directory
	notify  func()

	list   *ConversationList
	logs   *MessageLog
	typers *TypingTracker

	totalUnread int
	cursor      UnreadCursor
	activeIdx   int // -1 when no conversation is open
	pending     *pendingChat
	compose     string
}

func NewReconciler(selfID string, emitter Emitter, dir Directory, notify func()) *Reconciler {
	return &Reconciler{
		selfID:    selfID,
		emitter:   emitter,
		dir:       dir,
		notify:    notify,
		list:      NewConversationList(),
		logs:      NewMessageLog(),
		typers:    NewTypingTracker(),
		activeIdx: -1,
	}
}

// Read-side accessors ------------------------------------------------------

func (r *Reconciler) Conversations() []domain.Conversation { return r.list.List() }

func (r *Reconciler) Messages(conversationID string) []domain.Message {
	return r.logs.Get(conversationID)
}

func (r *Reconciler) TotalUnread() int { return r.totalUnread }

func (r *Reconciler) Cursor() UnreadCursor { return r.cursor }

func (r *Reconciler) ActiveIndex() int { return r.activeIdx }

func (r *Reconciler) Compose() string { return r.compose }

func (r *Reconciler) Typers() map[string]bool { return r.typers.Snapshot() }

// Active returns the open conversation, or false when idle or composing to a
// peer with no materialized conversation yet.
func (r *Reconciler) Active() (domain.Conversation, bool) {
	if r.activeIdx < 0 || r.activeIdx >= r.list.Len() {
		return domain.Conversation{}, false
	}
	return r.list.At(r.activeIdx), true
}

// PendingPeer reports the provisional compose target, empty when none.
func (r *Reconciler) PendingPeer() string {
	if r.pending == nil {
		return ""
	}
	return r.pending.peerID
}

// ActiveConversationID covers both the open conversation and the
// provisional one being composed to.
func (r *Reconciler) ActiveConversationID() string {
	if c, ok := r.Active(); ok {
		return c.ID
	}
	if r.pending != nil {
		return r.pending.convoID
	}
	return ""
}

// Hydration ----------------------------------------------------------------

// HydrateConversations replaces the list with a fresh read-side fetch and
// recomputes the global unread counter from it. The open conversation is
// re-located by id since the fetch may have reordered everything.
func (r *Reconciler) HydrateConversations(convos []domain.Conversation) {
	activeID := ""
	if c, ok := r.Active(); ok {
		activeID = c.ID
	}
	r.list.Replace(convos)
	r.totalUnread = 0
	for _, c := range convos {
		if c.UnreadCount > 0 && c.LastMessageSenderID == c.PeerID {
			r.totalUnread += c.UnreadCount
		}
	}
	r.activeIdx = -1
	if activeID != "" {
		r.activeIdx = r.list.IndexOf(activeID)
	}
	r.changed()
}

func (r *Reconciler) HydrateMessages(conversationID string, msgs []domain.Message) {
	r.logs.ReplaceAll(conversationID, msgs)
	r.changed()
}

// Inbound events -----------------------------------------------------------

// ApplyMessage reconciles one add-message event. isNew marks the first
// message of a conversation the list has never held.
func (r *Reconciler) ApplyMessage(msg domain.Message, isNew bool) {
	if isNew {
		r.applyNewConversationMessage(msg)
		return
	}

	i := r.list.IndexOf(msg.ConversationID)
	// the append proceeds even when the id is unknown to the list; the log
	// simply exists ahead of the next list refresh
	r.logs.Append(msg.ConversationID, msg)

	if r.viewing(msg.ConversationID) {
		// never let a viewed conversation accumulate unread: hand the read
		// receipt straight back to the transport
		r.emitter.UnreadStatus(msg, false, false)
		if r.cursor.Count > 0 {
			r.cursor.Count++
		}
		r.list.MoveToFront(i)
		r.activeIdx = 0
		r.changed()
		return
	}

	if i < 0 {
		// unknown conversation id: no list entry to reorder or count against
		r.emitter.UnreadStatus(msg, false, true)
		r.changed()
		return
	}

	r.emitter.UnreadStatus(msg, false, true)
	r.list.UpdateAt(i, func(c *domain.Conversation) {
		if c.LastMessageSenderID == c.PeerID {
			c.UnreadCount++
		} else {
			// a speculative "sent" marker is not unread; the peer's reply
			// starts a fresh unread run instead of extending it
			c.UnreadCount = 1
		}
		c.LastMessageSenderID = msg.SenderID
	})
	r.list.MoveToFront(i)
	r.totalUnread++
	if r.activeIdx >= 0 && i > r.activeIdx {
		// the list reordered under the open conversation, keep the index
		// pointing at the same logical entry
		r.activeIdx++
	}
	r.changed()
}

func (r *Reconciler) applyNewConversationMessage(msg domain.Message) {
	r.logs.ReplaceAll(msg.ConversationID, []domain.Message{msg})

	if r.pending != nil && r.pending.peerID == msg.SenderID {
		// the peer's first message confirms the chat the local user had
		// already opened: adopt their conversation id, nothing unread
		r.emitter.UnreadStatus(msg, true, false)
		r.list.UpsertFront(domain.Conversation{
			ID:            msg.ConversationID,
			PeerID:        msg.SenderID,
			PeerName:      r.pending.peerName,
			PeerAvatarURL: r.pending.peerAvatarURL,
		})
		r.pending = nil
		r.activeIdx = 0
		r.changed()
		return
	}

	r.emitter.UnreadStatus(msg, true, true)
	c := domain.Conversation{
		ID:                  msg.ConversationID,
		PeerID:              msg.SenderID,
		UnreadCount:         1,
		LastMessageSenderID: msg.SenderID,
	}
	if u, err := r.dir.Lookup(msg.SenderID); err == nil {
		c.PeerName = u.Name
		c.PeerAvatarURL = u.AvatarURL
	}
	r.list.UpsertFront(c)
	r.totalUnread++
	if r.activeIdx >= 0 {
		r.activeIdx++
	}
	r.changed()
}

// ApplyRead reconciles a message-read receipt from the peer.
func (r *Reconciler) ApplyRead(conversationID string) {
	if i := r.list.IndexOf(conversationID); i >= 0 {
		c := r.list.At(i)
		if c.UnreadCount > 0 && c.LastMessageSenderID == c.PeerID {
			r.totalUnread -= c.UnreadCount
		}
		r.list.UpdateAt(i, func(c *domain.Conversation) {
			c.UnreadCount = 0
			c.LastMessageSenderID = ""
		})
	}
	if r.viewing(conversationID) {
		r.cursor = UnreadCursor{}
	}
	r.changed()
}

func (r *Reconciler) ApplyTyping(peerID string, typing bool) {
	r.typers.Set(peerID, typing)
	r.changed()
}

// Local actions ------------------------------------------------------------

// Open makes an existing conversation the viewed one. The unread cursor is
// populated from the pre-clear state so the divider can render at the right
// spot, then genuinely-unread inbound is cleared and acknowledged.
func (r *Reconciler) Open(conversationID string) error {
	i := r.list.IndexOf(conversationID)
	if i < 0 {
		return domain.ErrRecordNotFound
	}
	r.pending = nil
	c := r.list.At(i)
	r.cursor = UnreadCursor{Count: c.UnreadCount, Sender: c.LastMessageSenderID}
	if c.UnreadCount > 0 && c.LastMessageSenderID == c.PeerID {
		r.totalUnread -= c.UnreadCount
		r.list.UpdateAt(i, func(c *domain.Conversation) {
			c.UnreadCount = 0
			c.LastMessageSenderID = ""
		})
		r.emitter.MarkRead(c.ID, c.PeerID)
	}
	r.activeIdx = i
	r.changed()
	return nil
}

// OpenNew starts a chat with a peer. With an existing conversation it opens
// that; otherwise it enters the provisional state with a client-minted
// conversation id, creating no list entry until a message flows.
func (r *Reconciler) OpenNew(peerID string) error {
	if i := r.list.IndexOfPeer(peerID); i >= 0 {
		return r.Open(r.list.At(i).ID)
	}
	p := &pendingChat{peerID: peerID, convoID: uuid.NewString()}
	if u, err := r.dir.Lookup(peerID); err == nil {
		p.peerName = u.Name
		p.peerAvatarURL = u.AvatarURL
	}
	r.pending = p
	r.activeIdx = -1
	r.cursor = UnreadCursor{}
	r.changed()
	return nil
}

// Close leaves the viewing state. An abandoned provisional conversation that
// never carried a message is dropped from the list.
func (r *Reconciler) Close() {
	if r.pending != nil {
		convoID := r.pending.convoID
		r.list.RemoveWhere(func(c domain.Conversation) bool {
			return c.ID == convoID && r.logs.Len(c.ID) == 0
		})
		r.pending = nil
	}
	r.activeIdx = -1
	r.cursor = UnreadCursor{}
	r.changed()
}

func (r *Reconciler) SetCompose(s string) {
	r.compose = s
}

// Send emits the compose buffer to the resolved target. No target or an
// empty buffer is a no-op. The conversation list, log, cursor and compose
// buffer all settle in this one call, before any server round trip.
func (r *Reconciler) Send() {
	body := strings.TrimSpace(r.compose)
	if body == "" {
		return
	}

	if r.pending != nil {
		msg := domain.Message{
			ConversationID: r.pending.convoID,
			SenderID:       r.selfID,
			Body:           body,
		}
		r.emitter.SendMessage(msg, true, r.pending.peerID)
		r.list.UpsertFront(domain.Conversation{
			ID:                  r.pending.convoID,
			PeerID:              r.pending.peerID,
			PeerName:            r.pending.peerName,
			PeerAvatarURL:       r.pending.peerAvatarURL,
			LastMessageSenderID: r.selfID,
		})
		r.logs.Append(msg.ConversationID, msg)
		r.pending = nil
		r.activeIdx = 0
		r.cursor = UnreadCursor{Count: r.cursor.Count + 1, Sender: r.selfID}
		r.compose = ""
		r.changed()
		return
	}

	c, ok := r.Active()
	if !ok {
		return
	}
	msg := domain.Message{
		ConversationID: c.ID,
		SenderID:       r.selfID,
		Body:           body,
	}
	r.emitter.SendMessage(msg, false, c.PeerID)
	r.logs.Append(c.ID, msg)
	// the speculative unread models "sent but not yet read by the peer"; it
	// never counts toward the global counter since the sender is self
	r.list.UpdateAt(r.activeIdx, func(c *domain.Conversation) {
		c.UnreadCount++
		c.LastMessageSenderID = r.selfID
	})
	r.list.MoveToFront(r.activeIdx)
	r.activeIdx = 0
	r.cursor = UnreadCursor{Count: r.cursor.Count + 1, Sender: r.selfID}
	r.compose = ""
	r.changed()
}

// SetTyping forwards the local typing flag to the current target's peer.
func (r *Reconciler) SetTyping(typing bool) {
	if r.pending != nil {
		r.emitter.Typing(r.pending.peerID, typing)
		return
	}
	if c, ok := r.Active(); ok {
		r.emitter.Typing(c.PeerID, typing)
	}
}

// EndSession wipes the ephemeral typing state.
func (r *Reconciler) EndSession() {
	r.typers.Reset()
	r.changed()
}

// Helpers ------------------------------------------------------------------

func (r *Reconciler) viewing(conversationID string) bool {
	c, ok := r.Active()
	return ok && c.ID == conversationID
}

func (r *Reconciler) changed() {
	if r.notify != nil {
		r.notify()
	}
}
