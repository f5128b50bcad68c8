package chat

import (
	"fmt"
	"testing"

	"github.com/minglehq/mingle/internal/domain"
)

const self = "self"

type emitCall struct {
	op      string // "send", "unread-status", "mark-read", "typing"
	msg     domain.Message
	isNew   bool
	unread  bool
	typing  bool
	convoID string
	peerID  string
}

type fakeEmitter struct {
	calls []emitCall
}

func (f *fakeEmitter) SendMessage(msg domain.Message, isNew bool, receiverID string) {
	f.calls = append(f.calls, emitCall{op: "send", msg: msg, isNew: isNew, peerID: receiverID})
}

func (f *fakeEmitter) UnreadStatus(msg domain.Message, isNew, unread bool) {
	f.calls = append(f.calls, emitCall{op: "unread-status", msg: msg, isNew: isNew, unread: unread})
}

func (f *fakeEmitter) MarkRead(conversationID, peerID string) {
	f.calls = append(f.calls, emitCall{op: "mark-read", convoID: conversationID, peerID: peerID})
}

func (f *fakeEmitter) Typing(peerID string, typing bool) {
	f.calls = append(f.calls, emitCall{op: "typing", peerID: peerID, typing: typing})
}

func (f *fakeEmitter) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (f *fakeEmitter) markReads() int {
	n := 0
	for _, c := range f.calls {
		// a mark-read flows out either as an explicit receipt or as an
		// unread-status with the unread flag down
		if c.op == "mark-read" || (c.op == "unread-status" && !c.unread) {
			n++
		}
	}
	return n
}

type fakeDirectory map[string]domain.User

func (d fakeDirectory) Lookup(userID string) (domain.User, error) {
	if u, ok := d[userID]; ok {
		return u, nil
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func newTestReconciler(t *testing.T) (*Reconciler, *fakeEmitter) {
	t.Helper()
	em := &fakeEmitter{}
	dir := fakeDirectory{
		"peer1": {ID: "peer1", Name: "Pat"},
		"peer2": {ID: "peer2", Name: "Quinn"},
		"u9":    {ID: "u9", Name: "Nia"},
	}
	return NewReconciler(self, em, dir, nil), em
}

func convo(id, peerID string, unread int, lastSender string) domain.Conversation {
	return domain.Conversation{ID: id, PeerID: peerID, PeerName: "name-" + peerID,
		UnreadCount: unread, LastMessageSenderID: lastSender}
}

func inbound(convoID, senderID, body string) domain.Message {
	return domain.Message{ConversationID: convoID, SenderID: senderID, Body: body}
}

func assertUnreadInvariant(t *testing.T, r *Reconciler) {
	t.Helper()
	sum := 0
	for _, c := range r.Conversations() {
		if c.LastMessageSenderID == c.PeerID {
			sum += c.UnreadCount
		}
	}
	if got := r.TotalUnread(); got != sum {
		t.Fatalf("global unread = %d, want sum over peer-sent unread = %d", got, sum)
	}
}

func TestReconciler_GlobalUnreadInvariant(t *testing.T) {
	r, _ := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{
		convo("c1", "peer1", 2, "peer1"),
		convo("c2", "peer2", 0, ""),
	})
	assertUnreadInvariant(t, r)

	steps := []func(){
		func() { r.ApplyMessage(inbound("c1", "peer1", "a"), false) },
		func() { r.ApplyMessage(inbound("c2", "peer2", "b"), false) },
		func() { r.ApplyMessage(inbound("c9", "peer9", "stranger"), true) },
		func() { _ = r.Open("c1") },
		func() { r.ApplyMessage(inbound("c2", "peer2", "c"), false) },
		func() { r.SetCompose("hey"); r.Send() },
		func() { r.ApplyRead("c2") },
		func() { r.Close() },
		func() { r.ApplyMessage(inbound("c1", "peer1", "d"), false) },
	}
	for i, step := range steps {
		step()
		t.Run(fmt.Sprintf("after_step_%d", i), func(t *testing.T) {
			assertUnreadInvariant(t, r)
		})
	}
}

func TestReconciler_OpenClearsGenuineUnread(t *testing.T) {
	r, em := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{
		convo("c1", "peer1", 3, "peer1"),
		convo("c2", "peer2", 0, ""),
	})

	if err := r.Open("c1"); err != nil {
		t.Fatal(err)
	}
	c := r.Conversations()[0]
	if c.UnreadCount != 0 || c.LastMessageSenderID != "" {
		t.Errorf("open left unread=%d lastSender=%q, want cleared", c.UnreadCount, c.LastMessageSenderID)
	}
	if got := r.TotalUnread(); got != 0 {
		t.Errorf("global unread = %d, want 0", got)
	}
	if cur := r.Cursor(); cur.Count != 3 || cur.Sender != "peer1" {
		t.Errorf("cursor = %+v, want pre-clear {3 peer1}", cur)
	}
	if em.count("mark-read") != 1 {
		t.Errorf("mark-read emitted %d times, want 1", em.count("mark-read"))
	}
}

func TestReconciler_OpenWithSelfSentUnreadLeavesCounts(t *testing.T) {
	// a speculative "sent" marker must not be treated as genuinely unread
	r, em := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 1, self)})

	if err := r.Open("c1"); err != nil {
		t.Fatal(err)
	}
	if c := r.Conversations()[0]; c.UnreadCount != 1 || c.LastMessageSenderID != self {
		t.Errorf("open touched self-sent unread: %+v", c)
	}
	if em.count("mark-read") != 0 {
		t.Error("mark-read must not be emitted for self-sent unread")
	}
	if cur := r.Cursor(); cur.Count != 1 || cur.Sender != self {
		t.Errorf("cursor = %+v, want {1 self}", cur)
	}
}

func TestReconciler_Send(t *testing.T) {
	t.Run("existing_conversation", func(t *testing.T) {
		r, em := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{
			convo("c2", "peer2", 0, ""),
			convo("c1", "peer1", 0, ""),
		})
		if err := r.Open("c1"); err != nil {
			t.Fatal(err)
		}
		r.SetCompose("  hello there ")
		r.Send()

		if got := r.Messages("c1"); len(got) != 1 || got[0].Body != "hello there" {
			t.Fatalf("log = %v, want exactly the trimmed message", got)
		}
		if r.Compose() != "" {
			t.Error("compose buffer not cleared")
		}
		c := r.Conversations()[0]
		if c.ID != "c1" {
			t.Errorf("sent conversation not moved to front, got %q", c.ID)
		}
		if c.UnreadCount != 1 || c.LastMessageSenderID != self {
			t.Errorf("speculative sent marker wrong: %+v", c)
		}
		if r.ActiveIndex() != 0 {
			t.Errorf("active index = %d, want 0", r.ActiveIndex())
		}
		if em.count("send") != 1 {
			t.Fatalf("send emitted %d times, want 1", em.count("send"))
		}
		if call := em.calls[len(em.calls)-1]; call.isNew || call.peerID != "peer1" {
			t.Errorf("send call = %+v, want isNew=false receiver=peer1", call)
		}
		assertUnreadInvariant(t, r)
	})

	t.Run("provisional_conversation", func(t *testing.T) {
		r, em := newTestReconciler(t)
		if err := r.OpenNew("u9"); err != nil {
			t.Fatal(err)
		}
		r.SetCompose("hello")
		r.Send()

		convos := r.Conversations()
		if len(convos) != 1 {
			t.Fatalf("list length = %d, want 1", len(convos))
		}
		c := convos[0]
		if c.PeerID != "u9" || c.UnreadCount != 0 {
			t.Errorf("materialized conversation = %+v, want peer u9 with zero unread", c)
		}
		if c.PeerName != "Nia" {
			t.Errorf("peer name = %q, want the directory lookup result", c.PeerName)
		}
		if got := r.Messages(c.ID); len(got) != 1 || got[0].Body != "hello" {
			t.Fatalf("log = %v, want [hello]", got)
		}
		if r.PendingPeer() != "" {
			t.Error("provisional state not cleared after send")
		}
		if r.Compose() != "" {
			t.Error("compose buffer not cleared")
		}
		call := em.calls[len(em.calls)-1]
		if call.op != "send" || !call.isNew || call.peerID != "u9" {
			t.Errorf("send call = %+v, want isNew=true receiver=u9", call)
		}
		assertUnreadInvariant(t, r)
	})

	t.Run("no_target_is_noop", func(t *testing.T) {
		r, em := newTestReconciler(t)
		r.SetCompose("into the void")
		r.Send()
		if len(em.calls) != 0 {
			t.Error("send without a resolved target must not emit")
		}
	})

	t.Run("empty_compose_is_noop", func(t *testing.T) {
		r, em := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
		_ = r.Open("c1")
		em.calls = nil
		r.SetCompose("   ")
		r.Send()
		if em.count("send") != 0 || len(r.Messages("c1")) != 0 {
			t.Error("blank compose must not send or append")
		}
	})
}

func TestReconciler_MarkReadEmission(t *testing.T) {
	r, em := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{
		convo("c1", "peer1", 0, ""),
		convo("c2", "peer2", 0, ""),
	})
	if err := r.Open("c1"); err != nil {
		t.Fatal(err)
	}
	em.calls = nil

	r.ApplyMessage(inbound("c1", "peer1", "to the open one"), false)
	if got := em.markReads(); got != 1 {
		t.Errorf("mark-read for the active conversation emitted %d times, want exactly 1", got)
	}

	em.calls = nil
	r.ApplyMessage(inbound("c2", "peer2", "to the other one"), false)
	if got := em.markReads(); got != 0 {
		t.Errorf("mark-read emitted %d times for an inactive conversation, want 0", got)
	}
	if em.count("unread-status") != 1 {
		t.Error("inactive conversation should still report unread-status")
	}
}

func TestReconciler_InboundToOtherConversation(t *testing.T) {
	// c1 holds 2 unread from peer1; receiving one more while
	// viewing a different conversation bumps it to 3 and moves it up front
	r, _ := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{
		convo("c1", "peer1", 2, "peer1"),
		convo("c2", "peer2", 0, ""),
	})
	if err := r.Open("c2"); err != nil {
		t.Fatal(err)
	}
	if got := r.TotalUnread(); got != 2 {
		t.Fatalf("global unread = %d before the event, want 2", got)
	}

	r.ApplyMessage(inbound("c1", "peer1", "hi"), false)

	c := r.Conversations()[0]
	if c.ID != "c1" {
		t.Fatalf("front of list = %q, want c1", c.ID)
	}
	if c.UnreadCount != 3 || c.LastMessageSenderID != "peer1" {
		t.Errorf("c1 = %+v, want unread 3 from peer1", c)
	}
	if got := r.TotalUnread(); got != 3 {
		t.Errorf("global unread = %d, want 3", got)
	}
	if active, ok := r.Active(); !ok || active.ID != "c2" {
		t.Errorf("active conversation drifted, got %+v", active)
	}
	assertUnreadInvariant(t, r)
}

func TestReconciler_ActiveIndexSurvivesReorder(t *testing.T) {
	t.Run("affected_below_active_shifts_it_down", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{
			convo("c1", "peer1", 0, ""),
			convo("c2", "peer2", 0, ""),
			convo("c3", "peer3", 0, ""),
		})
		_ = r.Open("c1")
		r.ApplyMessage(inbound("c3", "peer3", "x"), false)
		if active, ok := r.Active(); !ok || active.ID != "c1" {
			t.Errorf("active = %+v, want still c1", active)
		}
		if r.ActiveIndex() != 1 {
			t.Errorf("active index = %d, want 1 after the reorder", r.ActiveIndex())
		}
	})
	t.Run("affected_above_active_leaves_it", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{
			convo("c1", "peer1", 0, ""),
			convo("c2", "peer2", 0, ""),
			convo("c3", "peer3", 0, ""),
		})
		_ = r.Open("c3")
		r.ApplyMessage(inbound("c1", "peer1", "x"), false)
		if active, ok := r.Active(); !ok || active.ID != "c3" {
			t.Errorf("active = %+v, want still c3", active)
		}
		if r.ActiveIndex() != 2 {
			t.Errorf("active index = %d, want 2", r.ActiveIndex())
		}
	})
	t.Run("brand_new_conversation_shifts_active", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
		_ = r.Open("c1")
		r.ApplyMessage(inbound("c9", "peer9", "first"), true)
		if active, ok := r.Active(); !ok || active.ID != "c1" {
			t.Errorf("active = %+v, want still c1", active)
		}
		if r.ActiveIndex() != 1 {
			t.Errorf("active index = %d, want 1", r.ActiveIndex())
		}
	})
}

func TestReconciler_ViewedConversationCursor(t *testing.T) {
	t.Run("read_cursor_stays_read", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
		_ = r.Open("c1")
		r.ApplyMessage(inbound("c1", "peer1", "x"), false)
		if cur := r.Cursor(); cur.Count != 0 {
			t.Errorf("cursor = %+v, an actively viewed read cursor must not go unread", cur)
		}
		if c := r.Conversations()[0]; c.UnreadCount != 0 {
			t.Errorf("viewed conversation accumulated unread: %+v", c)
		}
	})
	t.Run("outstanding_cursor_keeps_counting", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 2, "peer1")})
		_ = r.Open("c1") // cursor {2 peer1}
		r.ApplyMessage(inbound("c1", "peer1", "x"), false)
		if cur := r.Cursor(); cur.Count != 3 || cur.Sender != "peer1" {
			t.Errorf("cursor = %+v, want {3 peer1}", cur)
		}
	})
}

func TestReconciler_ReadReceipt(t *testing.T) {
	t.Run("not_viewed", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{
			convo("c1", "peer1", 2, "peer1"),
			convo("c2", "peer2", 1, "peer2"),
		})
		r.ApplyRead("c1")
		c := r.Conversations()[0]
		if c.UnreadCount != 0 || c.LastMessageSenderID != "" {
			t.Errorf("c1 = %+v, want cleared", c)
		}
		if got := r.TotalUnread(); got != 1 {
			t.Errorf("global unread = %d, want 1 (only c2 left)", got)
		}
		assertUnreadInvariant(t, r)
	})
	t.Run("viewed_clears_cursor", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
		_ = r.Open("c1")
		r.SetCompose("hi")
		r.Send() // cursor now {1 self}
		r.ApplyRead("c1")
		if cur := r.Cursor(); cur.Count != 0 || cur.Sender != "" {
			t.Errorf("cursor = %+v, want cleared", cur)
		}
	})
	t.Run("unknown_conversation_is_noop", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 1, "peer1")})
		r.ApplyRead("nope")
		if got := r.TotalUnread(); got != 1 {
			t.Errorf("global unread = %d, want untouched 1", got)
		}
	})
}

func TestReconciler_UnknownConversationAppendsLogOnly(t *testing.T) {
	r, _ := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
	r.ApplyMessage(inbound("ghost", "peerX", "late event"), false)

	if got := r.Messages("ghost"); len(got) != 1 {
		t.Fatalf("ghost log length = %d, the append must still proceed", len(got))
	}
	if got := len(r.Conversations()); got != 1 {
		t.Errorf("list length = %d, no entry may appear for an unknown id", got)
	}
	if got := r.TotalUnread(); got != 0 {
		t.Errorf("global unread = %d, want 0", got)
	}
}

func TestReconciler_PeerFirstMessageConfirmsPendingChat(t *testing.T) {
	r, em := newTestReconciler(t)
	if err := r.OpenNew("peer1"); err != nil {
		t.Fatal(err)
	}
	em.calls = nil

	r.ApplyMessage(inbound("c-theirs", "peer1", "hey, you there?"), true)

	convos := r.Conversations()
	if len(convos) != 1 || convos[0].ID != "c-theirs" {
		t.Fatalf("list = %+v, want the peer's conversation adopted", convos)
	}
	if convos[0].UnreadCount != 0 {
		t.Errorf("unread = %d, a locally initiated pairing never counts as unread", convos[0].UnreadCount)
	}
	if active, ok := r.Active(); !ok || active.ID != "c-theirs" {
		t.Errorf("want viewing the confirmed conversation, active = %+v", active)
	}
	if r.PendingPeer() != "" {
		t.Error("pending state not cleared")
	}
	if got := em.markReads(); got != 1 {
		t.Errorf("mark-read emitted %d times, want 1", got)
	}
	if got := r.TotalUnread(); got != 0 {
		t.Errorf("global unread = %d, want 0", got)
	}
}

func TestReconciler_BrandNewInboundFromStranger(t *testing.T) {
	r, _ := newTestReconciler(t)
	r.ApplyMessage(inbound("c-new", "peer2", "hello stranger"), true)

	convos := r.Conversations()
	if len(convos) != 1 {
		t.Fatalf("list length = %d, want 1", len(convos))
	}
	c := convos[0]
	if c.UnreadCount != 1 || c.LastMessageSenderID != "peer2" {
		t.Errorf("c = %+v, want one unread from peer2", c)
	}
	if c.PeerName != "Quinn" {
		t.Errorf("peer name = %q, want the directory lookup result", c.PeerName)
	}
	if got := r.Messages("c-new"); len(got) != 1 {
		t.Errorf("log length = %d, want 1", len(got))
	}
	if got := r.TotalUnread(); got != 1 {
		t.Errorf("global unread = %d, want 1", got)
	}
	assertUnreadInvariant(t, r)
}

func TestReconciler_OpenNewWithExistingConversation(t *testing.T) {
	r, _ := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{
		convo("c2", "peer2", 0, ""),
		convo("c1", "peer1", 0, ""),
	})
	if err := r.OpenNew("peer1"); err != nil {
		t.Fatal(err)
	}
	if active, ok := r.Active(); !ok || active.ID != "c1" {
		t.Errorf("active = %+v, want the existing conversation c1", active)
	}
	if r.PendingPeer() != "" {
		t.Error("no provisional state may exist when the conversation already does")
	}
}

func TestReconciler_AbandonedProvisionalLeavesNoTrace(t *testing.T) {
	r, _ := newTestReconciler(t)
	if err := r.OpenNew("u9"); err != nil {
		t.Fatal(err)
	}
	r.Close()
	if got := len(r.Conversations()); got != 0 {
		t.Errorf("list length = %d, want 0 after abandoning", got)
	}
	if r.PendingPeer() != "" {
		t.Error("pending state not cleared")
	}
	if r.ActiveIndex() != -1 {
		t.Errorf("active index = %d, want -1", r.ActiveIndex())
	}
}

func TestReconciler_Typing(t *testing.T) {
	r, em := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
	_ = r.Open("c1")

	r.SetTyping(true)
	if call := em.calls[len(em.calls)-1]; call.op != "typing" || call.peerID != "peer1" || !call.typing {
		t.Errorf("typing call = %+v, want typing=true to peer1", call)
	}

	r.ApplyTyping("peer1", true)
	if !r.Typers()["peer1"] {
		t.Error("typing flag not recorded")
	}
	r.EndSession()
	if len(r.Typers()) != 0 {
		t.Error("session end must wipe typing state")
	}
}

func TestReconciler_DuplicateEventsAreNotDeduplicated(t *testing.T) {
	// duplicate delivery is a documented gap: both copies land in the log
	r, _ := newTestReconciler(t)
	r.HydrateConversations([]domain.Conversation{convo("c1", "peer1", 0, "")})
	msg := inbound("c1", "peer1", "once")
	msg.ID = "m1"
	r.ApplyMessage(msg, false)
	r.ApplyMessage(msg, false)
	if got := len(r.Messages("c1")); got != 2 {
		t.Fatalf("log length = %d; duplicate delivery is expected to double-append", got)
	}
}
