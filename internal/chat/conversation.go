package chat

import "github.com/minglehq/mingle/internal/domain"

// ConversationList keeps conversations in most-recently-active-first order.
// The Reconciler is the only writer; readers get value copies via List and At.
type ConversationList struct {
	items []domain.Conversation
}

func NewConversationList() *ConversationList {
	return &ConversationList{items: make([]domain.Conversation, 0)}
}

func (l *ConversationList) Len() int {
	return len(l.items)
}

// List returns a snapshot copy, safe to hand to renderers.
func (l *ConversationList) List() []domain.Conversation {
	out := make([]domain.Conversation, len(l.items))
	copy(out, l.items)
	return out
}

func (l *ConversationList) At(i int) domain.Conversation {
	return l.items[i]
}

func (l *ConversationList) IndexOf(conversationID string) int {
	for i := range l.items {
		if l.items[i].ID == conversationID {
			return i
		}
	}
	return -1
}

func (l *ConversationList) IndexOfPeer(peerID string) int {
	for i := range l.items {
		if l.items[i].PeerID == peerID {
			return i
		}
	}
	return -1
}

func (l *ConversationList) UpsertFront(c domain.Conversation) {
	if i := l.IndexOf(c.ID); i >= 0 {
		l.items[i] = c
		l.MoveToFront(i)
		return
	}
	l.items = append([]domain.Conversation{c}, l.items...)
}

// MoveToFront is order-stable: the element at i lands at index 0 and the
// relative order of every other element is unchanged.
func (l *ConversationList) MoveToFront(i int) {
	if i <= 0 || i >= len(l.items) {
		return
	}
	c := l.items[i]
	copy(l.items[1:i+1], l.items[:i])
	l.items[0] = c
}

func (l *ConversationList) UpdateAt(i int, patch func(c *domain.Conversation)) {
	if i < 0 || i >= len(l.items) {
		return
	}
	patch(&l.items[i])
}

// RemoveWhere drops every conversation matching pred and reports how many went.
func (l *ConversationList) RemoveWhere(pred func(c domain.Conversation) bool) int {
	kept := l.items[:0]
	removed := 0
	for _, c := range l.items {
		if pred(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	l.items = kept
	return removed
}

// Replace swaps the whole list for a fresh server-fetched one.
func (l *ConversationList) Replace(items []domain.Conversation) {
	l.items = make([]domain.Conversation, len(items))
	copy(l.items, items)
}
