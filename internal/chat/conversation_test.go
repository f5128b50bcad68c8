package chat

import (
	"testing"

	"github.com/minglehq/mingle/internal/domain"
)

func listOf(ids ...string) *ConversationList {
	l := NewConversationList()
	items := make([]domain.Conversation, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.Conversation{ID: id, PeerID: "peer-" + id})
	}
	l.Replace(items)
	return l
}

func assertOrder(t *testing.T, l *ConversationList, want ...string) {
	t.Helper()
	got := l.List()
	if len(got) != len(want) {
		t.Fatalf("list length = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("list[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestConversationList_MoveToFront(t *testing.T) {
	tt := []struct {
		name string
		move int
		want []string
	}{
		{name: "from_middle_is_order_stable", move: 2, want: []string{"C", "A", "B", "D"}},
		{name: "from_front_is_noop", move: 0, want: []string{"A", "B", "C", "D"}},
		{name: "from_back", move: 3, want: []string{"D", "A", "B", "C"}},
		{name: "out_of_range_is_noop", move: 7, want: []string{"A", "B", "C", "D"}},
		{name: "negative_is_noop", move: -1, want: []string{"A", "B", "C", "D"}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			l := listOf("A", "B", "C", "D")
			l.MoveToFront(tc.move)
			assertOrder(t, l, tc.want...)
		})
	}
}

func TestConversationList_UpsertFront(t *testing.T) {
	t.Run("new_entry_prepends", func(t *testing.T) {
		l := listOf("A", "B")
		l.UpsertFront(domain.Conversation{ID: "C"})
		assertOrder(t, l, "C", "A", "B")
	})
	t.Run("existing_entry_replaces_and_moves", func(t *testing.T) {
		l := listOf("A", "B", "C")
		l.UpsertFront(domain.Conversation{ID: "B", UnreadCount: 5})
		assertOrder(t, l, "B", "A", "C")
		if got := l.At(0).UnreadCount; got != 5 {
			t.Errorf("upserted UnreadCount = %d, want 5", got)
		}
	})
}

func TestConversationList_UpdateAt(t *testing.T) {
	l := listOf("A", "B")
	l.UpdateAt(1, func(c *domain.Conversation) { c.UnreadCount = 3 })
	if got := l.At(1).UnreadCount; got != 3 {
		t.Errorf("UnreadCount = %d, want 3", got)
	}
	// out of range must not panic
	l.UpdateAt(9, func(c *domain.Conversation) { c.UnreadCount = 1 })
}

func TestConversationList_RemoveWhere(t *testing.T) {
	l := listOf("A", "B", "C")
	removed := l.RemoveWhere(func(c domain.Conversation) bool { return c.ID == "B" })
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	assertOrder(t, l, "A", "C")
}

func TestConversationList_ListIsSnapshot(t *testing.T) {
	l := listOf("A", "B")
	snap := l.List()
	l.UpdateAt(0, func(c *domain.Conversation) { c.UnreadCount = 9 })
	if snap[0].UnreadCount != 0 {
		t.Error("mutating the list changed a previously taken snapshot")
	}
}
