package chat

import (
	"testing"

	"github.com/minglehq/mingle/internal/domain"
)

func TestMessageLog_AppendKeepsArrivalOrder(t *testing.T) {
	ml := NewMessageLog()
	for _, body := range []string{"one", "two", "three"} {
		ml.Append("c1", domain.Message{ConversationID: "c1", Body: body})
	}
	log := ml.Get("c1")
	if len(log) != 3 {
		t.Fatalf("log length = %d, want 3", len(log))
	}
	for i, want := range []string{"one", "two", "three"} {
		if log[i].Body != want {
			t.Errorf("log[%d].Body = %q, want %q", i, log[i].Body, want)
		}
	}
}

func TestMessageLog_ReplaceAll(t *testing.T) {
	ml := NewMessageLog()
	ml.Append("c1", domain.Message{Body: "stale"})
	ml.ReplaceAll("c1", []domain.Message{{Body: "a"}, {Body: "b"}})
	if got := ml.Len("c1"); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	if ml.Get("c1")[0].Body != "a" {
		t.Error("ReplaceAll did not substitute the log")
	}
}

func TestMessageLog_GetIsSnapshot(t *testing.T) {
	ml := NewMessageLog()
	ml.Append("c1", domain.Message{Body: "a"})
	snap := ml.Get("c1")
	ml.Append("c1", domain.Message{Body: "b"})
	if len(snap) != 1 {
		t.Error("appending changed a previously taken snapshot")
	}
}

func TestTypingTracker_LastWriterWins(t *testing.T) {
	tr := NewTypingTracker()
	tr.Set("u1", true)
	tr.Set("u1", false)
	tr.Set("u2", true)
	if tr.Typing("u1") {
		t.Error("u1 should not be typing after the later write")
	}
	if !tr.Typing("u2") {
		t.Error("u2 should be typing")
	}
	tr.Reset()
	if tr.Typing("u2") {
		t.Error("Reset should wipe all typing state")
	}
}
