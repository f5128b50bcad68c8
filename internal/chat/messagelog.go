package chat

import "github.com/minglehq/mingle/internal/domain"

// MessageLog holds the per-conversation message history, append-only within
// a conversation. A log may exist for a conversation id that has no list
// entry yet; the list catches up on the next read-side refresh.
type MessageLog struct {
	logs map[string][]domain.Message
}

func NewMessageLog() *MessageLog {
	return &MessageLog{logs: make(map[string][]domain.Message)}
}

// Get returns a snapshot copy of the conversation's log, oldest first.
func (ml *MessageLog) Get(conversationID string) []domain.Message {
	log := ml.logs[conversationID]
	out := make([]domain.Message, len(log))
	copy(out, log)
	return out
}

func (ml *MessageLog) Len(conversationID string) int {
	return len(ml.logs[conversationID])
}

// Append adds a message to the conversation's log. It does not deduplicate
// by message id; callers own the no-double-append policy.
func (ml *MessageLog) Append(conversationID string, m domain.Message) {
	ml.logs[conversationID] = append(ml.logs[conversationID], m)
}

// ReplaceAll swaps the conversation's whole log, used for initial hydration
// and for the provisional-to-real substitution.
func (ml *MessageLog) ReplaceAll(conversationID string, msgs []domain.Message) {
	log := make([]domain.Message, len(msgs))
	copy(log, msgs)
	ml.logs[conversationID] = log
}
