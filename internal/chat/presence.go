package chat

// TypingTracker is the ephemeral peer -> "is typing" map. It is rebuilt from
// events only, last writer wins per key, and is wiped at session end.
type TypingTracker struct {
	typers map[string]bool
}

func NewTypingTracker() *TypingTracker {
	return &TypingTracker{typers: make(map[string]bool)}
}

func (t *TypingTracker) Set(peerID string, typing bool) {
	t.typers[peerID] = typing
}

func (t *TypingTracker) Typing(peerID string) bool {
	return t.typers[peerID]
}

// Snapshot returns a copy for renderers.
func (t *TypingTracker) Snapshot() map[string]bool {
	out := make(map[string]bool, len(t.typers))
	for k, v := range t.typers {
		out[k] = v
	}
	return out
}

func (t *TypingTracker) Reset() {
	clear(t.typers)
}
