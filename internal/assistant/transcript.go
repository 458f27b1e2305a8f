package assistant

import "sync"

// Transcript is the append-only conversation log. Insertion order is chronological order.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
}

// NewTranscript returns a transcript seeded with the assistant greeting.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.seed()
	return t
}

func (t *Transcript) seed() {
	t.messages = append(t.messages, AssistantMessage(GreetingText))
}

func (t *Transcript) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Messages returns a copy of the log in order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Each folds over a snapshot of the log in order.
func (t *Transcript) Each(fn func(Message)) {
	for _, msg := range t.Messages() {
		fn(msg)
	}
}
