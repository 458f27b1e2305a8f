package assistant

import (
	"context"
	"sync"

	"mycloud-drive/internal/pkg/logger"
)

var testLogger = logger.NewNopLogger()

type listResult struct {
	files []string
	err   error
}

// fakeLister serves queued results in order, repeating the last one. When gate is
// set, each call waits for a value on it first.
type fakeLister struct {
	mu      sync.Mutex
	results []listResult
	calls   int
	gate    chan struct{}
}

func newFakeLister(results ...listResult) *fakeLister {
	return &fakeLister{results: results}
}

func (f *fakeLister) ListFiles(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	gate := f.gate
	var res listResult
	if len(f.results) > 0 {
		if idx >= len(f.results) {
			idx = len(f.results) - 1
		}
		res = f.results[idx]
	}
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return res.files, res.err
}

func (f *fakeLister) set(results ...listResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = results
	f.calls = 0
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeChat struct {
	mu       sync.Mutex
	requests []ChatRequest
	reply    string
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeChat) Chat(ctx context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeChat) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeChat) lastRequest() ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// manualNotifier hands its handlers to the test to invoke synchronously.
type manualNotifier struct {
	mu       sync.Mutex
	handlers map[int]func()
	next     int
}

func newManualNotifier() *manualNotifier {
	return &manualNotifier{handlers: make(map[int]func())}
}

func (n *manualNotifier) Subscribe(handler func()) (func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.handlers[id] = handler
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.handlers, id)
	}, nil
}

func (n *manualNotifier) fire() {
	n.mu.Lock()
	handlers := make([]func(), 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}

func (n *manualNotifier) subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.handlers)
}
