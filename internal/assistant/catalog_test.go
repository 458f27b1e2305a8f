package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshReplacesCatalogWholesale(t *testing.T) {
	lister := newFakeLister(
		listResult{files: []string{"a.txt", "b.csv"}},
		listResult{files: []string{"c.png"}},
	)
	c := NewFileCatalog(lister, testLogger)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"a.txt", "b.csv"}, c.Files())

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"c.png"}, c.Files())
}

func TestRefreshFailureResetsToEmpty(t *testing.T) {
	boom := errors.New("connection refused")
	lister := newFakeLister(
		listResult{files: []string{"a.txt"}},
		listResult{err: boom},
	)
	c := NewFileCatalog(lister, testLogger)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.Refresh(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.Files())
	assert.NotNil(t, c.Files())
}

func TestRefreshNotifiesListenersInOrder(t *testing.T) {
	c := NewFileCatalog(newFakeLister(listResult{files: []string{"x"}}), testLogger)

	var calls []string
	c.OnChange(func(files []string) { calls = append(calls, "first:"+files[0]) })
	c.OnChange(func(files []string) { calls = append(calls, "second:"+files[0]) })

	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []string{"first:x", "second:x"}, calls)
}

func TestContains(t *testing.T) {
	c := NewFileCatalog(newFakeLister(listResult{files: []string{"a", "b"}}), testLogger)
	require.NoError(t, c.Refresh(context.Background()))

	assert.True(t, c.Contains("b"))
	assert.False(t, c.Contains("z"))
}

// sequencedLister parks call n until results[n] is sent.
type sequencedLister struct {
	mu      sync.Mutex
	calls   int
	results []chan listResult
	entered chan int
}

func newSequencedLister(n int) *sequencedLister {
	l := &sequencedLister{entered: make(chan int, n)}
	for i := 0; i < n; i++ {
		l.results = append(l.results, make(chan listResult, 1))
	}
	return l
}

func (l *sequencedLister) ListFiles(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	idx := l.calls
	l.calls++
	l.mu.Unlock()

	l.entered <- idx
	res := <-l.results[idx]
	return res.files, res.err
}

func TestStaleRefreshResultIsDropped(t *testing.T) {
	lister := newSequencedLister(2)
	c := NewFileCatalog(lister, testLogger)

	var updates [][]string
	c.OnChange(func(files []string) { updates = append(updates, files) })

	firstDone := make(chan struct{})
	go func() {
		_ = c.Refresh(context.Background())
		close(firstDone)
	}()
	require.Equal(t, 0, <-lister.entered)

	secondDone := make(chan struct{})
	go func() {
		_ = c.Refresh(context.Background())
		close(secondDone)
	}()
	require.Equal(t, 1, <-lister.entered)

	// The later refresh lands first; the older one must not overwrite it.
	lister.results[1] <- listResult{files: []string{"fresh.txt"}}
	<-secondDone
	lister.results[0] <- listResult{files: []string{"stale.txt", "deleted.txt"}}
	<-firstDone

	assert.Equal(t, []string{"fresh.txt"}, c.Files())
	assert.Equal(t, [][]string{{"fresh.txt"}}, updates)
}

func TestStaleFailureDoesNotClearFresherCatalog(t *testing.T) {
	lister := newSequencedLister(2)
	c := NewFileCatalog(lister, testLogger)

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.Refresh(context.Background()) }()
	<-lister.entered

	secondDone := make(chan error, 1)
	go func() { secondDone <- c.Refresh(context.Background()) }()
	<-lister.entered

	lister.results[1] <- listResult{files: []string{"a"}}
	require.NoError(t, <-secondDone)
	lister.results[0] <- listResult{err: errors.New("timeout")}
	require.Error(t, <-firstDone)

	assert.Equal(t, []string{"a"}, c.Files())
}
