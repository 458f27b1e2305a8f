package assistant

import (
	"context"
	"sync"

	"mycloud-drive/internal/pkg/logger"
)

// FileLister is the backend capability the catalog is refreshed from.
type FileLister interface {
	ListFiles(ctx context.Context) ([]string, error)
}

// CatalogListener observes every completed catalog update. It runs synchronously,
// in registration order, before Refresh returns.
type CatalogListener func(files []string)

// FileCatalog holds the filenames currently available on the backend. It is only
// ever replaced wholesale.
type FileCatalog struct {
	lister FileLister
	logger logger.ILogger

	// applyMu serialises apply+notify so listeners observe updates in apply order.
	applyMu sync.Mutex

	mu        sync.Mutex
	files     []string
	issued    uint64
	applied   uint64
	listeners []CatalogListener
}

func NewFileCatalog(lister FileLister, log logger.ILogger) *FileCatalog {
	return &FileCatalog{
		lister: lister,
		logger: log,
		files:  []string{},
	}
}

// OnChange registers a listener for catalog updates.
func (c *FileCatalog) OnChange(l CatalogListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Files returns a copy of the current catalog in backend order.
func (c *FileCatalog) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.files))
	copy(out, c.files)
	return out
}

func (c *FileCatalog) Contains(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.files {
		if f == name {
			return true
		}
	}
	return false
}

// View runs fn with the current files while no update can be applied, so a
// decision based on membership cannot race a prune.
func (c *FileCatalog) View(fn func(files []string)) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	fn(c.Files())
}

// Refresh fetches the list from the backend and replaces the catalog with it. On
// failure the catalog is reset to empty and the error is returned for logging only;
// there is no retry. A result is dropped if a refresh issued later has already been
// applied.
func (c *FileCatalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	gen := c.issued
	c.mu.Unlock()

	files, err := c.lister.ListFiles(ctx)
	if err != nil {
		c.logger.Warn("FileCatalog", "Refresh failed, clearing catalog", map[string]interface{}{
			"error":      err.Error(),
			"generation": gen,
		})
		files = []string{}
	}
	if files == nil {
		files = []string{}
	}

	if !c.apply(gen, files) {
		c.logger.Debug("FileCatalog", "Dropped stale refresh result", map[string]interface{}{"generation": gen})
	}
	return err
}

func (c *FileCatalog) apply(gen uint64, files []string) bool {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if gen <= c.applied {
		c.mu.Unlock()
		return false
	}
	c.applied = gen
	c.files = append([]string(nil), files...)
	snapshot := append([]string(nil), files...)
	listeners := append([]CatalogListener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return true
}
