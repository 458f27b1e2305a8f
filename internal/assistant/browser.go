package assistant

import (
	"context"
	"sync"

	"mycloud-drive/internal/pkg/logger"
)

// FileBrowser is the sidebar view model. It keeps its own catalog fresh on every
// change notification, independent of the assistant panel.
type FileBrowser struct {
	catalog  *FileCatalog
	notifier ChangeNotifier
	logger   logger.ILogger

	mu          sync.Mutex
	visible     bool
	mounted     bool
	unsubscribe func()
}

func NewFileBrowser(lister FileLister, notifier ChangeNotifier, log logger.ILogger) *FileBrowser {
	return &FileBrowser{
		catalog:  NewFileCatalog(lister, log),
		notifier: notifier,
		logger:   log,
		visible:  true,
	}
}

func (b *FileBrowser) Catalog() *FileCatalog {
	return b.catalog
}

// Mount loads the catalog and subscribes to change notifications.
func (b *FileBrowser) Mount(ctx context.Context) error {
	b.mu.Lock()
	if b.mounted {
		b.mu.Unlock()
		return nil
	}
	b.mounted = true
	b.mu.Unlock()

	_ = b.catalog.Refresh(ctx)

	if b.notifier == nil {
		return nil
	}
	unsubscribe, err := b.notifier.Subscribe(func() {
		_ = b.catalog.Refresh(ctx)
	})
	if err != nil {
		b.mu.Lock()
		b.mounted = false
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()
	return nil
}

func (b *FileBrowser) Unmount() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mounted = false
	b.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (b *FileBrowser) Groups() []FileGroup {
	return GroupFiles(b.catalog.Files(), ClassifyFile)
}

func (b *FileBrowser) ToggleVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = !b.visible
	return b.visible
}

func (b *FileBrowser) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}
