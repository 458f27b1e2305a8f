package assistant

import (
	"context"
	"sync"
	"time"

	"mycloud-drive/internal/pkg/logger"
)

// Assistant wires the panel's catalog, selection, transcript and chat session
// together and keeps them in step with backend change notifications.
type Assistant struct {
	Catalog    *FileCatalog
	Selection  *ContextSelection
	Transcript *Transcript
	Session    *ChatSession
	Panel      *PanelController

	notifier ChangeNotifier
	logger   logger.ILogger

	mu          sync.Mutex
	mounted     bool
	unsubscribe func()
}

func New(
	lister FileLister,
	requester ChatRequester,
	notifier ChangeNotifier,
	requestTimeout time.Duration,
	log logger.ILogger,
) *Assistant {
	catalog := NewFileCatalog(lister, log)
	selection := NewContextSelection()
	transcript := NewTranscript()

	catalog.OnChange(selection.Prune)

	return &Assistant{
		Catalog:    catalog,
		Selection:  selection,
		Transcript: transcript,
		Session:    NewChatSession(requester, transcript, selection, catalog, requestTimeout, log),
		Panel:      NewPanelController(),
		notifier:   notifier,
		logger:     log,
	}
}

// Mount registers the single change handler for the assistant's lifetime. While
// the panel is closed notifications are ignored; the next open refreshes anyway.
func (a *Assistant) Mount(ctx context.Context) error {
	a.mu.Lock()
	if a.mounted || a.notifier == nil {
		a.mu.Unlock()
		return nil
	}
	a.mounted = true
	a.mu.Unlock()

	unsubscribe, err := a.notifier.Subscribe(func() {
		if !a.Panel.IsOpen() {
			return
		}
		_ = a.Catalog.Refresh(ctx)
	})
	if err != nil {
		a.mu.Lock()
		a.mounted = false
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	a.unsubscribe = unsubscribe
	a.mu.Unlock()
	a.logger.Debug("Assistant", "Mounted", nil)
	return nil
}

func (a *Assistant) Unmount() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mounted = false
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
		a.logger.Debug("Assistant", "Unmounted", nil)
	}
}

// OpenPanel opens the panel and refreshes the catalog once per closed→open
// transition. It reports whether a transition happened.
func (a *Assistant) OpenPanel(ctx context.Context) bool {
	if !a.Panel.Open() {
		return false
	}
	_ = a.Catalog.Refresh(ctx)
	return true
}

func (a *Assistant) ClosePanel() {
	a.Panel.Close()
}

// ToggleFile flips the selection of a catalog entry. Names outside the current
// catalog are ignored and report false.
func (a *Assistant) ToggleFile(name string) bool {
	selected := false
	a.Catalog.View(func(files []string) {
		for _, f := range files {
			if f == name {
				selected = a.Selection.Toggle(name)
				return
			}
		}
	})
	return selected
}

// SelectedFiles returns the selection in catalog order.
func (a *Assistant) SelectedFiles() []string {
	return a.Selection.Ordered(a.Catalog.Files())
}

func (a *Assistant) Submit(ctx context.Context, query string) (Message, error) {
	return a.Session.Submit(ctx, query)
}
