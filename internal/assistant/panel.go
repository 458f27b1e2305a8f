package assistant

import "sync"

// PanelController owns presentation state of the assistant panel. It has no effect
// on the transcript or the selection.
type PanelController struct {
	mu       sync.Mutex
	open     bool
	expanded bool
}

func NewPanelController() *PanelController {
	return &PanelController{}
}

// Open reports true only when the panel moves from closed to open.
func (p *PanelController) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return false
	}
	p.open = true
	return true
}

func (p *PanelController) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
}

func (p *PanelController) ToggleExpand() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expanded = !p.expanded
	return p.expanded
}

func (p *PanelController) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *PanelController) IsExpanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded
}
