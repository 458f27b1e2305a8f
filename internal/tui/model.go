package tui

import (
	"context"
	"strings"

	"mycloud-drive/internal/assistant"
	"mycloud-drive/internal/pkg/logger"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 120
	defaultHeight = 32
	composerLines = 3
	eventBuffer   = 16
)

type focusArea int

const (
	focusComposer focusArea = iota
	focusChips
)

// Model is the Bubbletea model for the drive TUI: a file sidebar and the
// assistant panel.
type Model struct {
	ctx       context.Context
	assistant *assistant.Assistant
	browser   *assistant.FileBrowser
	logger    logger.ILogger

	composer textarea.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	focus      focusArea
	chipCursor int
	status     string
	width      int
	height     int
	quitting   bool

	// Catalog listeners run off the UI goroutine and report through here.
	events chan tea.Msg
}

func New(ctx context.Context, a *assistant.Assistant, browser *assistant.FileBrowser, log logger.ILogger) *Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about your files..."
	ta.ShowLineNumbers = false
	ta.SetHeight(composerLines)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:       ctx,
		assistant: a,
		browser:   browser,
		logger:    log,
		composer:  ta,
		spinner:   sp,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		width:     defaultWidth,
		height:    defaultHeight,
		events:    make(chan tea.Msg, eventBuffer),
	}

	notify := func([]string) {
		select {
		case m.events <- catalogChangedMsg{}:
		default:
		}
	}
	a.Catalog.OnChange(notify)
	browser.Catalog().OnChange(notify)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.mount(), m.waitForEvent())
}

func (m *Model) mount() tea.Cmd {
	return func() tea.Msg {
		if err := m.assistant.Mount(m.ctx); err != nil {
			return mountedMsg{err: err}
		}
		return mountedMsg{err: m.browser.Mount(m.ctx)}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogChangedMsg:
		m.clampChipCursor()
		return m, m.waitForEvent()

	case mountedMsg:
		if msg.err != nil {
			m.status = "Live updates unavailable: " + msg.err.Error()
			m.logger.Warn("TUI", "Mount failed", map[string]interface{}{"error": msg.err.Error()})
		}
		return m, nil

	case panelOpenedMsg:
		m.clampChipCursor()
		return m, nil

	case replyMsg:
		m.composer.Focus()
		m.focus = focusComposer
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.assistant.Unmount()
		m.browser.Unmount()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.browser.ToggleVisible()
		return m, nil

	case key.Matches(msg, m.keys.TogglePanel):
		if m.assistant.Panel.IsOpen() {
			m.assistant.ClosePanel()
			return m, nil
		}
		return m, m.openPanel()
	}

	if !m.assistant.Panel.IsOpen() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ClosePanel):
		m.assistant.ClosePanel()
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		m.assistant.Panel.ToggleExpand()
		return m, nil

	case key.Matches(msg, m.keys.SwitchFocus):
		m.switchFocus()
		return m, nil
	}

	if m.focus == focusChips {
		return m, m.handleChipKey(msg)
	}
	return m, m.handleComposerKey(msg)
}

func (m *Model) openPanel() tea.Cmd {
	return func() tea.Msg {
		m.assistant.OpenPanel(m.ctx)
		return panelOpenedMsg{}
	}
}

func (m *Model) switchFocus() {
	if m.focus == focusComposer {
		m.focus = focusChips
		m.composer.Blur()
		return
	}
	m.focus = focusComposer
	if !m.assistant.Session.Sending() {
		m.composer.Focus()
	}
}

func (m *Model) handleChipKey(msg tea.KeyMsg) tea.Cmd {
	files := m.assistant.Catalog.Files()
	if len(files) == 0 {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.ChipLeft):
		if m.chipCursor > 0 {
			m.chipCursor--
		}
	case key.Matches(msg, m.keys.ChipRight):
		if m.chipCursor < len(files)-1 {
			m.chipCursor++
		}
	case key.Matches(msg, m.keys.ToggleChip):
		m.clampChipCursor()
		m.assistant.ToggleFile(files[m.chipCursor])
	}
	return nil
}

func (m *Model) handleComposerKey(msg tea.KeyMsg) tea.Cmd {
	if m.assistant.Session.Sending() {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.NewLine):
		m.composer.InsertString("\n")
		return nil
	case key.Matches(msg, m.keys.Send):
		return m.submit()
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return cmd
}

// submit clears the composer only when the session accepts the query.
func (m *Model) submit() tea.Cmd {
	query := m.composer.Value()
	if strings.TrimSpace(query) == "" {
		return nil
	}
	m.status = ""
	m.composer.Reset()
	m.composer.Blur()

	return func() tea.Msg {
		reply, err := m.assistant.Submit(m.ctx, query)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *Model) clampChipCursor() {
	n := len(m.assistant.Catalog.Files())
	if m.chipCursor >= n {
		m.chipCursor = n - 1
	}
	if m.chipCursor < 0 {
		m.chipCursor = 0
	}
}
