package tui

import "mycloud-drive/internal/assistant"

// catalogChangedMsg is sent whenever either catalog is replaced.
type catalogChangedMsg struct{}

type mountedMsg struct {
	err error
}

type panelOpenedMsg struct{}

type replyMsg struct {
	reply assistant.Message
	err   error
}
