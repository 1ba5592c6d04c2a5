package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameTickMsg drives one render. Ticks carrying an old seq are dropped, so
// pausing and resuming never leaves two tick chains running.
type frameTickMsg struct {
	seq int
}

type playbackEndedMsg struct {
	playback Playback
}

func frameTickCmd(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameTickMsg{seq: seq}
	})
}

func waitDone(p Playback) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{playback: p}
	}
}
