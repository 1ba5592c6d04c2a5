package ui

import (
	"fmt"
	"strings"
	"time"
)

func renderProgressBar(elapsed, total float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2

	var ratio float64
	if total > 0 {
		ratio = max(0, min(elapsed/total, 1))
	}
	filled := int(ratio * float64(barWidth))
	return progressDoneStyle.Render(strings.Repeat("━", filled)) + progressTodoStyle.Render(strings.Repeat("─", barWidth-filled))
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

// formatDuration formats d as m:ss, or h:mm:ss past the hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " · climpviz"
	}
	return "▶ " + title + " · climpviz"
}
