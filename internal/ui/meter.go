package ui

import (
	"strings"

	"github.com/charmbracelet/harmonica"
)

const meterWidth = 12

// levelMeter eases toward the mean level of the latest frame.
type levelMeter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newLevelMeter(fps int) levelMeter {
	return levelMeter{spring: harmonica.NewSpring(harmonica.FPS(fps), 8, 0.7)}
}

func (m *levelMeter) step(target float64) {
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	m.pos = max(0, min(m.pos, 1))
}

func (m *levelMeter) reset() {
	m.pos, m.vel = 0, 0
}

func (m levelMeter) view() string {
	filled := int(m.pos*meterWidth + 0.5)
	return meterStyle.Render(strings.Repeat("▮", filled)) + helpStyle.Render(strings.Repeat("▯", meterWidth-filled))
}
