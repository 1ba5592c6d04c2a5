// Package ui is the Bubbletea front end: it plays the track list, drives
// the frame loop and draws the selected visualization into the terminal.
package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/climpviz/internal/config"
	"github.com/olivier-w/climpviz/internal/frame"
	"github.com/olivier-w/climpviz/internal/player"
	"github.com/olivier-w/climpviz/internal/screen"
	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
	"github.com/olivier-w/climpviz/internal/tracklist"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05

	// lines around the visualization: header, titles, progress, status, help
	chromeRows  = 11
	minVizRows  = 4
	minVizCols  = 16
	sideMargins = 4
)

// Playback is the part of *player.Player the UI drives.
type Playback interface {
	TogglePause()
	Paused() bool
	Seek(delta time.Duration)
	Position() time.Duration
	Duration() time.Duration
	Volume() float64
	AdjustVolume(delta float64)
	Restart()
	Done() <-chan struct{}
	Close()
}

// Opener starts playback of a file.
type Opener func(path string, opts player.Options) (Playback, error)

// OpenPlayer is the Opener backed by the audio device.
func OpenPlayer(path string, opts player.Options) (Playback, error) {
	p, err := player.New(path, opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type loadTrackMsg struct{}

// Model is the Bubbletea model for the climpviz TUI.
type Model struct {
	cfg      config.Config
	open     Opener
	tracks   *tracklist.List
	registry *visualizer.Registry
	tap      *spectrum.Tap
	sampler  *spectrum.Sampler
	ctrl     *frame.Controller
	raster   *surface.Raster
	renderer *screen.Renderer
	meter    levelMeter

	playback   Playback
	metadata   player.Metadata
	elapsed    time.Duration
	duration   time.Duration
	volume     float64
	paused     bool
	repeatMode RepeatMode

	picker     picker
	showPicker bool

	frameView string
	frameSeq  int
	status    string
	width     int
	height    int
	quitting  bool
}

// New creates a Model that will play tracks from their current position.
// The initial style and analysis options come from cfg and are validated
// here.
func New(cfg config.Config, registry *visualizer.Registry, tracks *tracklist.List, open Opener) (Model, error) {
	ctrl, err := frame.New(registry, cfg.Style)
	if err != nil {
		return Model{}, err
	}
	// the device always receives 16-bit stereo
	tap := spectrum.NewTap(max(cfg.FFTSize, 1), 2)
	sampler, err := spectrum.New(tap, cfg.SamplerOptions())
	if err != nil {
		return Model{}, err
	}
	ctrl.Attach(sampler)
	renderer := screen.NewRenderer()
	renderer.SetMode(screen.ParseMode(cfg.Cells))

	return Model{
		cfg:      cfg,
		open:     open,
		tracks:   tracks,
		registry: registry,
		tap:      tap,
		sampler:  sampler,
		ctrl:     ctrl,
		renderer: renderer,
		meter:    newLevelMeter(cfg.FPS),
		volume:   cfg.Volume,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return loadTrackMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showPicker {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeRaster()
		if m.showPicker {
			m.picker = m.picker.setSize(m.width, m.height-2)
		}
		return m, nil

	case loadTrackMsg:
		return m.load()

	case frameTickMsg:
		if msg.seq != m.frameSeq || !m.ctrl.Running() {
			return m, nil
		}
		m.renderFrame()
		m.syncPlayback()
		return m, frameTickCmd(m.frameSeq, m.cfg.FrameInterval())

	case playbackEndedMsg:
		if msg.playback != m.playback {
			return m, nil
		}
		return m.handleTrackEnd()
	}

	if m.showPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		return m.quit()
	}

	switch msg.String() {
	case " ":
		return m.togglePause()
	case "left", "h":
		m.seek(-seekStep)
	case "right", "l":
		m.seek(seekStep)
	case "+", "=", "up", "k":
		m.adjustVolume(volumeStep)
	case "-", "down", "j":
		m.adjustVolume(-volumeStep)
	case "v":
		m.picker = newPicker(m.registry.List(), m.ctrl.Selected(), m.width, m.height-2)
		m.showPicker = true
	case "[":
		log.Printf("ui: style %s", m.ctrl.Cycle(-1))
	case "]":
		log.Printf("ui: style %s", m.ctrl.Cycle(1))
	case "n":
		if m.tracks.Advance() {
			return m.load()
		}
	case "p":
		if m.tracks.Previous() {
			return m.load()
		}
	case "r":
		m.repeatMode = m.repeatMode.Next()
	case "b":
		if m.renderer.Mode() == screen.ModeBraille {
			m.renderer.SetMode(screen.ModeBlocks)
		} else {
			m.renderer.SetMode(screen.ModeBraille)
		}
		m.frameView = ""
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if !m.picker.filtering() {
		switch msg.String() {
		case "esc", "q", "v":
			m.showPicker = false
			return m, nil
		case "enter":
			if name, ok := m.picker.selected(); ok {
				if err := m.ctrl.Select(name); err != nil {
					m.status = err.Error()
				} else {
					log.Printf("ui: style %s", name)
				}
			}
			m.showPicker = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.update(msg)
	return m, cmd
}

// load closes the current playback and starts the list's current track.
func (m Model) load() (Model, tea.Cmd) {
	t := m.tracks.Current()
	if t == nil {
		return m.quit()
	}
	if m.playback != nil {
		m.playback.Close()
		m.playback = nil
	}
	m.tap.Clear()
	m.sampler.Reset()
	m.meter.reset()

	pb, err := m.open(t.Path, player.Options{Volume: m.volume, Tap: m.tap})
	if err != nil {
		log.Printf("ui: open %s: %v", t.Path, err)
		m.status = fmt.Sprintf("cannot play %s: %v", t.Title, err)
		m.ctrl.Stop()
		m.ctrl.Detach()
		m.frameView = ""
		return m, nil
	}

	m.ctrl.Attach(m.sampler)
	m.playback = pb
	m.metadata = player.ReadMetadata(t.Path)
	m.duration = pb.Duration()
	m.elapsed = 0
	m.paused = false
	m.status = ""

	frames := m.startFrames()
	return m, tea.Batch(waitDone(pb), tea.SetWindowTitle(windowTitle(m.metadata.Title, false)), frames)
}

func (m Model) handleTrackEnd() (Model, tea.Cmd) {
	log.Printf("ui: track ended (repeat %s, %d/%d)", m.repeatMode, m.tracks.CurrentIndex()+1, m.tracks.Len())
	switch {
	case m.repeatMode == RepeatOne:
		m.playback.Restart()
		m.tap.Clear()
		m.sampler.Reset()
		m.elapsed = 0
		return m, waitDone(m.playback)
	case m.tracks.Advance():
		return m.load()
	case m.repeatMode == RepeatAll && m.tracks.Len() > 0:
		m.tracks.WrapToStart()
		m.tracks.Advance()
		return m.load()
	}
	m.elapsed = m.duration
	return m.quit()
}

func (m Model) togglePause() (Model, tea.Cmd) {
	if m.playback == nil {
		return m, nil
	}
	m.playback.TogglePause()
	m.paused = m.playback.Paused()
	title := tea.SetWindowTitle(windowTitle(m.metadata.Title, m.paused))
	if m.paused {
		m.ctrl.Stop()
		return m, title
	}
	frames := m.startFrames()
	return m, tea.Batch(title, frames)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Stop()
	if m.playback != nil {
		m.playback.Close()
	}
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

// startFrames begins a new tick chain; older chains die on their next tick.
func (m *Model) startFrames() tea.Cmd {
	m.ctrl.Start()
	m.frameSeq++
	return frameTickCmd(m.frameSeq, m.cfg.FrameInterval())
}

func (m *Model) seek(delta time.Duration) {
	if m.playback == nil {
		return
	}
	m.playback.Seek(delta)
	m.sampler.Reset()
	m.elapsed = m.playback.Position()
}

func (m *Model) adjustVolume(delta float64) {
	if m.playback == nil {
		m.volume = max(0, min(m.volume+delta, 1))
		return
	}
	m.playback.AdjustVolume(delta)
	m.volume = m.playback.Volume()
}

func (m *Model) syncPlayback() {
	if m.playback == nil {
		return
	}
	m.elapsed = m.playback.Position()
	m.volume = m.playback.Volume()
	m.paused = m.playback.Paused()
}

func (m Model) vizSize() (cols, rows int) {
	if m.width <= 0 || m.height <= 0 {
		return 0, 0
	}
	return max(m.width-sideMargins, minVizCols), max(m.height-chromeRows, minVizRows)
}

func (m *Model) resizeRaster() {
	cols, rows := m.vizSize()
	w, h := screen.PixelSize(cols, rows, m.cfg.Scale)
	if w == 0 || h == 0 {
		m.raster = nil
		return
	}
	if m.raster != nil {
		if rw, rh := m.raster.Size(); rw == w && rh == h {
			return
		}
	}
	m.raster = surface.NewRaster(w, h)
	m.frameView = ""
}

// renderFrame draws one frame. On failure the previous frame stays up.
func (m *Model) renderFrame() {
	if m.raster == nil {
		return
	}
	err := m.ctrl.Frame(m.raster, m.raster.Geometry())
	switch {
	case err == nil:
		cols, rows := m.vizSize()
		m.frameView = m.renderer.Render(m.raster.Image(), cols, rows)
		m.meter.step(m.ctrl.Last().Mean())
	case errors.Is(err, frame.ErrRenderFailed):
		log.Printf("ui: %v", err)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showPicker {
		return "\n" + m.picker.view()
	}

	w := m.width
	if w < 30 {
		w = 50
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("climpviz") + "  " + styleNameStyle.Render(m.ctrl.Selected()) + "\n")
	b.WriteString("  " + titleStyle.Render(m.metadata.Title) + "\n")
	b.WriteString("  " + artistStyle.Render(m.subtitle()) + "\n")
	b.WriteString("\n")
	b.WriteString(m.vizView())
	b.WriteString("\n")
	b.WriteString("  " + m.progressLine(w) + "\n")
	b.WriteString("  " + m.statusLine(w) + "\n")
	if m.status != "" {
		b.WriteString("  " + errorStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString("  " + helpStyle.Render(helpText(m.tracks.Len() > 1)) + "\n")
	return b.String()
}

func (m Model) subtitle() string {
	switch {
	case m.metadata.Artist != "" && m.metadata.Album != "":
		return m.metadata.Artist + " - " + m.metadata.Album
	case m.metadata.Artist != "":
		return m.metadata.Artist
	default:
		return m.metadata.Album
	}
}

func (m Model) vizView() string {
	_, rows := m.vizSize()
	lines := strings.Split(m.frameView, "\n")
	if m.frameView == "" {
		lines = nil
	}
	var b strings.Builder
	for i := range rows {
		b.WriteString("  ")
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) progressLine(w int) string {
	elapsed, total := formatDuration(m.elapsed), formatDuration(m.duration)
	barWidth := max(w-len(elapsed)-len(total)-6, 10)
	bar := renderProgressBar(m.elapsed.Seconds(), m.duration.Seconds(), barWidth)
	return fmt.Sprintf("%s %s %s", timeStyle.Render(elapsed), bar, timeStyle.Render(total))
}

func (m Model) statusLine(w int) string {
	icon, text := "▶", "playing"
	if m.paused {
		icon, text = "❚❚", "paused"
	}
	parts := []string{icon + "  " + text}
	if r := m.repeatMode.Icon(); r != "" {
		parts = append(parts, r)
	}
	if n := m.tracks.Len(); n > 1 {
		parts = append(parts, fmt.Sprintf("%d/%d", m.tracks.CurrentIndex()+1, n))
	}
	left := statusStyle.Render(strings.Join(parts, "  ")) + "  " + m.meter.view()
	right := statusStyle.Render(renderVolumePercent(m.volume))
	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right)-4, 2)
	return left + strings.Repeat(" ", gap) + right
}
