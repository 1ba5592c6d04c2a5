package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/climpviz/internal/config"
	"github.com/olivier-w/climpviz/internal/ui"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

const usage = `usage:
  climpviz <audio file | playlist>
  climpviz export [-style name] [-at seconds] [-size WxH] <audio> <out.png|out.svg>
  climpviz styles`

func main() {
	cfg := config.Load()

	closeLog, err := setupLogging(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(os.Args[1:], cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(args []string, cfg config.Config) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return nil
	}

	switch args[0] {
	case "export":
		return runExport(args[1:], cfg)
	case "styles":
		for _, name := range visualizer.Default().List() {
			fmt.Println(name)
		}
		return nil
	}

	tracks, err := buildTrackList(args[0])
	if err != nil {
		return err
	}
	model, err := ui.New(cfg, visualizer.Default(), tracks, ui.OpenPlayer)
	if err != nil {
		return err
	}

	log.Printf("climpviz: %d tracks, style=%s fps=%d fft=%d", tracks.Len(), cfg.Style, cfg.FPS, cfg.FFTSize)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty; the TUI owns the terminal.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "climpviz")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { f.Close() }, nil
}
