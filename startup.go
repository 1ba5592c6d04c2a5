package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/climpviz/internal/media"
	"github.com/olivier-w/climpviz/internal/tracklist"
)

// buildTrackList turns the command-line argument into the session's tracks:
// a playlist's playable entries, or a file together with its siblings.
func buildTrackList(arg string) (*tracklist.List, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", arg)
	}

	ext := strings.ToLower(filepath.Ext(arg))
	if media.IsPlaylistExt(ext) {
		return playlistTracks(arg)
	}
	if !media.IsSupportedExt(ext) {
		return nil, fmt.Errorf("unsupported format %s (supported: %s)", ext, media.SupportedExtsList())
	}

	paths, start, err := media.SiblingTracks(arg)
	if err != nil {
		return nil, err
	}
	tracks := make([]tracklist.Track, len(paths))
	for i, p := range paths {
		tracks[i] = tracklist.Track{Title: titleOf(p), Path: p}
	}
	return tracklist.New(tracks, start), nil
}

func playlistTracks(path string) (*tracklist.List, error) {
	entries, err := media.ParseLocalPlaylist(path)
	if err != nil {
		return nil, err
	}
	playable, skipped := media.FilterPlayablePlaylistEntries(entries)
	if len(playable) == 0 {
		return nil, fmt.Errorf("playlist contains no playable entries")
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d unplayable playlist entries\n", skipped)
	}
	tracks := make([]tracklist.Track, len(playable))
	for i, e := range playable {
		tracks[i] = tracklist.Track{Title: e.Title, Path: e.Path}
	}
	return tracklist.New(tracks, 0), nil
}

func titleOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
