package media

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PlaylistEntry is one local track named by a playlist.
type PlaylistEntry struct {
	Path  string
	Title string
}

// ParseLocalPlaylist parses a local .m3u/.m3u8/.pls file into local path entries.
// Relative entries are resolved against the playlist file directory. URL
// entries are skipped.
func ParseLocalPlaylist(path string) ([]PlaylistEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsPlaylistExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	absPlaylistPath, err := filepath.Abs(path)
	if err != nil {
		absPlaylistPath = path
	}

	data, err := os.ReadFile(absPlaylistPath)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8")
	}

	baseDir := filepath.Dir(absPlaylistPath)
	text := strings.TrimPrefix(string(data), "\uFEFF")
	scanner := bufio.NewScanner(strings.NewReader(text))

	var raw []string
	if ext == ".pls" {
		raw = parsePLS(scanner)
	} else {
		raw = parseM3U(scanner)
	}

	entries := make([]PlaylistEntry, 0, len(raw))
	for _, r := range raw {
		r = strings.Trim(r, `"`)
		if isURL(r) {
			log.Printf("playlist %s: skipping remote entry %s", path, r)
			continue
		}
		entries = append(entries, PlaylistEntry{Path: resolvePlaylistEntryPath(r, baseDir)})
	}
	return entries, nil
}

// FilterPlayablePlaylistEntries keeps only existing, non-directory, supported
// media files, titling each by its file name. It also reports how many
// entries were dropped.
func FilterPlayablePlaylistEntries(entries []PlaylistEntry) ([]PlaylistEntry, int) {
	out := make([]PlaylistEntry, 0, len(entries))
	for _, e := range entries {
		info, err := os.Stat(e.Path)
		if err != nil || info.IsDir() || !IsSupportedExt(filepath.Ext(e.Path)) {
			continue
		}
		if e.Title == "" {
			base := filepath.Base(e.Path)
			e.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
		out = append(out, e)
	}
	return out, len(entries) - len(out)
}

// SiblingTracks lists the playable files next to path, sorted by name, and
// the index of path among them.
func SiblingTracks(path string) ([]string, int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, 0, err
	}
	dirEntries, err := os.ReadDir(filepath.Dir(abs))
	if err != nil {
		return nil, 0, fmt.Errorf("reading folder: %w", err)
	}

	tracks := make([]string, 0, len(dirEntries))
	index := -1
	for _, de := range dirEntries {
		if de.IsDir() || !IsSupportedExt(filepath.Ext(de.Name())) {
			continue
		}
		p := filepath.Join(filepath.Dir(abs), de.Name())
		if p == abs {
			index = len(tracks)
		}
		tracks = append(tracks, p)
	}
	if index < 0 {
		return nil, 0, fmt.Errorf("%s is not a playable file", path)
	}
	return tracks, index, nil
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func parseM3U(scanner *bufio.Scanner) []string {
	var entries []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

func parsePLS(scanner *bufio.Scanner) []string {
	var entries []string
	for scanner.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if val == "" || !isPLSFileKey(strings.TrimSpace(key)) {
			continue
		}
		entries = append(entries, val)
	}
	return entries
}

// isPLSFileKey matches FileN keys, case-insensitively.
func isPLSFileKey(key string) bool {
	if len(key) <= len("file") || !strings.EqualFold(key[:len("file")], "file") {
		return false
	}
	for _, r := range key[len("file"):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func resolvePlaylistEntryPath(raw, baseDir string) string {
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}
