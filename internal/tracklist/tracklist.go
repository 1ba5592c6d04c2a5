// Package tracklist holds the ordered tracks of a session and which one is
// playing.
package tracklist

// Track is a single playable file.
type Track struct {
	Title string
	Path  string
}

// List manages an ordered list of tracks for playlist playback.
// It is only mutated from Bubbletea's single-threaded Update loop.
type List struct {
	tracks  []Track
	current int
}

// New creates a List positioned at start. Out-of-range starts fall back to
// the first track.
func New(tracks []Track, start int) *List {
	l := &List{tracks: tracks}
	if start < 0 || start >= len(tracks) {
		start = 0
	}
	l.current = start
	return l
}

// Current returns a pointer to the current track, or nil if empty.
func (l *List) Current() *Track {
	if l.current < 0 || l.current >= len(l.tracks) {
		return nil
	}
	return &l.tracks[l.current]
}

// Advance moves the current index forward by one. Returns false if already at end.
func (l *List) Advance() bool {
	if l.current+1 >= len(l.tracks) {
		return false
	}
	l.current++
	return true
}

// Previous moves the current index back by one. Returns false if already at start.
func (l *List) Previous() bool {
	if l.current <= 0 {
		return false
	}
	l.current--
	return true
}

// Select jumps to track i. Returns false if i is out of range.
func (l *List) Select(i int) bool {
	if i < 0 || i >= len(l.tracks) {
		return false
	}
	l.current = i
	return true
}

// WrapToStart positions the list so that Advance moves to track 0.
// Used for repeat-all wrap-around.
func (l *List) WrapToStart() {
	l.current = -1
}

// Len returns the total number of tracks.
func (l *List) Len() int {
	return len(l.tracks)
}

// CurrentIndex returns the zero-based index of the current track.
func (l *List) CurrentIndex() int {
	return l.current
}

// Tracks returns a copy of all tracks in order.
func (l *List) Tracks() []Track {
	out := make([]Track, len(l.tracks))
	copy(out, l.tracks)
	return out
}
