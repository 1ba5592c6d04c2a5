package media

import "testing"

func TestIsSupportedExtIgnoresCase(t *testing.T) {
	for _, ext := range []string{".mp3", ".WAV", ".Flac", ".ogg", ".aiff", ".AIF"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".aac", ".m4a", ".txt", ""} {
		if IsSupportedExt(ext) {
			t.Fatalf("expected %s to be rejected", ext)
		}
	}
}

func TestSupportedExtsListIsSorted(t *testing.T) {
	if got := SupportedExtsList(); got != ".aif, .aiff, .flac, .mp3, .ogg, .wav" {
		t.Fatalf("unexpected list %q", got)
	}
}

func TestIsPlaylistExt(t *testing.T) {
	if !IsPlaylistExt(".M3U8") || !IsPlaylistExt(".pls") {
		t.Fatal("expected playlist extensions to be recognised")
	}
	if IsPlaylistExt(".mp3") {
		t.Fatal("expected .mp3 not to be a playlist")
	}
}
