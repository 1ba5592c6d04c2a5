package player

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type pcmStub struct {
	*bytes.Reader
	rate     int
	channels int
}

func newPCMStub(rate, channels int, samples ...int16) *pcmStub {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	return &pcmStub{Reader: bytes.NewReader(raw), rate: rate, channels: channels}
}

func (d *pcmStub) Length() int64     { return d.Size() }
func (d *pcmStub) SampleRate() int   { return d.rate }
func (d *pcmStub) ChannelCount() int { return d.channels }

type clearingTap struct {
	bytes.Buffer
	clears int
}

func (t *clearingTap) Clear() { t.clears++ }

func frames(t *testing.T, raw []byte) [][2]int16 {
	t.Helper()
	if len(raw)%outputFrameSize != 0 {
		t.Fatalf("expected whole frames, got %d bytes", len(raw))
	}
	out := make([][2]int16, len(raw)/outputFrameSize)
	for i := range out {
		out[i][0] = int16(binary.LittleEndian.Uint16(raw[i*4:]))
		out[i][1] = int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
	}
	return out
}

func TestClampSeekByteOffsetClampsAndAligns(t *testing.T) {
	got := clampSeekByteOffset(3900*time.Millisecond, 10, 10, 4)
	if got != 8 {
		t.Fatalf("expected clamped aligned seek offset 8, got %d", got)
	}

	got = clampSeekByteOffset(-1*time.Second, 10, 100, 4)
	if got != 0 {
		t.Fatalf("expected negative seek to clamp to 0, got %d", got)
	}
}

func TestPauseSetsPausedWithoutToggle(t *testing.T) {
	p := &Player{}
	p.Pause()
	p.Pause()
	if !p.Paused() {
		t.Fatal("expected pause to set paused state")
	}
}

func TestSeekToClampsAlignsAndClearsTap(t *testing.T) {
	dec := newPCMStub(outputRate, outputChannels, make([]int16, 20)...)
	tap := &clearingTap{}
	counter := &countingReader{reader: dec, tap: tap}
	p := &Player{
		decoder:     dec,
		counter:     counter,
		tap:         tap,
		bytesPerSec: 10,
	}

	if err := p.SeekTo(3900*time.Millisecond, false); err != nil {
		t.Fatalf("SeekTo returned error: %v", err)
	}
	if pos, _ := dec.Seek(0, io.SeekCurrent); pos != 36 {
		t.Fatalf("expected decoder seek position 36, got %d", pos)
	}
	if got := counter.Pos(); got != 36 {
		t.Fatalf("expected counter position 36, got %d", got)
	}
	if !p.paused {
		t.Fatal("expected paused state after non-resuming seek")
	}
	if tap.clears != 1 {
		t.Fatalf("expected the tap to be cleared once, got %d", tap.clears)
	}
}

func TestCountingReaderFeedsTap(t *testing.T) {
	var tap bytes.Buffer
	cr := &countingReader{reader: bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}), tap: &tap}

	buf := make([]byte, 4)
	n, _ := cr.Read(buf)
	if n != 4 || cr.Pos() != 4 {
		t.Fatalf("expected 4 bytes counted, got n=%d pos=%d", n, cr.Pos())
	}
	if !bytes.Equal(tap.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("expected tap copy, got %v", tap.Bytes())
	}
}

func TestPlayerCloseRunsCleanupOnce(t *testing.T) {
	calls := 0
	p := &Player{
		stopMon: make(chan struct{}),
		cleanup: func() {
			calls++
		},
	}

	p.Close()
	p.Close()

	if calls != 1 {
		t.Fatalf("expected cleanup to run once, got %d", calls)
	}
}

func TestConverterPassesThroughDeviceFormat(t *testing.T) {
	dec := newPCMStub(outputRate, outputChannels, 1, 2)
	if got := newConverter(dec); got != audioDecoder(dec) {
		t.Fatal("expected matching format to be returned unchanged")
	}
}

func TestConverterUpmixesAndResamples(t *testing.T) {
	dec := newPCMStub(22050, 1, 0, 1000, 2000, 3000)
	conv := newConverter(dec)
	if conv.Length() != 8*outputFrameSize {
		t.Fatalf("expected 8 output frames, got %d bytes", conv.Length())
	}

	raw, err := io.ReadAll(conv)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	want := []int16{0, 500, 1000, 1500, 2000, 2500, 3000, 3000}
	got := frames(t, raw)
	if len(got) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(got))
	}
	for i, f := range got {
		if f[0] != want[i] || f[1] != want[i] {
			t.Fatalf("frame %d: got %v, want %d on both sides", i, f, want[i])
		}
	}
}

func TestConverterSeekLandsOnSourceFrame(t *testing.T) {
	conv := newConverter(newPCMStub(22050, 1, 0, 1000, 2000, 3000))
	if _, err := conv.Seek(2*outputFrameSize, io.SeekStart); err != nil {
		t.Fatalf("Seek returned error: %v", err)
	}
	buf := make([]byte, outputFrameSize)
	if _, err := io.ReadFull(conv, buf); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if f := frames(t, buf)[0]; f[0] != 1000 {
		t.Fatalf("expected 1000 after seek, got %v", f)
	}
}

func TestOpenDecoderReadsWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, 22050, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           []int{0, 1000, 2000, 3000},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("encode close: %v", err)
	}
	f.Close()

	dec, err := OpenDecoder(path)
	if err != nil {
		t.Fatalf("OpenDecoder returned error: %v", err)
	}
	defer dec.Close()

	if dec.SampleRate() != outputRate || dec.ChannelCount() != outputChannels {
		t.Fatalf("expected device format, got %d Hz x%d", dec.SampleRate(), dec.ChannelCount())
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	got := frames(t, raw)
	if len(got) != 8 || got[1][0] != 500 || got[2][1] != 1000 {
		t.Fatalf("unexpected frames %v", got)
	}
}

func TestOpenDecoderRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenDecoder(path); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestReadMetadataFallsBackToFileName(t *testing.T) {
	m := ReadMetadata(filepath.Join("music", "Blue Monday.flac"))
	if m.Title != "Blue Monday" {
		t.Fatalf("expected file name title, got %q", m.Title)
	}
	if m.Display() != "Blue Monday" {
		t.Fatalf("unexpected display %q", m.Display())
	}
	if got := (Metadata{Title: "T", Artist: "A"}).Display(); got != "A - T" {
		t.Fatalf("unexpected display %q", got)
	}
}
