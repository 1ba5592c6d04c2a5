package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// audioDecoder is implemented by all format-specific decoders. Reads yield
// signed 16-bit little-endian PCM, interleaved by channel; Length is in
// bytes of that output.
type audioDecoder interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
	ChannelCount() int
}

// Decoder is a file-backed decoder opened without an audio device.
type Decoder interface {
	audioDecoder
	io.Closer
}

type fileDecoder struct {
	audioDecoder
	file *os.File
}

func (d *fileDecoder) Close() error { return d.file.Close() }

// OpenDecoder opens path and returns its decoder converted to the device
// output format (44.1 kHz stereo). The caller must Close it.
func OpenDecoder(path string) (Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileDecoder{audioDecoder: newConverter(dec), file: f}, nil
}

// newDecoder detects format by file extension and returns the appropriate decoder.
func newDecoder(f *os.File) (audioDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	case ".aif", ".aiff":
		return newAIFFDecoder(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// pcmCursor carries the converted bytes a decoder produced beyond what the
// last Read asked for, plus the output position.
type pcmCursor struct {
	buf   []byte
	pos   int64
	total int64
}

func (c *pcmCursor) drain(p []byte) (int, bool) {
	if len(c.buf) == 0 {
		return 0, false
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	c.pos += int64(n)
	return n, true
}

func (c *pcmCursor) emit(p, raw []byte) int {
	n := copy(p, raw)
	if n < len(raw) {
		c.buf = raw[n:]
	}
	c.pos += int64(n)
	return n
}

// target resolves a Seek request to a clamped output byte offset.
func (c *pcmCursor) target(offset int64, whence int) int64 {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = c.pos + offset
	case io.SeekEnd:
		pos = c.total + offset
	}
	return max(0, min(pos, c.total))
}

func (c *pcmCursor) moveTo(pos int64) {
	c.buf = nil
	c.pos = pos
}

func putSample(dst []byte, sample int) {
	sample = max(-32768, min(sample, 32767))
	binary.LittleEndian.PutUint16(dst, uint16(int16(sample)))
}

// --- MP3 ---

// go-mp3 always decodes to 16-bit stereo.
type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Seek(offset int64, whence int) (int64, error) {
	return d.dec.Seek(offset, whence)
}
func (d *mp3Decoder) Length() int64     { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- WAV ---

type wavDecoder struct {
	pcmCursor
	file         *os.File
	pcmStart     int64
	sampleRate   int
	channels     int
	srcBitDepth  int
	srcFrameSize int64
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, bitDepth)
	}
	srcFrameSize := int64(channels) * int64(bitDepth) / 8

	pcmStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("getting PCM start position: %w", err)
	}

	frames := dec.PCMLen() / srcFrameSize
	return &wavDecoder{
		pcmCursor:    pcmCursor{total: frames * int64(channels) * 2},
		file:         f,
		pcmStart:     pcmStart,
		sampleRate:   int(dec.SampleRate),
		channels:     channels,
		srcBitDepth:  bitDepth,
		srcFrameSize: srcFrameSize,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}
	if d.pos >= d.total {
		return 0, io.EOF
	}

	width := d.srcBitDepth / 8
	want := max(len(p)/2, 1)
	src := make([]byte, want*width)
	n, err := io.ReadFull(d.file, src)
	samples := n / width
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, samples*2)
	for i := range samples {
		b := src[i*width:]
		var s int
		switch d.srcBitDepth {
		case 8:
			s = (int(b[0]) - 128) << 8
		case 16:
			s = int(int16(binary.LittleEndian.Uint16(b)))
		case 24:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			s = int(v >> 8)
		case 32:
			s = int(int32(binary.LittleEndian.Uint32(b)) >> 16)
		}
		putSample(raw[i*2:], s)
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return d.emit(p, raw), err
}

func (d *wavDecoder) Seek(offset int64, whence int) (int64, error) {
	pos := d.target(offset, whence)
	frame := pos / (int64(d.channels) * 2)
	if _, err := d.file.Seek(d.pcmStart+frame*d.srcFrameSize, io.SeekStart); err != nil {
		return d.pos, err
	}
	d.moveTo(pos)
	return pos, nil
}

func (d *wavDecoder) Length() int64     { return d.total }
func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// --- FLAC ---

type flacDecoder struct {
	pcmCursor
	stream     *flac.Stream
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		pcmCursor:  pcmCursor{total: int64(info.NSamples) * int64(channels) * 2},
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		bps:        int(info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	nSamples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, nSamples*d.channels*2)
	for i := range nSamples {
		for ch := range d.channels {
			s := int(frame.Subframes[ch].Samples[i])
			if d.bps > 16 {
				s >>= d.bps - 16
			} else if d.bps < 16 {
				s <<= 16 - d.bps
			}
			putSample(raw[(i*d.channels+ch)*2:], s)
		}
	}
	return d.emit(p, raw), nil
}

func (d *flacDecoder) Seek(offset int64, whence int) (int64, error) {
	pos := d.target(offset, whence)
	if _, err := d.stream.Seek(uint64(pos / (int64(d.channels) * 2))); err != nil {
		return d.pos, err
	}
	d.moveTo(pos)
	return pos, nil
}

func (d *flacDecoder) Length() int64     { return d.total }
func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- Ogg Vorbis ---

type oggDecoder struct {
	pcmCursor
	reader     *oggvorbis.Reader
	sampleRate int
	channels   int
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	channels := reader.Channels()
	return &oggDecoder{
		pcmCursor:  pcmCursor{total: reader.Length() * int64(channels) * 2},
		reader:     reader,
		sampleRate: reader.SampleRate(),
		channels:   channels,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	samples := make([]float32, max(len(p)/2, d.channels))
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*2)
	for i, s := range samples[:n] {
		putSample(raw[i*2:], int(s*32767))
	}
	return d.emit(p, raw), err
}

func (d *oggDecoder) Seek(offset int64, whence int) (int64, error) {
	pos := d.target(offset, whence)
	if err := d.reader.SetPosition(pos / (int64(d.channels) * 2)); err != nil {
		return d.pos, err
	}
	d.moveTo(pos)
	return pos, nil
}

func (d *oggDecoder) Length() int64     { return d.total }
func (d *oggDecoder) SampleRate() int   { return d.sampleRate }
func (d *oggDecoder) ChannelCount() int { return d.channels }

// --- AIFF ---

// aiffDecoder holds the whole file as 16-bit PCM; AIFF has no seek support
// in go-audio.
type aiffDecoder struct {
	*bytes.Reader
	sampleRate int
	channels   int
}

func newAIFFDecoder(f *os.File) (*aiffDecoder, error) {
	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid AIFF file")
	}
	dec.ReadInfo()
	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("%w: AIFF layout", ErrUnsupportedFormat)
	}
	shift := int(dec.BitDepth) - 16

	var pcm []byte
	buf := &audio.IntBuffer{Data: make([]int, 4096), Format: format}
	for {
		n, err := dec.PCMBuffer(buf)
		for _, s := range buf.Data[:n] {
			if shift > 0 {
				s >>= shift
			} else if shift < 0 {
				s <<= -shift
			}
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(int16(max(-32768, min(s, 32767)))))
		}
		if n == 0 || err != nil {
			break
		}
	}

	return &aiffDecoder{
		Reader:     bytes.NewReader(pcm),
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}, nil
}

func (d *aiffDecoder) Length() int64     { return d.Size() }
func (d *aiffDecoder) SampleRate() int   { return d.sampleRate }
func (d *aiffDecoder) ChannelCount() int { return d.channels }
