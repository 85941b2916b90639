package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	magic   = "tugsim-replay"
	Version = 1
)

var ErrBadHeader = errors.New("replay: not a tugsim replay")

// Header describes the match a frame log belongs to. Replaying it through a
// Sim built from the same config and catalog reproduces every frame.
type Header struct {
	Magic       string  `msgpack:"magic" json:"magic,omitempty"`
	Version     int     `msgpack:"version" json:"version,omitempty"`
	Seed        uint32  `msgpack:"seed" json:"seed"`
	Left        string  `msgpack:"left" json:"left"`
	Right       string  `msgpack:"right" json:"right"`
	StepMs      int     `msgpack:"step_ms" json:"step_ms"`
	ArenaWidth  float64 `msgpack:"arena_width" json:"arena_width"`
	ArenaHeight float64 `msgpack:"arena_height" json:"arena_height"`
	CoreRadius  float64 `msgpack:"core_radius" json:"core_radius"`
}

// Writer appends msgpack-encoded frames after a header.
type Writer struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	frames int
}

func NewWriter(w io.Writer, h Header) (*Writer, error) {
	h.Magic = magic
	h.Version = Version
	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	if err := enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return &Writer{buf: buf, enc: enc}, nil
}

func (w *Writer) WriteFrame(f *Frame) error {
	if err := w.enc.Encode(f); err != nil {
		return fmt.Errorf("write frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

// Frames reports how many frames were written so far.
func (w *Writer) Frames() int { return w.frames }

// Flush pushes buffered frames to the underlying writer.
func (w *Writer) Flush() error { return w.buf.Flush() }

// Reader decodes a log produced by Writer.
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

func NewReader(r io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.Magic != magic {
		return nil, ErrBadHeader
	}
	if h.Version != Version {
		return nil, fmt.Errorf("replay: unsupported version %d", h.Version)
	}
	return &Reader{dec: dec, header: h}, nil
}

func (r *Reader) Header() Header { return r.header }

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}
	return f, nil
}
