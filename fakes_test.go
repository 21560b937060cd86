package senios

import (
	"errors"
	"image"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

func init() {
	SetLogger(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))
}

// fakeSource opens streams of a fixed number of frames and counts
// decoder handles.
type fakeSource struct {
	frames  int
	width   int
	height  int
	opened  []string
	closed  []string
	openErr error

	// optional behavior for the streams it creates
	decodeErrAt int // 1-based frame index failing with a DecodeError
	rewindErr   error

	streams []*fakeStream
	events  *[]string // shared with a manualClock, see recordEvents
}

func newFakeSource(frames int) *fakeSource {
	return &fakeSource{frames: frames, width: 4, height: 2}
}

func (s *fakeSource) Open(path string) (Stream, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opened = append(s.opened, path)
	stream := &fakeStream{source: s, path: path}
	s.streams = append(s.streams, stream)
	return stream, nil
}

func (s *fakeSource) live() int { return len(s.opened) - len(s.closed) }

type fakeStream struct {
	source  *fakeSource
	path    string
	pos     int // frames already returned
	calls   int // NextFrame calls
	rewinds int
	closed  bool
	lastIdx int // 1-based index of the last frame returned
}

func (s *fakeStream) Size() (int, int) { return s.source.width, s.source.height }

func (s *fakeStream) NextFrame() (*Frame, error) {
	if s.closed {
		panic("NextFrame on closed stream")
	}
	s.calls++
	if s.pos >= s.source.frames {
		return nil, io.EOF
	}
	s.pos++
	if s.pos == s.source.decodeErrAt {
		return nil, &DecodeError{Err: errors.New("corrupt packet")}
	}
	s.lastIdx = s.pos

	w, h := s.source.width, s.source.height
	pix := make([]byte, w*h*3)
	for i := range pix {
		pix[i] = byte(s.pos)
	}
	return &Frame{Width: w, Height: h, Layout: LayoutBGR24, Pix: pix}, nil
}

func (s *fakeStream) Rewind() error {
	s.rewinds++
	if s.source.rewindErr != nil {
		return s.source.rewindErr
	}
	s.pos = 0
	return nil
}

func (s *fakeStream) Close() error {
	if s.closed {
		panic("stream closed twice")
	}
	s.closed = true
	s.source.closed = append(s.source.closed, s.path)
	appendEvent(s.source.events, "close "+s.path)
	return nil
}

// manualClock never ticks on its own; tests send on c.
type manualClock struct {
	c       chan time.Time
	running bool
	starts  int
	stops   int
	events  *[]string
}

func newManualClock() *manualClock {
	return &manualClock{c: make(chan time.Time, 1)}
}

func (c *manualClock) Start() {
	c.running = true
	c.starts++
}

func (c *manualClock) Stop() {
	appendEvent(c.events, "clock.Stop")
	c.running = false
	c.stops++
}

// recordEvents makes the clock and the streams of source log clock stops
// and stream closes, in call order, to the returned slice.
func recordEvents(source *fakeSource, clock *manualClock) *[]string {
	events := &[]string{}
	source.events = events
	clock.events = events
	return events
}

func appendEvent(events *[]string, event string) {
	if events != nil {
		*events = append(*events, event)
	}
}

func (c *manualClock) Running() bool       { return c.running }
func (c *manualClock) C() <-chan time.Time { return c.c }

// recordingSurface keeps every image it is shown.
type recordingSurface struct {
	area  image.Point
	shown []*image.RGBA
}

func (s *recordingSurface) Area() image.Point { return s.area }
func (s *recordingSurface) Show(img *image.RGBA) { s.shown = append(s.shown, img) }
