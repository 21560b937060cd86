package senios

import (
	"errors"
	"io"
	"slices"
	"testing"
)

func newTestController(frames int) (*Controller, *fakeSource, *manualClock, *recordingSurface) {
	source := newFakeSource(frames)
	clock := newManualClock()
	surface := &recordingSurface{area: pt(8, 8)}
	return NewController(source, clock, NewPresenter(), surface), source, clock, surface
}

func checkLockstep(t *testing.T, c *Controller, clock *manualClock) {
	t.Helper()
	if clock.Running() != (c.State() == Playing) {
		t.Fatalf("clock running=%v while state is %s", clock.Running(), c.State())
	}
}

// checkClockStoppedBeforeClose verifies that the stream at path was
// closed right after a clock stop.
func checkClockStoppedBeforeClose(t *testing.T, events []string, path string) {
	t.Helper()
	i := slices.Index(events, "close "+path)
	if i < 0 {
		t.Fatalf("expected %s to be closed, got events %v", path, events)
	}
	if i == 0 || events[i-1] != "clock.Stop" {
		t.Errorf("expected clock.Stop before closing %s, got events %v", path, events)
	}
}

func TestStopStopsClockBeforeClosing(t *testing.T) {
	c, source, clock, _ := newTestController(3)
	events := recordEvents(source, clock)
	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	checkClockStoppedBeforeClose(t, *events, "a.mp4")
}

func TestOpenWhilePlayingStopsClockBeforeClosing(t *testing.T) {
	c, source, clock, _ := newTestController(3)
	events := recordEvents(source, clock)
	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()

	if err := c.Open("b.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	checkClockStoppedBeforeClose(t, *events, "a.mp4")
	if slices.Contains(*events, "close b.mp4") {
		t.Errorf("new session must stay open, got events %v", *events)
	}
}

func TestFailedRewindStopsClockBeforeClosing(t *testing.T) {
	c, source, clock, _ := newTestController(0)
	source.rewindErr = errors.New("seek failed")
	events := recordEvents(source, clock)
	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()

	if err := c.Tick(); err == nil {
		t.Fatal("expected rewind error")
	}
	checkClockStoppedBeforeClose(t, *events, "a.mp4")
	if (*events)[0] != "clock.Stop" {
		t.Errorf("expected the clock to stop before the rewind, got events %v", *events)
	}
}

func TestOpenThenStopReleasesDecoder(t *testing.T) {
	c, source, clock, _ := newTestController(3)

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if c.State() != Paused {
		t.Errorf("expected Paused after open, got %s", c.State())
	}
	if w, h := c.Size(); w != 4 || h != 2 {
		t.Errorf("expected size 4x2, got %dx%d", w, h)
	}
	checkLockstep(t, c, clock)

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if c.State() != Idle {
		t.Errorf("expected Idle after stop, got %s", c.State())
	}
	if len(source.closed) != len(source.opened) {
		t.Errorf("expected close count %d, got %d", len(source.opened), len(source.closed))
	}
	if c.Path() != "" {
		t.Errorf("expected empty path, got %q", c.Path())
	}
	checkLockstep(t, c, clock)
}

func TestStopIsIdempotent(t *testing.T) {
	c, source, clock, _ := newTestController(3)
	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()

	for i := 0; i < 2; i++ {
		if err := c.Stop(); err != nil {
			t.Fatalf("Stop #%d failed: %v", i+1, err)
		}
	}
	if len(source.closed) != 1 {
		t.Errorf("expected exactly one close, got %d", len(source.closed))
	}
	checkLockstep(t, c, clock)

	// stopping a controller that never opened anything is fine too
	idle, _, _, _ := newTestController(1)
	if err := idle.Stop(); err != nil {
		t.Errorf("Stop on idle controller failed: %v", err)
	}
}

func TestToggle(t *testing.T) {
	c, _, clock, _ := newTestController(3)

	c.Toggle()
	if c.State() != Idle || clock.starts != 0 {
		t.Fatalf("toggle while idle should do nothing, got state %s and %d clock starts", c.State(), clock.starts)
	}

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()
	if c.State() != Playing {
		t.Errorf("expected Playing, got %s", c.State())
	}
	checkLockstep(t, c, clock)

	c.Toggle()
	if c.State() != Paused {
		t.Errorf("expected Paused, got %s", c.State())
	}
	checkLockstep(t, c, clock)
}

func TestOneFramePerTickWhilePlaying(t *testing.T) {
	c, source, clock, surface := newTestController(100)

	// idle ticks are ignored
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	stream := source.streams[0]

	// paused ticks are ignored
	for i := 0; i < 3; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if stream.calls != 0 {
		t.Fatalf("expected no NextFrame calls while paused, got %d", stream.calls)
	}

	c.Toggle()
	for i := 1; i <= 5; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if stream.calls != i {
			t.Fatalf("expected %d NextFrame calls after %d ticks, got %d", i, i, stream.calls)
		}
	}
	if len(surface.shown) != 5 {
		t.Errorf("expected 5 presented frames, got %d", len(surface.shown))
	}
	checkLockstep(t, c, clock)
}

func TestEndOfStreamRewindsAndPauses(t *testing.T) {
	const n = 3
	c, source, clock, surface := newTestController(n)
	surface.area = pt(4, 2) // frames are shown unscaled

	var causes []error
	c.OnEndOfStream(func(cause error) { causes = append(causes, cause) })

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	stream := source.streams[0]
	c.Toggle()

	for i := 0; i < n; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if c.State() != Playing {
			t.Fatalf("expected Playing after frame %d, got %s", i+1, c.State())
		}
	}

	// the (N+1)th request reports end of stream
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if c.State() != Paused {
		t.Fatalf("expected Paused at end of stream, got %s", c.State())
	}
	if stream.rewinds != 1 {
		t.Errorf("expected one rewind, got %d", stream.rewinds)
	}
	if len(causes) != 1 || !errors.Is(causes[0], io.EOF) {
		t.Errorf("expected a single io.EOF end-of-stream notification, got %v", causes)
	}
	checkLockstep(t, c, clock)

	// restarting plays frame 1 again
	c.Toggle()
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if stream.lastIdx != 1 {
		t.Errorf("expected frame 1 after restart, got frame %d", stream.lastIdx)
	}
	if got := surface.shown[len(surface.shown)-1].Pix[0]; got != 1 {
		t.Errorf("expected presented pixel value 1, got %d", got)
	}
}

func TestDecodeErrorBehavesLikeEndOfStream(t *testing.T) {
	c, source, clock, _ := newTestController(10)
	source.decodeErrAt = 2

	var cause error
	c.OnEndOfStream(func(err error) { cause = err })

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()
	for i := 0; i < 2; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if c.State() != Paused {
		t.Errorf("expected Paused after decode error, got %s", c.State())
	}
	var decodeErr *DecodeError
	if !errors.As(cause, &decodeErr) {
		t.Errorf("expected DecodeError cause, got %v", cause)
	}
	if source.streams[0].rewinds != 1 {
		t.Errorf("expected one rewind, got %d", source.streams[0].rewinds)
	}
	checkLockstep(t, c, clock)
}

func TestFailedRewindClosesSession(t *testing.T) {
	c, source, clock, _ := newTestController(0)
	source.rewindErr = errors.New("seek failed")

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()
	if err := c.Tick(); err == nil {
		t.Fatal("expected rewind error")
	}
	if c.State() != Idle {
		t.Errorf("expected Idle after failed rewind, got %s", c.State())
	}
	if source.live() != 0 {
		t.Errorf("expected no live decoder handles, got %d", source.live())
	}
	checkLockstep(t, c, clock)
}

func TestOpenWhilePlayingReleasesPreviousSession(t *testing.T) {
	c, source, clock, _ := newTestController(10)

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if err := c.Open("b.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(source.closed) != 1 || source.closed[0] != "a.mp4" {
		t.Fatalf("expected a.mp4 closed exactly once, got %v", source.closed)
	}
	if source.live() != 1 {
		t.Errorf("expected one live decoder handle, got %d", source.live())
	}
	if c.State() != Paused || c.Path() != "b.mp4" {
		t.Errorf("expected Paused on b.mp4, got %s on %q", c.State(), c.Path())
	}
	checkLockstep(t, c, clock)

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if len(source.closed) != len(source.opened) {
		t.Errorf("expected close count %d, got %d", len(source.opened), len(source.closed))
	}
}

func TestOpenFailureLeavesIdle(t *testing.T) {
	c, source, clock, _ := newTestController(3)
	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()

	source.openErr = ErrNoVideo
	err := c.Open("broken.mp4")
	var openErr *OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
	if openErr.Path != "broken.mp4" || !errors.Is(err, ErrNoVideo) {
		t.Errorf("unexpected open error: %v", err)
	}
	if c.State() != Idle {
		t.Errorf("expected Idle, got %s", c.State())
	}
	if source.live() != 0 {
		t.Errorf("expected previous session released, got %d live handles", source.live())
	}
	checkLockstep(t, c, clock)

	// the controller stays usable
	source.openErr = nil
	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open after failure failed: %v", err)
	}
}

func TestStateChangeNotifications(t *testing.T) {
	c, _, _, _ := newTestController(1)

	var got []PlaybackState
	c.OnStateChange(func(from, to PlaybackState) { got = append(got, to) })

	if err := c.Open("a.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Toggle()
	_ = c.Tick()
	_ = c.Tick() // end of stream
	_ = c.NavigateAway()

	want := []PlaybackState{Paused, Playing, Paused, Idle}
	if len(got) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPlaybackStateString(t *testing.T) {
	tests := []struct {
		state PlaybackState
		want  string
	}{
		{Idle, "Idle"},
		{Paused, "Paused"},
		{Playing, "Playing"},
		{PlaybackState(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
