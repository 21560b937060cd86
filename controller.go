package senios

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

// A Controller owns the playback session and is the only component that
// starts or stops the [Clock]. It is not safe for concurrent use: every
// method must be called from the same goroutine that services the clock
// ticks (see [Loop]).
//
// Usage:
//   - Create a [NewController]().
//   - [Controller.Open]() a file; the controller is then [Paused].
//   - [Controller.Toggle]() to start or pause playback.
//   - Call [Controller.Tick]() for every clock tick.
//   - [Controller.Stop]() to release the session.
type Controller struct {
	source    FrameSource
	clock     Clock
	presenter *Presenter
	surface   Surface

	// session, nil while idle
	stream Stream
	path   string
	width  int
	height int

	state         PlaybackState
	onStateChange func(from, to PlaybackState)
	onEndOfStream func(cause error)
}

// Creates an [Idle] controller.
func NewController(source FrameSource, clock Clock, presenter *Presenter, surface Surface) *Controller {
	if source == nil || clock == nil || surface == nil {
		panic("nil frame source, clock or surface")
	}
	if presenter == nil {
		presenter = NewPresenter()
	}
	return &Controller{
		source:    source,
		clock:     clock,
		presenter: presenter,
		surface:   surface,
		state:     Idle,
	}
}

// Registers a function called after every state transition.
func (c *Controller) OnStateChange(fn func(from, to PlaybackState)) {
	c.onStateChange = fn
}

// Registers a function called when playback stops because the stream
// ended. The cause is io.EOF for a natural end, or the decode or
// presentation error that interrupted playback.
func (c *Controller) OnEndOfStream(fn func(cause error)) {
	c.onEndOfStream = fn
}

// Returns the current playback state.
func (c *Controller) State() PlaybackState { return c.state }

// Returns the path of the open video, or "" while [Idle].
func (c *Controller) Path() string { return c.path }

// Returns the dimensions of the open video, or 0, 0 while [Idle].
func (c *Controller) Size() (int, int) { return c.width, c.height }

// Opens a new session for the video at path, releasing the current one
// first. On success the controller is [Paused]; on failure it stays
// [Idle] and an *OpenError is returned.
func (c *Controller) Open(path string) error {
	if prev := c.path; c.state != Idle {
		if err := c.Stop(); err != nil {
			pkgLogger.Warnf("closing '%s' before opening a new video: %v", filepath.Base(prev), err)
		}
	}

	stream, err := c.source.Open(path)
	if err != nil {
		err = &OpenError{Path: path, Err: err}
		pkgLogger.Warnf("%v", err)
		return err
	}

	c.stream = stream
	c.path = path
	c.width, c.height = stream.Size()
	pkgLogger.Debugf("opened '%s' (%dx%d)", filepath.Base(path), c.width, c.height)
	c.setState(Paused)
	return nil
}

// Starts playback while [Paused] and pauses it while [Playing]. It does
// nothing while [Idle].
func (c *Controller) Toggle() {
	switch c.state {
	case Paused:
		c.clock.Start()
		c.setState(Playing)
	case Playing:
		c.clock.Stop()
		c.setState(Paused)
	}
}

// Handles a clock tick: while [Playing], exactly one frame is decoded
// and presented. Ticks in any other state are ignored.
//
// When the stream ends or fails, the clock is stopped, the stream is
// rewound and the controller goes back to [Paused], so the next
// [Controller.Toggle] restarts from the first frame. The returned error
// is only non-nil if the rewind itself fails, in which case the session
// is closed.
func (c *Controller) Tick() error {
	if c.state != Playing {
		return nil
	}

	frame, err := c.stream.NextFrame()
	if err == nil {
		err = c.presenter.Present(frame, c.surface)
		if err == nil {
			return nil
		}
	}
	return c.endOfStream(err)
}

// Stops the clock if running and closes the session. Calling it while
// [Idle] does nothing.
func (c *Controller) Stop() error {
	if c.state == Idle {
		return nil
	}

	// the clock goes first: no tick may reach a closed stream
	c.clock.Stop()
	stream := c.stream
	c.stream = nil
	c.path = ""
	c.width, c.height = 0, 0
	c.setState(Idle)
	return stream.Close()
}

// Leaving the video view ends the session, exactly like [Controller.Stop].
func (c *Controller) NavigateAway() error {
	return c.Stop()
}

func (c *Controller) endOfStream(cause error) error {
	if errors.Is(cause, io.EOF) {
		pkgLogger.Debugf("end of stream reached for '%s'", filepath.Base(c.path))
	} else {
		pkgLogger.Warnf("stopping '%s': %v", filepath.Base(c.path), cause)
	}

	c.clock.Stop()
	if err := c.stream.Rewind(); err != nil {
		path := c.path
		if closeErr := c.Stop(); closeErr != nil {
			pkgLogger.Warnf("closing '%s' after failed rewind: %v", filepath.Base(path), closeErr)
		}
		return fmt.Errorf("rewind '%s': %w", filepath.Base(path), err)
	}
	c.setState(Paused)
	if c.onEndOfStream != nil {
		c.onEndOfStream(cause)
	}
	return nil
}

func (c *Controller) setState(state PlaybackState) {
	if c.state == state {
		return
	}
	from := c.state
	c.state = state
	if c.onStateChange != nil {
		c.onStateChange(from, state)
	}
}
