package senios

import (
	"context"
	"errors"
)

// A Command is a user input for the video view. The available commands
// are [OpenFile], [TogglePlayPause] and [NavigateAway].
type Command interface {
	apply(l *Loop) error
}

// Opens the given file, replacing the current session.
type OpenFile struct{ Path string }

// Starts or pauses playback.
type TogglePlayPause struct{}

// Closes the session because the user left the video view.
type NavigateAway struct{}

func (cmd OpenFile) apply(l *Loop) error {
	if err := l.controller.Open(cmd.Path); err != nil {
		return err
	}
	if l.autoplay {
		l.controller.Toggle()
	}
	return nil
}

func (TogglePlayPause) apply(l *Loop) error {
	l.controller.Toggle()
	return nil
}

func (NavigateAway) apply(l *Loop) error {
	return l.controller.NavigateAway()
}

// Loop dispatches user commands and clock ticks to a [Controller] from a
// single goroutine. Either call [Loop.Step] periodically from the
// goroutine that owns the UI (e.g. an ebiten Update), or have a
// dedicated goroutine block in [Loop.Run].
type Loop struct {
	controller *Controller
	clock      Clock
	commands   chan Command
	autoplay   bool
	onError    func(error)
}

// Creates a loop for the given controller and the clock the controller
// was created with. Opening a file starts playback right away unless
// disabled with [Loop.SetAutoplay].
func NewLoop(controller *Controller, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Loop{
		controller: controller,
		clock:      controller.clock,
		commands:   make(chan Command, queueSize),
		autoplay:   true,
	}
}

// Sets whether [OpenFile] also starts playback.
func (l *Loop) SetAutoplay(autoplay bool) { l.autoplay = autoplay }

// Registers a function receiving the errors of commands and ticks
// processed by [Loop.Step] and [Loop.Run]. Errors are logged either way.
func (l *Loop) OnError(fn func(error)) { l.onError = fn }

// Returns the controller driven by the loop.
func (l *Loop) Controller() *Controller { return l.controller }

// Applies cmd right away on the calling goroutine.
func (l *Loop) Dispatch(cmd Command) error {
	return cmd.apply(l)
}

// Queues cmd for the loop goroutine. Returns false if the queue is full.
// Safe for concurrent use.
func (l *Loop) Post(cmd Command) bool {
	select {
	case l.commands <- cmd:
		return true
	default:
		return false
	}
}

// Applies all queued commands and then services at most one pending
// clock tick. It never blocks.
func (l *Loop) Step() {
	for drained := false; !drained; {
		select {
		case cmd := <-l.commands:
			l.report(cmd.apply(l))
		default:
			drained = true
		}
	}

	select {
	case <-l.clock.C():
		l.report(l.controller.Tick())
	default:
	}
}

// Services commands and ticks until ctx is done, then stops the
// controller.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if err := l.controller.Stop(); err != nil {
				pkgLogger.Warnf("stopping playback: %v", err)
			}
			return ctx.Err()
		case cmd := <-l.commands:
			l.report(cmd.apply(l))
		case <-l.clock.C():
			l.report(l.controller.Tick())
		}
	}
}

func (l *Loop) report(err error) {
	if err == nil {
		return
	}
	var openErr *OpenError
	if !errors.As(err, &openErr) { // already logged by the controller
		pkgLogger.Errorf("%v", err)
	}
	if l.onError != nil {
		l.onError(err)
	}
}
