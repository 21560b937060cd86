// Package shell contains the pages around the video view: navigation,
// the file browser used as open dialog, the photo viewer and the card
// maker.
package shell

import "github.com/erparts/go-senios"

// View identifies one of the mutually exclusive pages of the shell.
type View uint8

const (
	Home View = iota
	Video
	Photo
	Cards
)

// Returns the view name in English, as a message key.
func (v View) String() string {
	switch v {
	case Home:
		return "Home"
	case Video:
		return "Videos"
	case Photo:
		return "Photos"
	case Cards:
		return "Cards"
	default:
		return "Unknown"
	}
}

// Dispatcher is what the navigator needs from a [senios.Loop].
type Dispatcher interface {
	Dispatch(cmd senios.Command) error
}

// Navigator tracks the current view and runs leave hooks when it
// changes. It starts on [Home].
type Navigator struct {
	current View
	onLeave map[View][]func()
	onShow  func(from, to View)
}

func NewNavigator() *Navigator {
	return &Navigator{current: Home, onLeave: make(map[View][]func())}
}

// Returns the view being displayed.
func (n *Navigator) Current() View { return n.current }

// Registers fn to run whenever view stops being the current one.
func (n *Navigator) OnLeave(view View, fn func()) {
	n.onLeave[view] = append(n.onLeave[view], fn)
}

// Registers a function called after every view change.
func (n *Navigator) OnShow(fn func(from, to View)) { n.onShow = fn }

// Leaving [Video] sends [senios.NavigateAway] through d, so the video
// session never outlives its page. Errors are logged.
func (n *Navigator) BindPlayback(d Dispatcher) {
	n.OnLeave(Video, func() {
		if err := d.Dispatch(senios.NavigateAway{}); err != nil {
			senios.CurrentLogger().Warnf("closing video session: %v", err)
		}
	})
}

// Switches to view. Showing the current view again does nothing.
func (n *Navigator) Show(view View) {
	if view == n.current {
		return
	}
	from := n.current
	for _, fn := range n.onLeave[from] {
		fn()
	}
	n.current = view
	if n.onShow != nil {
		n.onShow(from, view)
	}
}
