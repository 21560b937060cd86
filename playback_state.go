package senios

// Playback state of a [Controller]: [Idle], [Paused] or [Playing].
type PlaybackState uint8

// Returns a string representation of the playback state
// ("Idle", "Paused", "Playing", "Unknown").
func (s PlaybackState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

const (
	Idle    PlaybackState = iota // no session open
	Paused                       // session open, clock stopped
	Playing                      // session open, clock running
)
