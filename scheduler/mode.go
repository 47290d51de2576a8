package scheduler

// Mode selects the source of frame triggers.
type Mode int

// List of valid Mode values.
const (
	// frames are triggered by a fixed rate timer. audio is discarded
	MutedTimer Mode = iota

	// frames are triggered by the audio consumer asking for more samples
	UnmutedAudio
)

func (m Mode) String() string {
	switch m {
	case MutedTimer:
		return "muted"
	case UnmutedAudio:
		return "unmuted"
	}
	return "unknown mode"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == MutedTimer {
		return UnmutedAudio
	}
	return MutedTimer
}
