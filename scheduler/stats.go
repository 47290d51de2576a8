package scheduler

import "fmt"

// Stats is a snapshot of the Scheduler state.
type Stats struct {
	Mode Mode

	// frames successfully run
	Frames uint64

	// frame requests from the audio consumer acted upon and ignored
	Triggers uint64
	Stale    uint64

	// the following fields are only meaningful in the UnmutedAudio mode
	Generation uint64
	Quanta     uint64
	Underruns  uint64
	Available  int
	Capacity   int
}

// Stats returns a snapshot of the Scheduler. Safe to call from any goroutine.
// The fields are read individually and may not be consistent with one
// another.
func (s *Scheduler) Stats() Stats {
	st := Stats{
		Mode:     s.Mode(),
		Frames:   s.frames.Load(),
		Triggers: s.triggers.Load(),
		Stale:    s.stale.Load(),
	}
	if c := s.publishedConsumer.Load(); c != nil {
		st.Generation = c.Generation()
		st.Quanta = c.Quanta()
		st.Underruns = c.Underruns()
	}
	if r := s.publishedRing.Load(); r != nil {
		st.Available = r.AvailableFrames()
		st.Capacity = r.Capacity()
	}
	return st
}

func (st Stats) String() string {
	if st.Mode == UnmutedAudio {
		return fmt.Sprintf("%s: %d frames, buffer %d/%d, %d underruns", st.Mode, st.Frames, st.Available, st.Capacity, st.Underruns)
	}
	return fmt.Sprintf("%s: %d frames", st.Mode, st.Frames)
}
