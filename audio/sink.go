package audio

// Sink is the destination for audio produced by the emulation. Samples are
// interleaved stereo and the return value is the number of stereo frames
// accepted. The samples slice is only valid for the duration of the call.
//
// The ring.Buffer type is the Sink used when audio is unmuted.
type Sink interface {
	Write(samples []int16) (int, error)
}

type discard struct{}

func (_ discard) Write(samples []int16) (int, error) {
	return len(samples) / 2, nil
}

// Discard is a Sink that accepts and then forgets all samples. It is the sink
// used when audio is muted.
var Discard Sink = discard{}
