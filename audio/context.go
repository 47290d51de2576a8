package audio

// Source renders exactly one quantum of interleaved stereo samples into the
// supplied slice. The Consumer type is the only implementation used outside
// of tests.
type Source interface {
	Render(quantum []int16)
}

// Context is a real-time audio context. Once started it calls Render() on
// the Source at the rate required by the audio device, on a goroutine of its
// own choosing.
//
// After Stop() returns the context may still be part way through one final
// Render() call but will make no new calls to the Source.
type Context interface {
	Start(src Source) error
	Stop() error
}
