package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// Config is the timing configuration of the Scheduler. All sizes are in
// stereo frames.
type Config struct {
	SampleRate int

	// number of frames rendered by the audio context per callback
	QuantumFrames int

	// the consumer asks for more samples when the number of buffered frames
	// falls below this value
	LowWaterFrames int

	// capacity of the ring buffer
	CapacityFrames int

	// frame rate of the emulation when audio is muted
	TimerHz int
}

// DefaultConfig returns a Config with 44.1kHz audio, a 50ms low-water mark
// and a 200ms ring buffer. The timer runs at 30Hz.
func DefaultConfig() Config {
	return Config{
		SampleRate:     44100,
		QuantumFrames:  128,
		LowWaterFrames: FramesForDuration(44100, 50*time.Millisecond),
		CapacityFrames: FramesForDuration(44100, 200*time.Millisecond),
		TimerHz:        30,
	}
}

// FramesForDuration returns the number of frames at the sample rate in the
// duration.
func FramesForDuration(sampleRate int, d time.Duration) int {
	return int(int64(sampleRate) * int64(d) / int64(time.Second))
}

// InvalidConfig is wrapped by all errors returned by Config.Validate().
var InvalidConfig = errors.New("invalid scheduler configuration")

// Validate checks the Config for values that would prevent the Scheduler from
// working.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", InvalidConfig)
	}
	if c.QuantumFrames <= 0 {
		return fmt.Errorf("%w: quantum must be positive", InvalidConfig)
	}
	if c.TimerHz <= 0 {
		return fmt.Errorf("%w: timer frequency must be positive", InvalidConfig)
	}
	if c.LowWaterFrames <= 0 {
		return fmt.Errorf("%w: low-water mark must be positive", InvalidConfig)
	}
	if c.CapacityFrames <= c.LowWaterFrames {
		return fmt.Errorf("%w: buffer capacity (%d) must be larger than the low-water mark (%d)",
			InvalidConfig, c.CapacityFrames, c.LowWaterFrames)
	}
	return nil
}

// timerPeriod is the interval between frames in the MutedTimer mode
func (c Config) timerPeriod() time.Duration {
	return time.Second / time.Duration(c.TimerHz)
}
