package emulation

import (
	"io"
	"testing"

	"github.com/jetsetilly/nora32/scheduler"
	"github.com/jetsetilly/nora32/test"
)

func TestDefaultEnvironment(t *testing.T) {
	env, err := ParseArgs([]string{}, io.Discard)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, env.Config(), scheduler.DefaultConfig())
	test.ExpectEquality(t, env.ROM(), "")
	test.ExpectFailure(t, env.Headless())
	test.ExpectEquality(t, env.initialMode(), scheduler.MutedTimer)
	test.ExpectEquality(t, env.SampleRate(), 44100)
	test.ExpectEquality(t, env.QuantumFrames(), 128)
}

func TestEnvironmentFlags(t *testing.T) {
	env, err := ParseArgs([]string{"-unmute", "-headless", "-frames", "10", "-lowwater", "100", "-buffer", "400", "-timer", "60", "game.nr32"}, io.Discard)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, env.ROM(), "game.nr32")
	test.ExpectSuccess(t, env.Headless())
	test.ExpectEquality(t, env.initialMode(), scheduler.UnmutedAudio)
	test.ExpectEquality(t, env.frames, 10)

	cfg := env.Config()
	test.ExpectEquality(t, cfg.LowWaterFrames, 4410)
	test.ExpectEquality(t, cfg.CapacityFrames, 17640)
	test.ExpectEquality(t, cfg.TimerHz, 60)
}

func TestEnvironmentErrors(t *testing.T) {
	_, err := ParseArgs([]string{"a.nr32", "b.nr32"}, io.Discard)
	test.ExpectFailure(t, err)

	_, err = ParseArgs([]string{"-nosuchflag"}, io.Discard)
	test.ExpectFailure(t, err)

	// capacity smaller than the low-water mark
	_, err = ParseArgs([]string{"-lowwater", "300", "-buffer", "100"}, io.Discard)
	test.ExpectFailure(t, err)

	_, err = ParseArgs([]string{"-timer", "0"}, io.Discard)
	test.ExpectFailure(t, err)

	_, err = ParseArgs([]string{"-frames", "-1"}, io.Discard)
	test.ExpectFailure(t, err)
}
