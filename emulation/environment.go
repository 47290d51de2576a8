package emulation

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/nora32/scheduler"
)

const programName = "nora32"

// Environment is the configuration of an emulation session as specified on
// the command line.
type Environment struct {
	sampleRate int
	quantum    int
	lowWater   int
	buffer     int
	timer      int

	unmute    bool
	headless  bool
	frames    int
	wav       string
	statsview bool
	log       bool
	profile   bool

	// cartridge file to load. an empty string means the built-in test card
	rom string
}

// ParseArgs creates a new Environment from the command line arguments. The
// output argument receives usage information if the arguments cannot be
// parsed.
func ParseArgs(args []string, output io.Writer) (*Environment, error) {
	def := scheduler.DefaultConfig()

	env := &Environment{}

	flgs := flag.NewFlagSet(programName, flag.ContinueOnError)
	flgs.SetOutput(output)
	flgs.IntVar(&env.sampleRate, "rate", def.SampleRate, "audio sample rate in Hz")
	flgs.IntVar(&env.quantum, "quantum", def.QuantumFrames, "frames rendered by each audio callback")
	flgs.IntVar(&env.lowWater, "lowwater", 50, "audio low-water mark in milliseconds")
	flgs.IntVar(&env.buffer, "buffer", 200, "audio buffer capacity in milliseconds")
	flgs.IntVar(&env.timer, "timer", def.TimerHz, "frame rate in Hz when audio is muted")
	flgs.BoolVar(&env.unmute, "unmute", false, "start with audio unmuted")
	flgs.BoolVar(&env.headless, "headless", false, "run without a window")
	flgs.IntVar(&env.frames, "frames", 300, "number of frames to run in headless mode")
	flgs.StringVar(&env.wav, "wav", "", "record audio to WAV file")
	flgs.BoolVar(&env.statsview, "statsview", false, "run the runtime statistics server")
	flgs.BoolVar(&env.log, "log", false, "echo log to the terminal")
	flgs.BoolVar(&env.profile, "profile", false, "create CPU profile for emulator")

	err := flgs.Parse(args)
	if err != nil {
		return nil, err
	}
	args = flgs.Args()

	if len(args) == 1 {
		env.rom = args[0]
	} else if len(args) > 1 {
		return nil, fmt.Errorf("too many arguments")
	}

	if env.frames < 0 {
		return nil, fmt.Errorf("number of frames cannot be negative")
	}

	err = env.Config().Validate()
	if err != nil {
		return nil, err
	}

	return env, nil
}

// Config returns the scheduler configuration.
func (env *Environment) Config() scheduler.Config {
	return scheduler.Config{
		SampleRate:     env.sampleRate,
		QuantumFrames:  env.quantum,
		LowWaterFrames: scheduler.FramesForDuration(env.sampleRate, time.Duration(env.lowWater)*time.Millisecond),
		CapacityFrames: scheduler.FramesForDuration(env.sampleRate, time.Duration(env.buffer)*time.Millisecond),
		TimerHz:        env.timer,
	}
}

// SampleRate returns the sample rate of the audio device.
func (env *Environment) SampleRate() int {
	return env.sampleRate
}

// QuantumFrames returns the size of an audio quantum in stereo frames.
func (env *Environment) QuantumFrames() int {
	return env.quantum
}

// Headless returns true if the emulation should run without a window.
func (env *Environment) Headless() bool {
	return env.headless
}

// ROM returns the filename of the cartridge. An empty string indicates the
// built-in test card.
func (env *Environment) ROM() string {
	return env.rom
}

func (env *Environment) initialMode() scheduler.Mode {
	if env.unmute {
		return scheduler.UnmutedAudio
	}
	return scheduler.MutedTimer
}
