package emulation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/core"
	"github.com/jetsetilly/nora32/core/testcard"
	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/driver"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/logger"
	"github.com/jetsetilly/nora32/scheduler"
	"github.com/jetsetilly/nora32/wavwriter"
)

// LoadInProgress is returned when a cartridge is requested while an earlier
// request has not been handled.
var LoadInProgress = errors.New("load already in progress")

const testCardName = "test card"

// emulation is the state shared by Launch() and Headless()
type emulation struct {
	env    *Environment
	styles styles
	output io.Writer

	core   *testcard.Core
	driver *driver.Driver
	sched  *scheduler.Scheduler

	// recorder is nil if audio is not being recorded
	recorder *wavwriter.Writer

	// the most recent load request and the most recent successful load
	pending gui.ROM
	current gui.ROM

	// the mode most recently reported to the user
	mode scheduler.Mode
}

func newEmulation(env *Environment, actx audio.Context, r draw.Renderer, output io.Writer) (*emulation, error) {
	e := &emulation{
		env:    env,
		styles: newStyles(),
		output: output,
		core:   testcard.New(),
		mode:   scheduler.MutedTimer,
	}

	if env.sampleRate != testcard.SampleRate {
		logger.Logf(logger.Allow, "emulation", "audio device rate (%dHz) differs from emulation rate (%dHz)",
			env.sampleRate, testcard.SampleRate)
	}

	e.driver = driver.NewDriver(e.core, r)

	if env.wav != "" {
		w, err := wavwriter.New(env.wav, testcard.SampleRate)
		if err != nil {
			return nil, err
		}
		e.recorder = w
		e.driver.SetRecorder(w)
	}

	e.sched = scheduler.New(e.driver, actx, env.Config())

	return e, nil
}

func (e *emulation) print(style lipgloss.Style, s string) {
	fmt.Fprintln(e.output, style.Render(s))
}

func (e *emulation) printErr(err error) {
	e.print(e.styles.err, err.Error())
}

// load sends a cartridge to the scheduler. the file is read if the ROM has no
// data. a ROM with no filename and no data is the built-in test card
func (e *emulation) load(rom gui.ROM) error {
	if rom.Data == nil {
		if rom.Filename == "" {
			rom.Data = testcard.Image()
		} else {
			d, err := os.ReadFile(rom.Filename)
			if err != nil {
				return fmt.Errorf("%w: %w", core.LoadError, err)
			}
			rom.Data = d
		}
	}

	if !e.sched.RequestLoad(rom.Data) {
		return LoadInProgress
	}
	e.pending = rom

	return nil
}

// reload the most recent successful load
func (e *emulation) reload() error {
	return e.load(e.current)
}

func romName(rom gui.ROM) string {
	if rom.Filename == "" {
		return testCardName
	}
	return filepath.Base(rom.Filename)
}

// loaded is called with the result of the most recent load request
func (e *emulation) loaded(err error) error {
	if err != nil {
		err = fmt.Errorf("%s: %w", romName(e.pending), err)
		e.printErr(err)
		return err
	}
	e.current = e.pending
	e.print(e.styles.info, fmt.Sprintf("cartridge loaded from %s", romName(e.current)))
	return nil
}

// input from the GUI. errors are returned so that they can be shown to the
// user
func (e *emulation) input(inp gui.Input) error {
	switch inp.Action {
	case gui.ToggleAudio:
		e.sched.RequestMode(e.sched.Mode().Toggle())
	case gui.LoadROM:
		rom, ok := inp.Data.(gui.ROM)
		if !ok {
			return fmt.Errorf("emulation: unexpected data for %s: %T", inp.Action, inp.Data)
		}
		return e.load(rom)
	case gui.Reset:
		return e.reload()
	}
	return nil
}

// stats are reported to the user when the mode changes
func (e *emulation) stats() scheduler.Stats {
	st := e.sched.Stats()
	if st.Mode != e.mode {
		e.mode = st.Mode
		e.print(e.styles.mode, fmt.Sprintf("audio %s", e.mode))
	}
	return st
}

func (e *emulation) close() error {
	if e.recorder == nil {
		return nil
	}
	err := e.recorder.Close()
	if err != nil {
		return err
	}
	e.print(e.styles.info, fmt.Sprintf("audio recorded to %s", e.recorder))
	return nil
}
