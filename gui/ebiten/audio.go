package ebiten

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/nora32/audio"
)

// the number of quanta the oto player may read ahead of the audio device
const prefetchQuanta = 4

// Audio implements the audio.Context interface with oto. A new player is
// created by every call to Start() and is closed by Stop().
//
// The oto context is created on the first call to Start() and is never
// closed because oto only allows one context per process.
type Audio struct {
	sampleRate int
	quantum    int

	crit sync.Mutex
	ctx  *oto.Context
	p    *oto.Player
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// quantum size is the number of stereo frames rendered by each call to the
// audio.Source.
func NewAudio(sampleRate int, quantumFrames int) *Audio {
	return &Audio{
		sampleRate: sampleRate,
		quantum:    quantumFrames,
	}
}

func (a *Audio) context() (*oto.Context, error) {
	if a.ctx != nil {
		return a.ctx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   a.sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Second * time.Duration(a.quantum*prefetchQuanta) / time.Duration(a.sampleRate),
	})
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready

	a.ctx = ctx
	return a.ctx, nil
}

// Start implements the audio.Context interface.
func (a *Audio) Start(src audio.Source) error {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.p != nil {
		return audio.AlreadyStarted
	}

	ctx, err := a.context()
	if err != nil {
		return err
	}

	a.p = ctx.NewPlayer(audio.NewReader(src, a.quantum))

	// four bytes for every stereo frame
	a.p.SetBufferSize(a.quantum * prefetchQuanta * 4)
	a.p.Play()

	return nil
}

// Stop implements the audio.Context interface.
func (a *Audio) Stop() error {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.p == nil {
		return audio.NotStarted
	}

	err := a.p.Close()
	a.p = nil
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}

	return nil
}
