// Package wavwriter records the audio output of the emulation to a WAV file.
// The Writer type implements the audio.Sink interface and is intended to be
// used with driver.SetRecorder().
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 2

	// audio format 1 is uncompressed PCM
	pcmFormat = 1
)

// Writer is an audio.Sink that encodes samples to a WAV file.
type Writer struct {
	filename string
	file     *os.File
	enc      *wav.Encoder

	// buffer is reused for every call to Write()
	buffer *audio.IntBuffer

	frames uint64
}

// New creates the named file and returns a Writer ready to receive samples.
// The file is incomplete until Close() is called.
func New(filename string, sampleRate int) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wavwriter: %w", err)
	}

	return &Writer{
		filename: filename,
		file:     f,
		enc:      wav.NewEncoder(f, sampleRate, bitDepth, numChannels, pcmFormat),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Write implements the audio.Sink interface. A trailing sample that does not
// complete a stereo frame is ignored.
func (w *Writer) Write(samples []int16) (int, error) {
	if w.enc == nil {
		return 0, fmt.Errorf("wavwriter: %s: already closed", w.filename)
	}

	n := len(samples) / numChannels
	if n == 0 {
		return 0, nil
	}

	w.buffer.Data = w.buffer.Data[:0]
	for _, s := range samples[:n*numChannels] {
		w.buffer.Data = append(w.buffer.Data, int(s))
	}

	if err := w.enc.Write(w.buffer); err != nil {
		return 0, fmt.Errorf("wavwriter: %w", err)
	}
	w.frames += uint64(n)

	return n, nil
}

// Frames returns the number of stereo frames written so far.
func (w *Writer) Frames() uint64 {
	return w.frames
}

// Close completes the WAV header and closes the file. It is safe to call Close()
// more than once.
func (w *Writer) Close() error {
	if w.enc == nil {
		return nil
	}

	err := w.enc.Close()
	w.enc = nil
	if err != nil {
		_ = w.file.Close()
		return fmt.Errorf("wavwriter: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	return nil
}

func (w *Writer) String() string {
	return fmt.Sprintf("%s (%d frames)", w.filename, w.frames)
}
