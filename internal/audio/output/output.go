// Package output holds the audio device drivers. Both need cgo, so only the
// interactive commands link this package; headless runs stay cgo-free.
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/chaoslanding/internal/audio"
)

// BufferSize is the portaudio frames-per-buffer.
const BufferSize = 1024

// New resolves a backend by name, opening real devices for speaker and
// portaudio. It is an audio.Resolver.
func New(name string) (audio.Backend, error) {
	switch name {
	case audio.BackendSpeaker, "":
		return &speakerBackend{}, nil
	case audio.BackendPortAudio:
		return &portAudioBackend{}, nil
	default:
		return audio.NewBackend(name)
	}
}

var _ audio.Resolver = New

// speakerBackend plays through gopxl/beep's speaker (oto underneath).
type speakerBackend struct{}

func (speakerBackend) Open(src beep.Streamer, rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(src)
	return nil
}

func (speakerBackend) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// portAudioBackend opens an output-only default stream and pulls the mix
// from the callback.
type portAudioBackend struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	buf    [][2]float64
}

func (p *portAudioBackend) Open(src beep.Streamer, rate beep.SampleRate) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}

	p.buf = make([][2]float64, BufferSize)
	callback := func(out [][]float32) {
		n := len(out[0])
		if n > len(p.buf) {
			p.buf = make([][2]float64, n)
		}
		buf := p.buf[:n]
		filled, _ := src.Stream(buf)
		for i := 0; i < n; i++ {
			var l, r float32
			if i < filled {
				l, r = float32(buf[i][0]), float32(buf[i][1])
			}
			out[0][i] = l
			out[1][i] = r
		}
	}

	// Output only (0 in, 2 out); duplex streams fail on mismatched devices.
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(rate), BufferSize, callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("portaudio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("portaudio start: %w", err)
	}

	p.mu.Lock()
	p.stream = stream
	p.mu.Unlock()
	return nil
}

func (p *portAudioBackend) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return nil
	}
	p.stream.Stop()
	err := p.stream.Close()
	p.stream = nil
	portaudio.Terminate()
	return err
}
