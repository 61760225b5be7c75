package audio

import (
	"fmt"

	"github.com/gopxl/beep"
)

const (
	BackendSpeaker   = "speaker"
	BackendPortAudio = "portaudio"
	BackendNone      = "none"
)

// Backend pushes a mixed stream to an output device.
type Backend interface {
	Open(src beep.Streamer, rate beep.SampleRate) error
	Close() error
}

// Resolver turns a backend name into a Backend. Device drivers live in
// audio/output so this package builds without cgo.
type Resolver func(name string) (Backend, error)

// ValidBackend reports whether name is an accepted backend name. The empty
// name means speaker.
func ValidBackend(name string) error {
	switch name {
	case BackendSpeaker, BackendPortAudio, BackendNone, "":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// NewBackend resolves the backends that need no device driver. Device
// names return ErrNoDriver; use output.New to open them.
func NewBackend(name string) (Backend, error) {
	if err := ValidBackend(name); err != nil {
		return nil, err
	}
	if name == BackendNone {
		return noneBackend{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoDriver, name)
}

// BackendNames lists the accepted backend names.
func BackendNames() []string {
	return []string{BackendSpeaker, BackendPortAudio, BackendNone}
}

type noneBackend struct{}

func (noneBackend) Open(beep.Streamer, beep.SampleRate) error { return ErrDisabled }
func (noneBackend) Close() error                              { return nil }
