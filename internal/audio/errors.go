package audio

import "errors"

var (
	// ErrUnknownBackend is returned for backend names other than speaker,
	// portaudio and none.
	ErrUnknownBackend = errors.New("audio: unknown backend")

	// ErrNoDriver is returned when a device backend is requested but the
	// engine was built without a resolver that links one.
	ErrNoDriver = errors.New("audio: no output driver")

	// ErrDisabled is returned by the none backend; the engine stays silent.
	ErrDisabled = errors.New("audio: output disabled")

	// ErrClosed is returned by Init after Close.
	ErrClosed = errors.New("audio: engine closed")
)
