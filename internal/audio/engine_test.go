package audio

import (
	"errors"
	"go/build"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

type fakeBackend struct {
	opens, closes int
	openErr       error
	src           beep.Streamer
}

func (f *fakeBackend) Open(src beep.Streamer, rate beep.SampleRate) error {
	f.opens++
	if f.openErr != nil {
		return f.openErr
	}
	f.src = src
	return nil
}

func (f *fakeBackend) Close() error {
	f.closes++
	return nil
}

func TestPlayBeforeInitIsSilent(t *testing.T) {
	fb := &fakeBackend{}
	e := New(DefaultConfig(), WithBackend(fb))

	e.PlayCatch()
	e.PlayMiss()
	e.PlaySuperChaos()
	stop := e.PlayBackground()
	stop()

	if e.Playing() != 0 {
		t.Errorf("expected nothing queued before init, got %d", e.Playing())
	}
	if fb.opens != 0 {
		t.Error("backend should not be opened before init")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	fb := &fakeBackend{}
	e := New(DefaultConfig(), WithBackend(fb))

	for i := 0; i < 3; i++ {
		if err := e.Init(); err != nil {
			t.Fatalf("init %d failed: %v", i, err)
		}
	}
	if fb.opens != 1 {
		t.Errorf("expected one open, got %d", fb.opens)
	}
	if !e.Ready() {
		t.Error("expected engine ready")
	}
}

func TestInitFailureDegradesSilently(t *testing.T) {
	fb := &fakeBackend{openErr: errors.New("no device")}
	e := New(DefaultConfig(), WithBackend(fb))

	if err := e.Init(); err == nil {
		t.Fatal("expected init error")
	}
	if e.Ready() {
		t.Error("engine should not be ready after failed init")
	}
	e.PlayCatch()
	if e.Playing() != 0 {
		t.Error("expected cues to be dropped")
	}
	if err := e.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	if fb.closes != 0 {
		t.Error("unopened backend should not be closed")
	}
}

func TestNoneBackendIsDisabled(t *testing.T) {
	e := New(Config{Backend: BackendNone})
	if err := e.Init(); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if e.Ready() {
		t.Error("none backend must leave the engine silent")
	}
}

func TestUnknownBackend(t *testing.T) {
	if _, err := NewBackend("jukebox"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestValidBackend(t *testing.T) {
	for _, name := range append(BackendNames(), "") {
		if err := ValidBackend(name); err != nil {
			t.Errorf("%q rejected: %v", name, err)
		}
	}
	if err := ValidBackend("jukebox"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestDeviceBackendNeedsResolver(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Init(); !errors.Is(err, ErrNoDriver) {
		t.Errorf("expected ErrNoDriver, got %v", err)
	}
	if e.Ready() {
		t.Error("engine without a driver must stay silent")
	}
}

func TestResolverOpensBackend(t *testing.T) {
	fb := &fakeBackend{}
	var asked string
	e := New(Config{Backend: BackendPortAudio}, WithResolver(func(name string) (Backend, error) {
		asked = name
		return fb, nil
	}))
	if err := e.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if asked != BackendPortAudio || fb.opens != 1 {
		t.Errorf("resolver asked %q, opens %d", asked, fb.opens)
	}
}

func TestPackageStaysCgoFree(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, imp := range pkg.Imports {
		switch imp {
		case "C", "github.com/gopxl/beep/speaker", "github.com/gordonklaus/portaudio":
			t.Errorf("audio imports %s; device drivers belong in audio/output", imp)
		}
	}
}

func TestCuesReachTheMix(t *testing.T) {
	fb := &fakeBackend{}
	e := New(DefaultConfig(), WithBackend(fb))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}

	e.PlayCatch()
	if e.Playing() != 2 {
		t.Errorf("expected two voices for the catch blip, got %d", e.Playing())
	}

	buf := make([][2]float64, 256)
	n, ok := fb.src.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("expected full buffer, got %d %v", n, ok)
	}
	loud := false
	for _, s := range buf {
		if s[0] != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Error("expected audible samples from the mix")
	}
}

func TestStreamPadsSilence(t *testing.T) {
	fb := &fakeBackend{}
	e := New(DefaultConfig(), WithBackend(fb))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}

	buf := make([][2]float64, 64)
	for i := range buf {
		buf[i] = [2]float64{1, 1}
	}
	n, ok := e.Stream(buf)
	if n != 64 || !ok {
		t.Fatalf("expected 64 samples, got %d", n)
	}
	for i, s := range buf {
		if s != [2]float64{} {
			t.Fatalf("expected silence at %d, got %v", i, s)
		}
	}
}

func TestBackgroundLoopStops(t *testing.T) {
	fb := &fakeBackend{}
	e := New(DefaultConfig(), WithBackend(fb), WithNoteInterval(5*time.Millisecond))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}

	stop := e.PlayBackground()
	deadline := time.Now().Add(2 * time.Second)
	for e.Playing() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if e.Playing() < 2 {
		t.Fatalf("expected background notes, got %d", e.Playing())
	}

	stop()
	stop()
	time.Sleep(20 * time.Millisecond)
	count := e.Playing()
	time.Sleep(50 * time.Millisecond)
	if e.Playing() != count {
		t.Errorf("loop kept playing after stop: %d -> %d", count, e.Playing())
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	fb := &fakeBackend{}
	e := New(DefaultConfig(), WithBackend(fb), WithNoteInterval(time.Millisecond))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	e.PlayBackground()
	e.PlayMiss()

	if err := e.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if fb.closes != 1 {
		t.Errorf("expected backend closed once, got %d", fb.closes)
	}
	if e.Ready() || e.Playing() != 0 {
		t.Error("expected silent engine after close")
	}
	if err := e.Init(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestVolumeZeroSilences(t *testing.T) {
	fb := &fakeBackend{}
	e := New(Config{SampleRate: 44100, Volume: 0}, WithBackend(fb))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	e.PlayMiss()
	buf := make([][2]float64, 128)
	e.Stream(buf)
	for i, s := range buf {
		if s != [2]float64{} {
			t.Fatalf("expected silence at %d, got %v", i, s)
		}
	}
}
