// Package cli provides a command-line runner for the emulator.
// It replays the trace in a window without the full UI.
package cli

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	emubridge "github.com/colcross/tguiemu/bridge/ebiten"
	"github.com/colcross/tguiemu/ui"
)

// ADT buffer thresholds in bytes.
const (
	adtMinBuffer = 9600
	adtMaxBuffer = 19200
)

// Runner wraps an emulator for command-line mode.
// The emulator runs on a dedicated goroutine with audio-driven timing.
// Frames are handed to a blit worker which copies them into the shared
// framebuffer; the Ebiten thread renders from that copy.
type Runner struct {
	emulator    *emubridge.Emulator
	audioPlayer *ui.AudioPlayer

	// ADT goroutine control
	emuControl        *ui.EmuControl
	sharedFramebuffer *ui.SharedFramebuffer
	blitWorker        *ui.BlitWorker
	emuDone           chan struct{}
}

// NewRunner creates a new Runner wrapping the given emulator.
// Audio initialization failure is non-fatal; the runner will work without sound.
func NewRunner(e *emubridge.Emulator) *Runner {
	player, err := ui.NewAudioPlayer(1.0)
	if err != nil {
		log.Printf("Warning: audio initialization failed: %v", err)
	}

	sfb := ui.NewSharedFramebuffer()
	r := &Runner{
		emulator:          e,
		audioPlayer:       player,
		emuControl:        ui.NewEmuControl(),
		sharedFramebuffer: sfb,
		blitWorker:        ui.NewBlitWorker(sfb),
		emuDone:           make(chan struct{}),
	}

	// Start emulation goroutine
	go r.emulationLoop()

	return r
}

// Close cleans up the runner's resources.
func (r *Runner) Close() {
	// Stop emulation goroutine
	if r.emuControl != nil {
		r.emuControl.Stop()
		<-r.emuDone
	}

	if r.blitWorker != nil {
		r.blitWorker.Close()
		r.blitWorker = nil
	}

	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
}

// emulationLoop runs on a dedicated goroutine with ADT.
func (r *Runner) emulationLoop() {
	defer close(r.emuDone)

	timing := r.emulator.GetTiming()
	frameTime := time.Duration(float64(time.Second) / float64(timing.FPS))
	lastFrameTime := time.Now()

	for {
		if !r.emuControl.CheckPause() {
			return
		}

		// The previous frame's copy must finish before the
		// framebuffer is overwritten.
		r.blitWorker.Wait()

		// Run one frame
		r.emulator.RunFrame()

		// Queue audio
		if r.audioPlayer != nil {
			r.audioPlayer.QueueSamples(r.emulator.GetAudioSamples())
		}

		// Hand the frame to the blit worker
		r.blitWorker.Blit(
			r.emulator.GetFramebuffer(),
			r.emulator.GetFramebufferStride(),
			r.emulator.GetActiveHeight(),
		)

		// ADT sleep
		elapsed := time.Since(lastFrameTime)
		sleepTime := frameTime - elapsed

		if r.audioPlayer != nil {
			bufferLevel := r.audioPlayer.GetBufferLevel()
			if bufferLevel < adtMinBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if bufferLevel > adtMaxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}

		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		}

		lastFrameTime = time.Now()
	}
}

// Update implements ebiten.Game. Space toggles playback pause.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if r.emuControl.IsPaused() {
			r.emuControl.RequestResume()
		} else {
			r.emuControl.RequestPause()
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	pixels, stride, height := r.sharedFramebuffer.Read()
	if height == 0 {
		return
	}
	r.emulator.DrawCachedFramebuffer(screen, pixels, stride, height)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.emulator.Layout(outsideWidth, outsideHeight)
}
