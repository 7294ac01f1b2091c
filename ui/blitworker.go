package ui

import "sync"

// blitJob describes one frame handed to the blit worker. The pixel
// slice is owned by the emulation goroutine, which must not start the
// next frame until the copy completes.
type blitJob struct {
	pixels []byte
	stride int
	height int
}

// BlitWorker copies completed frames into a SharedFramebuffer on its
// own goroutine so the emulation loop can overlap frame setup with the
// copy. Blit hands a frame over; Wait blocks until the copy in flight
// finishes.
type BlitWorker struct {
	target *SharedFramebuffer

	mu   sync.Mutex
	cond *sync.Cond
	busy bool

	jobs chan blitJob
	done chan struct{}
}

// NewBlitWorker starts a worker copying into target.
func NewBlitWorker(target *SharedFramebuffer) *BlitWorker {
	w := &BlitWorker{
		target: target,
		jobs:   make(chan blitJob),
		done:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

func (w *BlitWorker) run() {
	defer close(w.done)
	for job := range w.jobs {
		w.target.Update(job.pixels, job.stride, job.height)

		w.mu.Lock()
		w.busy = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

// Blit queues a frame copy. If a copy is still in flight it blocks
// until that one completes first; pixels must stay untouched until the
// next Wait or Blit returns.
func (w *BlitWorker) Blit(pixels []byte, stride, height int) {
	w.mu.Lock()
	for w.busy {
		w.cond.Wait()
	}
	w.busy = true
	w.mu.Unlock()

	w.jobs <- blitJob{pixels: pixels, stride: stride, height: height}
}

// Wait blocks until no copy is in flight.
func (w *BlitWorker) Wait() {
	w.mu.Lock()
	for w.busy {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

// Close drains the worker and stops its goroutine.
func (w *BlitWorker) Close() {
	w.Wait()
	close(w.jobs)
	<-w.done
}
