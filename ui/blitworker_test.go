package ui

import (
	"bytes"
	"testing"
)

func TestBlitWorkerCopiesFramebuffer(t *testing.T) {
	sf := NewSharedFramebuffer()
	w := NewBlitWorker(sf)
	defer w.Close()

	pixels := make([]byte, 320*240*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	w.Blit(pixels, 320*4, 240)
	w.Wait()

	got, stride, height := sf.Read()
	if stride != 320*4 || height != 240 {
		t.Fatalf("got %dx%d, want stride %d height 240", stride, height, 320*4)
	}
	if !bytes.Equal(got[:len(pixels)], pixels) {
		t.Error("framebuffer contents differ after blit")
	}
}

func TestBlitWorkerSequentialBlits(t *testing.T) {
	sf := NewSharedFramebuffer()
	w := NewBlitWorker(sf)
	defer w.Close()

	for frame := 0; frame < 100; frame++ {
		pixels := make([]byte, 64*4)
		for i := range pixels {
			pixels[i] = byte(frame)
		}
		w.Blit(pixels, 64*4, 1)
	}
	w.Wait()

	got, _, _ := sf.Read()
	if got[0] != 99 {
		t.Errorf("final frame byte = %d, want 99", got[0])
	}
}

func TestBlitWorkerCloseDrainsPending(t *testing.T) {
	sf := NewSharedFramebuffer()
	w := NewBlitWorker(sf)

	pixels := []byte{1, 2, 3, 4}
	w.Blit(pixels, 4, 1)
	w.Close()

	got, _, _ := sf.Read()
	if got[0] != 1 {
		t.Error("pending blit lost on close")
	}
}
