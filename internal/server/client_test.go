package server

import (
	"bytes"
	"testing"
	"time"
)

func TestRelayFramesForwardsInOrder(t *testing.T) {
	frames := make(chan []byte, 4)
	send := make(chan []byte, 4)

	go relayFrames(frames, send)

	frames <- []byte{1}
	frames <- []byte{2}
	close(frames)

	var got [][]byte
	for frame := range send {
		got = append(got, frame)
	}
	if len(got) != 2 || !bytes.Equal(got[0], []byte{1}) || !bytes.Equal(got[1], []byte{2}) {
		t.Errorf("Expected frames relayed in order, got %v", got)
	}
}

func TestRelayFramesNeverBlocksOnFullBuffer(t *testing.T) {
	frames := make(chan []byte, 8)
	send := make(chan []byte, 1)
	send <- []byte{0xFF} // writer is gone, the buffer stays full

	done := make(chan struct{})
	go func() {
		relayFrames(frames, send)
		close(done)
	}()

	for i := 0; i < 4; i++ {
		frames <- []byte{byte(i)}
	}
	close(frames)

	// The relay must drop the overflow and exit instead of hanging
	// on the abandoned buffer forever
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected relay to exit with no consumer on the send side")
	}

	if frame, ok := <-send; !ok || !bytes.Equal(frame, []byte{0xFF}) {
		t.Errorf("Expected the original buffered frame intact, got %v (open %v)", frame, ok)
	}
	if _, ok := <-send; ok {
		t.Error("Expected send closed after the source closed")
	}
}
