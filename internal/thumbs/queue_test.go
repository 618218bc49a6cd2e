package thumbs

import (
	"context"
	"testing"
	"time"
)

func TestQueueGeneratesInBackground(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", `echo thumb > "$last"`)
	svc := newTestService(t, ffmpeg, "pdftoppm", 5*time.Second)

	q := NewQueue(svc, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue("a1", "ad.jpg")
	q.Close()

	if got := svc.GetExisting("a1"); got == "" {
		t.Error("expected thumbnail generated after Close drained the queue")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	svc := newTestService(t, "ffmpeg", "pdftoppm", time.Second)

	// Never started, buffer of one: the second enqueue must not block
	q := NewQueue(svc, 1)
	done := make(chan struct{})
	go func() {
		q.Enqueue("a1", "ad.jpg")
		q.Enqueue("a2", "ad.jpg")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestQueueCloseWithoutStart(t *testing.T) {
	svc := newTestService(t, "ffmpeg", "pdftoppm", time.Second)
	q := NewQueue(svc, 1)

	done := make(chan struct{})
	go func() {
		q.Close()
		q.Close() // idempotent
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked without a running worker")
	}
}

func TestQueueStopsOnContextCancel(t *testing.T) {
	svc := newTestService(t, "ffmpeg", "pdftoppm", time.Second)
	q := NewQueue(svc, 1)

	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	cancel()

	select {
	case <-q.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
