package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working")
	s.Start()

	cancel()
	<-s.stopped

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent context cancellation")
	}
}

func TestSpinnerParentTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "working")
	s.Start()
	<-s.stopped

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent context timeout")
	}
}

func TestSpinnerStopMessages(t *testing.T) {
	s := newSpinner("solving")
	s.Start()
	s.StopWithSuccess("done")

	s = newSpinner("solving")
	s.Start()
	s.StopWithError("failed")
}
