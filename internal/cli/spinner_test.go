package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func newTestSpinner(ctx context.Context, message string) (*spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinner(ctx, message)
	s.out = &buf
	s.interval = time.Millisecond
	return s, &buf
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	s, buf := newTestSpinner(context.Background(), "Computing layout...")
	s.start()
	time.Sleep(20 * time.Millisecond)
	s.stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("output %q should contain the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output should end by clearing the line: %q", out)
	}
	if s.interrupted() {
		t.Error("stop should not count as an interruption")
	}
}

func TestSpinnerInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := newTestSpinner(ctx, "Exporting...")
	s.start()
	cancel()
	s.stop()

	if !s.interrupted() {
		t.Error("cancelling the parent context should interrupt the spinner")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := newTestSpinner(context.Background(), "Testing...")
	s.start()
	s.stop()
	s.stop()
	s.fail("Failed")
}

func TestSpinnerElapsed(t *testing.T) {
	s, buf := newTestSpinner(context.Background(), "Slow")
	s.draw("⠋", 1500*time.Millisecond)
	if !strings.Contains(buf.String(), "Slow 1.5s") {
		t.Errorf("draw should append elapsed time: %q", buf.String())
	}
	s.clear()
	if s.width != 0 {
		t.Error("clear should reset the line width")
	}
}
