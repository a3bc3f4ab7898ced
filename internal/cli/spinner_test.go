package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards writes from the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out lockedBuffer
	s := startSpinner(context.Background(), &out, "Compiling 2 entries to svg...")
	time.Sleep(3 * spinnerInterval)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Compiling 2 entries to svg...") {
		t.Errorf("spinner output %q missing message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner should clear its line on stop, got %q", got)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }},
		{"deadline", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), spinnerInterval/2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			var out lockedBuffer
			s := startSpinner(ctx, &out, "Fetching methods")
			cancel()

			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner still running after its context ended")
			}
			s.stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out lockedBuffer
	s := startSpinner(context.Background(), &out, "Rendering")
	s.stop()
	s.stop()
	s.fail("Render failed")
}
