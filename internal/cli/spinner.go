package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress line on a terminal until stopped or until its
// context is cancelled. After a second it also shows the elapsed time.
type spinner struct {
	out      io.Writer
	message  string
	interval time.Duration

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	once  sync.Once
	wg    sync.WaitGroup
	mu    sync.Mutex
	width int // visible width of the last frame, for clearing
}

// newSpinner creates a spinner on stderr bound to ctx.
func newSpinner(ctx context.Context, message string) *spinner {
	inner, cancel := context.WithCancel(ctx)
	return &spinner{
		out:      os.Stderr,
		message:  message,
		interval: 80 * time.Millisecond,
		parent:   ctx,
		ctx:      inner,
		cancel:   cancel,
	}
}

// start begins the animation.
func (s *spinner) start() {
	begin := time.Now()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)], time.Since(begin))
			}
		}
	}()
}

func (s *spinner) draw(frame string, elapsed time.Duration) {
	text := s.message
	if elapsed >= time.Second {
		text = fmt.Sprintf("%s %s", s.message, elapsed.Round(100*time.Millisecond))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
	s.width = max(s.width, len([]rune(text))+2)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// stop ends the animation and clears the line. It is safe to call more than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

// fail stops the spinner and prints an error line.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}

// interrupted reports whether the spinner ended because its parent context
// was cancelled, rather than through stop.
func (s *spinner) interrupted() bool {
	return s.parent.Err() != nil
}
