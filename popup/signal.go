package popup

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Signal settles once a Render call finished mounting or failed.
type Signal struct {
	done chan struct{}
	err  error
}

// RenderedMsg is delivered by Signal.Cmd.
type RenderedMsg struct {
	Err error
}

func newSignal() *Signal { return &Signal{done: make(chan struct{})} }

func settledSignal(err error) *Signal {
	s := newSignal()
	s.settle(err)
	return s
}

func (s *Signal) settle(err error) {
	s.err = err
	close(s.done)
}

func (s *Signal) Done() <-chan struct{} { return s.done }

func (s *Signal) Settled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Err is nil until the signal settles.
func (s *Signal) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the signal settles or ctx is done.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cmd waits for the signal on Bubble Tea's command goroutine.
func (s *Signal) Cmd() tea.Cmd {
	return func() tea.Msg {
		<-s.done
		return RenderedMsg{Err: s.err}
	}
}
