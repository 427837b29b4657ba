//go:build unix

package term

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// signalFlags carries the only state shared with the signal watcher. The
// watcher does nothing but set atomics and poke the poller, so it is safe
// regardless of what the main loop is doing.
type signalFlags struct {
	resize    atomic.Bool
	terminate atomic.Bool

	ch       chan os.Signal
	stopOnce sync.Once
}

func newSignalFlags() *signalFlags {
	return &signalFlags{}
}

func (s *signalFlags) install(wake func()) {
	if s.ch != nil {
		return
	}
	s.ch = make(chan os.Signal, 8)
	signal.Notify(s.ch, unix.SIGWINCH, unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT)

	go func() {
		for sig := range s.ch {
			switch sig {
			case unix.SIGWINCH:
				s.resize.Store(true)
			default:
				s.terminate.Store(true)
			}
			if wake != nil {
				wake()
			}
		}
	}()
}

func (s *signalFlags) stop() {
	s.stopOnce.Do(func() {
		if s.ch != nil {
			signal.Stop(s.ch)
			close(s.ch)
		}
	})
}
