// Package term owns the editor's terminal plumbing: raw-mode lifecycle,
// signal flags, buffered output, window size queries, and a readiness
// poller for the input descriptor.
//
// # Poller
//
// Poller abstracts "wait until the terminal has input, a timeout passes,
// or a signal arrives" over the platform facilities: epoll on Linux,
// kqueue on the BSDs and macOS, and poll(2) elsewhere. EINTR surfaces as
// Signal so the main loop can re-check the resize/terminate flags and
// continue. A self-pipe lets other goroutines (the signal watcher) wake a
// blocked Wait.
//
// # Terminal
//
// Terminal enters and restores raw mode idempotently, toggles the
// alternate screen and bracketed paste, and accumulates output in a byte
// buffer drained with a single write per Flush so a frame reaches the
// terminal in one syscall.
//
// Signal state is two lock-free flags. The signal watcher only sets
// atomics and pokes the poller; the main loop polls ConsumeResize and
// TerminatePending at the top of each iteration.
//
//	t := term.NewTerminal()
//	if err := t.EnterRawMode(); err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Restore()
//
//	p, err := term.NewPoller(t.InputFd())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//	t.InstallSignalHandlers(p.Wake)
//
//	for !t.TerminatePending() {
//	    res, err := p.Wait(time.Second)
//	    ...
//	}
package term
