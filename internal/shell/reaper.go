package shell

import (
	"syscall"

	"golang.org/x/sys/unix"

	"jobsh/internal/job"
)

// eventKind classifies one child state change.
type eventKind int

const (
	childExited eventKind = iota
	childSignaled
	childStopped
	childContinued
)

type childEvent struct {
	pid  int
	kind eventKind
	sig  int
}

// handleSignals is the asynchronous side of the shell. SIGCHLD drives the
// reaper; SIGINT and SIGTSTP from the terminal are forwarded to the
// foreground job's process group, as the shell itself must not die or stop.
func (s *Shell) handleSignals() {
	for sig := range s.sigs {
		switch sig {
		case syscall.SIGCHLD:
			s.reap()
		case syscall.SIGINT:
			s.forwardToForeground(unix.SIGINT)
		case syscall.SIGTSTP:
			s.forwardToForeground(unix.SIGTSTP)
		}
	}
}

// reap drains every pending child state change. The kernel coalesces
// SIGCHLD, so one wakeup may stand for several children; polling until
// Wait4 has nothing left is what keeps the table complete.
func (s *Shell) reap() {
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil || pid <= 0 {
			return
		}
		s.apply(classify(pid, status))
	}
}

// classify maps a wait status onto the four transitions the table knows.
func classify(pid int, status unix.WaitStatus) childEvent {
	switch {
	case status.Stopped():
		return childEvent{pid: pid, kind: childStopped, sig: int(status.StopSignal())}
	case status.Signaled():
		return childEvent{pid: pid, kind: childSignaled, sig: int(status.Signal())}
	case status.Continued():
		return childEvent{pid: pid, kind: childContinued}
	default:
		return childEvent{pid: pid, kind: childExited}
	}
}

// apply commits one child event to the job table and wakes any foreground
// wait. A pid the table does not know is dropped: the child may already
// have been reported and deleted, and the reaper must never crash.
func (s *Shell) apply(ev childEvent) {
	s.mu.Lock()
	defer func() {
		s.fgDone.Broadcast()
		s.mu.Unlock()
	}()

	jid, ok := s.table.JID(ev.pid)
	if !ok {
		return
	}

	switch ev.kind {
	case childStopped:
		s.table.SetState(jid, job.Stopped)
		s.notify.Jobf(jid, ev.pid, "stopped", ev.sig)
		s.logf("job %d stopped by signal %d", jid, ev.sig)
	case childSignaled:
		s.notify.Jobf(jid, ev.pid, "terminated", ev.sig)
		s.table.Delete(jid)
		s.logf("job %d terminated by signal %d", jid, ev.sig)
	case childContinued:
		// Resume to the state the job held before it stopped; bg and fg
		// have already pinned the state when they sent the SIGCONT.
		s.table.Continue(jid)
		s.logf("job %d continued", jid)
	case childExited:
		s.table.Delete(jid)
		s.logf("job %d exited", jid)
	}
}

// forwardToForeground relays a terminal signal to the whole foreground
// process group. No foreground job, nothing to do.
func (s *Shell) forwardToForeground(sig unix.Signal) {
	s.mu.Lock()
	jid := s.table.Foreground()
	pid := 0
	if jid != 0 {
		pid, _ = s.table.PID(jid)
	}
	s.mu.Unlock()

	if pid > 0 {
		_ = unix.Kill(-pid, sig)
	}
}
