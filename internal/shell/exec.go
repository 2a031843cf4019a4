package shell

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"jobsh/internal/job"
	"jobsh/internal/parser"
)

// outfileMode matches the permissions the shell has always used for output
// redirection and "jobs > file": rw for the owner, read-only elsewhere.
const outfileMode = 0o644

// runExternal launches an external command in its own process group,
// registers it as a job, and either waits for it (foreground) or announces
// it (background).
func (s *Shell) runExternal(result parser.Result, tok parser.Tokens, cmdline string) {
	cmd := exec.Command(tok.Argv[0], tok.Argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// The job and all its descendants share a group, so one signal to
	// -pid reaches everything the job spawned.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if tok.Infile != "" {
		f, err := os.Open(tok.Infile)
		if err != nil {
			s.reportOpenError(tok.Infile, err)
			return
		}
		defer f.Close()
		cmd.Stdin = f
	}

	if tok.Outfile != "" {
		f, err := os.OpenFile(tok.Outfile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, outfileMode)
		if err != nil {
			s.reportOpenError(tok.Outfile, err)
			return
		}
		defer f.Close()
		cmd.Stdout = f
	}

	// Hold the table lock across start and registration. The reaper takes
	// the same lock, so the child cannot be reported before its job
	// exists, which is the tracking guarantee everything else rests on.
	s.mu.Lock()

	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		s.reportOpenError(tok.Argv[0], err)
		return
	}
	pid := cmd.Process.Pid

	state := job.Foreground
	if result == parser.ResultBackground {
		state = job.Background
	}

	jid, err := s.table.Add(pid, state, cmdline)
	if err != nil {
		// Table full: the process runs on untracked, the command is
		// abandoned.
		s.mu.Unlock()
		s.notify.Line("Tried to create too many jobs")
		return
	}
	s.logf("job %d (%d) started: %s", jid, pid, cmdline)

	if state == job.Background {
		s.mu.Unlock()
		s.notify.Announce(jid, pid, cmdline)
		return
	}

	s.waitForeground(pid)
}

// waitForeground blocks until pid is no longer the foreground job: it
// exited, was killed, was stopped, or was demoted. Called with mu held;
// releases it before returning.
//
// Cond.Wait releases the lock and sleeps atomically, so a state change
// slotted between the check and the sleep is impossible; the reaper cannot
// take the lock until the wait is parked, and its broadcast re-runs the
// check. Splitting unlock from sleep would reopen exactly that race.
func (s *Shell) waitForeground(pid int) {
	for {
		jid := s.table.Foreground()
		if jid == 0 {
			break
		}
		if fpid, ok := s.table.PID(jid); !ok || fpid != pid {
			break
		}
		s.fgDone.Wait()
	}
	s.mu.Unlock()
}

// reportOpenError prints the single-line form for a failed executable or
// redirect path, distinguishing the two causes the shell reports.
func (s *Shell) reportOpenError(path string, err error) {
	switch {
	case os.IsNotExist(err) || errors.Is(err, exec.ErrNotFound):
		s.notify.Line(path + ": No such file or directory")
	case os.IsPermission(err):
		s.notify.Line(path + ": Permission denied")
	default:
		s.notify.Line(path + ": " + err.Error())
	}
}
