package shell

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"

	"jobsh/internal/job"
	"jobsh/internal/parser"
)

// quit ends the shell immediately. Children are left to the OS.
func (s *Shell) quit() {
	_ = s.hist.Save()
	os.Exit(0)
}

// jobs lists the table, to stdout or to a redirect target.
func (s *Shell) jobs(tok parser.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.Outfile == "" {
		if err := s.table.List(os.Stdout); err != nil {
			s.notify.Line("Fails to write into job list.")
		}
		return
	}

	f, err := os.OpenFile(tok.Outfile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, outfileMode)
	if err != nil {
		s.reportOpenError(tok.Outfile, err)
		return
	}
	defer f.Close()

	if err := s.table.List(f); err != nil {
		s.notify.Line("Fails to write into job list.")
	}
}

// resumeJob implements bg and fg: resolve the pid-or-%jid argument, deliver
// SIGCONT to the job's process group, and pin the requested state. fg then
// enters the foreground wait.
func (s *Shell) resumeJob(tok parser.Tokens, state job.State) {
	name := tok.Argv[0]

	if len(tok.Argv) < 2 {
		s.notify.Line(name + " command requires PID or %jobid argument")
		return
	}

	arg := tok.Argv[1]
	if arg == "" || (arg[0] != '%' && !isDigit(arg[0])) {
		s.notify.Line(name + ": argument must be a PID or %jobid")
		return
	}

	s.mu.Lock()

	jid, pid, ok := s.resolveJobArg(arg)
	if !ok {
		s.mu.Unlock()
		s.notify.Line(arg + ": No such job")
		return
	}

	if state == job.Background {
		s.notify.Announce(jid, pid, s.table.Get(jid).Cmdline)
	}

	_ = unix.Kill(-pid, unix.SIGCONT)
	s.table.SetState(jid, state)
	s.logf("job %d (%d) resumed as %s", jid, pid, state)

	if state == job.Foreground {
		s.waitForeground(pid) // releases the lock
		return
	}
	s.mu.Unlock()
}

// resolveJobArg maps "%jid" or "pid" onto a live job. Caller holds mu.
func (s *Shell) resolveJobArg(arg string) (jid, pid int, ok bool) {
	if arg[0] == '%' {
		jid, err := strconv.Atoi(arg[1:])
		if err != nil {
			return 0, 0, false
		}
		pid, ok := s.table.PID(jid)
		return jid, pid, ok
	}

	pid, err := strconv.Atoi(arg)
	if err != nil {
		return 0, 0, false
	}
	jid, ok = s.table.JID(pid)
	return jid, pid, ok
}

func (s *Shell) showHistory() {
	for i, line := range s.hist.Entries() {
		fmt.Printf("%d: %s\n", i+1, line)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
