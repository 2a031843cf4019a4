// Package sio is the status-line output primitive used from the reaper.
// Each line is assembled into a single buffer and handed to the kernel in
// one direct write, so lines never interleave with buffered loop output and
// the emit path stays safe to call while the rest of the shell is suspended
// in a wait. Write errors are dropped: there is nowhere to report them.
package sio

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// Notifier emits whole status lines to a file descriptor.
type Notifier struct {
	fd int
}

// New returns a Notifier writing to fd.
func New(fd int) *Notifier {
	return &Notifier{fd: fd}
}

// Stdout returns a Notifier on standard output, where all job status lines
// go.
func Stdout() *Notifier {
	return New(int(unix.Stdout))
}

// Jobf emits "Job [jid] (pid) <verb> by signal <sig>\n".
func (n *Notifier) Jobf(jid, pid int, verb string, sig int) {
	buf := make([]byte, 0, 64)
	buf = append(buf, "Job ["...)
	buf = strconv.AppendInt(buf, int64(jid), 10)
	buf = append(buf, "] ("...)
	buf = strconv.AppendInt(buf, int64(pid), 10)
	buf = append(buf, ") "...)
	buf = append(buf, verb...)
	buf = append(buf, " by signal "...)
	buf = strconv.AppendInt(buf, int64(sig), 10)
	buf = append(buf, '\n')
	n.write(buf)
}

// Announce emits "[jid] (pid) cmdline\n", the background-start line.
func (n *Notifier) Announce(jid, pid int, cmdline string) {
	buf := make([]byte, 0, 32+len(cmdline))
	buf = append(buf, '[')
	buf = strconv.AppendInt(buf, int64(jid), 10)
	buf = append(buf, "] ("...)
	buf = strconv.AppendInt(buf, int64(pid), 10)
	buf = append(buf, ") "...)
	buf = append(buf, cmdline...)
	buf = append(buf, '\n')
	n.write(buf)
}

// Line emits an arbitrary single line.
func (n *Notifier) Line(s string) {
	buf := make([]byte, 0, len(s)+1)
	buf = append(buf, s...)
	buf = append(buf, '\n')
	n.write(buf)
}

func (n *Notifier) write(buf []byte) {
	// One write per line; partial writes and errors are not retried.
	_, _ = unix.Write(n.fd, buf)
}
