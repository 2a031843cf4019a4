package job

// State describes where a tracked job currently runs. A job that is gone is
// absent from the table rather than carrying a terminal state.
type State int

const (
	Foreground State = iota
	Background
	Stopped
)

func (s State) String() string {
	switch s {
	case Foreground:
		return "Foreground"
	case Background:
		return "Background"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// word is the state column used by the jobs listing. Foreground and
// Background jobs both list as Running.
func (s State) word() string {
	if s == Stopped {
		return "Stopped"
	}
	return "Running"
}

// Job is one tracked child process group.
type Job struct {
	ID      int
	PID     int
	State   State
	Cmdline string

	// resume is the state the job held when it was last stopped, restored
	// when a continue notification arrives.
	resume State
}
