package job

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrTableFull is returned by Add when every slot is taken.
var ErrTableFull = errors.New("too many jobs")

// Table is a fixed-capacity registry of jobs keyed by job id. Job ids are
// the lowest free positive integers and are reclaimed on delete.
//
// The table does no locking of its own. The shell owns one long-lived
// instance and serializes every access, including the reaper's, behind a
// single mutex; tests construct independent tables directly.
type Table struct {
	capacity int
	jobs     map[int]*Job
	byPID    map[int]int
}

// NewTable creates an empty table holding at most capacity jobs.
func NewTable(capacity int) *Table {
	return &Table{
		capacity: capacity,
		jobs:     make(map[int]*Job, capacity),
		byPID:    make(map[int]int, capacity),
	}
}

// Add registers a new job and returns its id. The id is the smallest
// positive integer not currently in use.
func (t *Table) Add(pid int, state State, cmdline string) (int, error) {
	if len(t.jobs) >= t.capacity {
		return 0, ErrTableFull
	}
	id := 1
	for t.jobs[id] != nil {
		id++
	}
	t.jobs[id] = &Job{
		ID:      id,
		PID:     pid,
		State:   state,
		Cmdline: cmdline,
	}
	t.byPID[pid] = id
	return id, nil
}

// Delete removes a job, freeing its id for reuse. Deleting an absent id is a
// no-op: the reaper and builtins may both observe the same termination.
func (t *Table) Delete(id int) {
	j, ok := t.jobs[id]
	if !ok {
		return
	}
	delete(t.byPID, j.PID)
	delete(t.jobs, id)
}

// SetState updates a job's state. Absent ids are ignored; the process may
// already have been reaped by the time a builtin gets around to it.
func (t *Table) SetState(id int, state State) {
	j, ok := t.jobs[id]
	if !ok {
		return
	}
	if state == Stopped && j.State != Stopped {
		j.resume = j.State
	}
	j.State = state
}

// Continue transitions a stopped job back to the state it held before it was
// stopped. Running jobs and absent ids are left alone.
func (t *Table) Continue(id int) {
	j, ok := t.jobs[id]
	if !ok || j.State != Stopped {
		return
	}
	j.State = j.resume
}

// PID returns the process id for a job id.
func (t *Table) PID(id int) (int, bool) {
	j, ok := t.jobs[id]
	if !ok {
		return 0, false
	}
	return j.PID, true
}

// JID returns the job id for a process id.
func (t *Table) JID(pid int) (int, bool) {
	id, ok := t.byPID[pid]
	return id, ok
}

// Exists reports whether a job id is currently allocated.
func (t *Table) Exists(id int) bool {
	return t.jobs[id] != nil
}

// Get returns the job for an id, or nil.
func (t *Table) Get(id int) *Job {
	return t.jobs[id]
}

// Foreground returns the id of the unique foreground job, or 0.
func (t *Table) Foreground() int {
	for id, j := range t.jobs {
		if j.State == Foreground {
			return id
		}
	}
	return 0
}

// Len returns the number of live jobs.
func (t *Table) Len() int {
	return len(t.jobs)
}

// List writes one line per job in ascending job-id order, in the form
// "[id] (pid) Running|Stopped cmdline".
func (t *Table) List(w io.Writer) error {
	ids := make([]int, 0, len(t.jobs))
	for id := range t.jobs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		j := t.jobs[id]
		if _, err := fmt.Fprintf(w, "[%d] (%d) %s %s\n", j.ID, j.PID, j.State.word(), j.Cmdline); err != nil {
			return err
		}
	}
	return nil
}
