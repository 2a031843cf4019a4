package shell

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsh/internal/job"
)

func TestRunExternalMissingCommand(t *testing.T) {
	ts := newTestShell(t)
	ts.Eval("/no/such/binary --flag")

	assert.Equal(t, "/no/such/binary: No such file or directory\n", ts.output(t))

	ts.mu.Lock()
	defer ts.mu.Unlock()
	assert.Zero(t, ts.table.Len())
}

func TestRunExternalCommandNotInPath(t *testing.T) {
	ts := newTestShell(t)
	ts.Eval("definitely-not-a-command-jobsh-test")

	assert.Equal(t, "definitely-not-a-command-jobsh-test: No such file or directory\n", ts.output(t))
}

func TestRunExternalInputRedirectMissing(t *testing.T) {
	ts := newTestShell(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")
	ts.Eval(fmt.Sprintf("cat < %s", missing))

	assert.Equal(t, missing+": No such file or directory\n", ts.output(t))

	ts.mu.Lock()
	defer ts.mu.Unlock()
	assert.Zero(t, ts.table.Len())
}

func TestRunExternalOutputRedirectIntoMissingDirectory(t *testing.T) {
	ts := newTestShell(t)
	target := filepath.Join(t.TempDir(), "missing", "out.txt")
	ts.Eval(fmt.Sprintf("echo hi > %s", target))

	assert.Equal(t, target+": No such file or directory\n", ts.output(t))
}

func TestBackgroundStartAnnouncesAndReturns(t *testing.T) {
	ts := newTestShell(t)
	ts.Eval("sleep 5 &")

	ts.mu.Lock()
	require.Equal(t, 1, ts.table.Len())
	j := ts.table.Get(1)
	require.NotNil(t, j)
	pid := j.PID
	assert.Equal(t, job.Background, j.State)
	assert.Equal(t, "sleep 5 &", j.Cmdline)
	ts.mu.Unlock()

	assert.Equal(t, fmt.Sprintf("[1] (%d) sleep 5 &\n", pid), ts.output(t))
}

func TestTableFullLeavesProcessUntracked(t *testing.T) {
	ts := newTestShell(t)
	ts.mu.Lock()
	for i := 0; i < ts.cfg.MaxJobs; i++ {
		_, err := ts.table.Add(10000+i, job.Background, "filler &")
		require.NoError(t, err)
	}
	ts.mu.Unlock()

	ts.Eval("sleep 5 &")

	out := ts.output(t)
	assert.True(t, strings.Contains(out, "Tried to create too many jobs"), out)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	assert.Equal(t, ts.cfg.MaxJobs, ts.table.Len())
}
