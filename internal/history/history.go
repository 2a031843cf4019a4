package history

import (
	"bufio"
	"os"
)

const maxEntries = 1000

// History is the bounded, file-backed command history. The shell only
// touches history from the read/eval loop, so no locking here.
type History struct {
	entries []string
	file    string
}

// New loads history from file; a missing file starts an empty history.
func New(file string) (*History, error) {
	h := &History{file: file}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Add appends a command line, dropping the oldest entries past the cap.
func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
	if len(h.entries) > maxEntries {
		h.entries = h.entries[len(h.entries)-maxEntries:]
	}
}

// Entries returns a copy of the recorded lines, oldest first.
func (h *History) Entries() []string {
	return append([]string{}, h.entries...)
}

// Save writes the history back to its file.
func (h *History) Save() error {
	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range h.entries {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (h *History) load() error {
	file, err := os.Open(h.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(h.entries) > maxEntries {
		h.entries = h.entries[len(h.entries)-maxEntries:]
	}
	return nil
}
