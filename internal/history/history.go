// Package history keeps the command-line history buffer and its recall cursor.
package history

// Direction is a recall step.
type Direction int

const (
	Up Direction = iota
	Down
)

// History is an ordered list of entered lines with a readline-style cursor.
// The cursor lives in [0, Len()]; Len() means the user is editing fresh input.
type History struct {
	lines  []string
	cursor int
	save   func([]string) error
}

// New seeds the buffer with previously persisted lines. save is called with a
// copy of the full buffer after every append; it may be nil.
func New(lines []string, save func([]string) error) *History {
	seed := append([]string(nil), lines...)
	return &History{lines: seed, cursor: len(seed), save: save}
}

// Add appends line unless it repeats the most recent entry, then resets the
// cursor. The returned error comes from persisting the buffer.
func (h *History) Add(line string) error {
	defer func() { h.cursor = len(h.lines) }()
	if line == "" {
		return nil
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return nil
	}
	h.lines = append(h.lines, line)
	h.cursor = len(h.lines)
	if h.save == nil {
		return nil
	}
	return h.save(h.Entries())
}

// Recall moves the cursor one step. ok is false when nothing changes, which
// only happens when moving up from the oldest entry. Moving down from the
// newest entry (or beyond) yields "" and leaves the cursor at Len().
func (h *History) Recall(dir Direction) (line string, ok bool) {
	switch dir {
	case Up:
		if h.cursor <= 0 {
			return "", false
		}
		h.cursor--
		return h.lines[h.cursor], true
	case Down:
		if h.cursor < len(h.lines)-1 {
			h.cursor++
			return h.lines[h.cursor], true
		}
		h.cursor = len(h.lines)
		return "", true
	}
	return "", false
}

func (h *History) Entries() []string {
	return append([]string(nil), h.lines...)
}

func (h *History) Len() int {
	return len(h.lines)
}

func (h *History) Cursor() int {
	return h.cursor
}

// Clear drops every entry without persisting; callers clear the store.
func (h *History) Clear() {
	h.lines = nil
	h.cursor = 0
}
