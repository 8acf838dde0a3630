package nav

// History is a back/forward stack of locations. It is not safe for
// concurrent use; Coordinator serializes access.
type History struct {
	entries []Location
	index   int
}

func NewHistory(initial Location) *History {
	return &History{entries: []Location{initial.Clone()}}
}

func (h *History) Current() Location {
	return h.entries[h.index].Clone()
}

// Push adds loc after the current entry and drops any forward entries.
func (h *History) Push(loc Location) {
	h.entries = append(h.entries[:h.index+1], loc.Clone())
	h.index = len(h.entries) - 1
}

func (h *History) Replace(loc Location) {
	h.entries[h.index] = loc.Clone()
}

func (h *History) Back() (Location, bool) {
	if h.index == 0 {
		return Location{}, false
	}
	h.index--
	return h.Current(), true
}

func (h *History) Forward() (Location, bool) {
	if h.index >= len(h.entries)-1 {
		return Location{}, false
	}
	h.index++
	return h.Current(), true
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Index() int {
	return h.index
}
