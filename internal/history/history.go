package history

// DefaultSize is the number of snapshots kept when none is configured
const DefaultSize = 20

// History is a bounded stack of content snapshots. Pushing past the capacity
// evicts the oldest snapshot. It is not safe for concurrent use.
type History struct {
	size      int
	snapshots []string
}

// New creates an empty history keeping at most size snapshots
func New(size int) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{size: size}
}

// Push saves a snapshot
func (h *History) Push(snapshot string) {
	h.snapshots = append(h.snapshots, snapshot)
	if len(h.snapshots) > h.size {
		h.snapshots = h.snapshots[len(h.snapshots)-h.size:]
	}
}

// Pop removes and returns the most recent snapshot
func (h *History) Pop() (string, bool) {
	if len(h.snapshots) == 0 {
		return "", false
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return last, true
}

// Len returns the number of snapshots held
func (h *History) Len() int {
	return len(h.snapshots)
}
