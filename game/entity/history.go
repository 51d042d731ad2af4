package entity

import "snake-battle/game/types"

// History is a fixed-capacity ring of recent head positions. Pushing onto a
// full ring evicts the oldest entry.
type History struct {
	buf   []types.Point
	start int
	size  int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]types.Point, capacity)}
}

func (h *History) Push(p types.Point) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = p
		h.size++
		return
	}
	h.buf[h.start] = p
	h.start = (h.start + 1) % len(h.buf)
}

func (h *History) Len() int { return h.size }

func (h *History) Cap() int { return len(h.buf) }

func (h *History) Full() bool { return h.size == len(h.buf) }

func (h *History) Clear() {
	h.start = 0
	h.size = 0
}

// Contains reports whether p was pushed and not yet evicted.
func (h *History) Contains(p types.Point) bool {
	for i := 0; i < h.size; i++ {
		if h.buf[(h.start+i)%len(h.buf)] == p {
			return true
		}
	}
	return false
}

// Distinct counts the unique positions currently held.
func (h *History) Distinct() int {
	seen := make(map[types.Point]struct{}, h.size)
	for i := 0; i < h.size; i++ {
		seen[h.buf[(h.start+i)%len(h.buf)]] = struct{}{}
	}
	return len(seen)
}

// Positions returns the held positions oldest first.
func (h *History) Positions() []types.Point {
	out := make([]types.Point, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
