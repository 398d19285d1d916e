package backtrack

// slot is one capture registry entry as seen by a single match attempt.
type slot struct {
	text string
	set  bool
}

// captures is the per-attempt view of the capture registry.
//
// A captures value is never modified in place once handed to a callee:
// record returns a copy. A failed speculative branch therefore cannot leave
// text behind for its siblings or for the next start offset.
type captures []slot

func newCaptures(n int) captures {
	if n == 0 {
		return nil
	}
	return make(captures, n)
}

// firstEmpty returns the index of the first slot not yet set, or -1.
func (c captures) firstEmpty() int {
	for i := range c {
		if !c[i].set {
			return i
		}
	}
	return -1
}

// record returns a copy of c with slot i set to text.
// An out-of-range i returns c unchanged.
func (c captures) record(i int, text string) captures {
	if i < 0 || i >= len(c) {
		return c
	}
	out := make(captures, len(c))
	copy(out, c)
	out[i] = slot{text: text, set: true}
	return out
}

// get returns the text recorded for the 1-based group index and whether
// the group has been set.
func (c captures) get(index int) (string, bool) {
	if index < 1 || index > len(c) {
		return "", false
	}
	s := c[index-1]
	return s.text, s.set
}
