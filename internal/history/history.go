// Package history implements the packed, NUL-terminated history ring
// described by the core prompt engine: a FIFO of previously submitted lines
// stored in a single caller-supplied byte buffer, with LRU eviction and
// "skip on direction reversal" Up/Down navigation.
//
// The on-buffer layout is exactly the packed format an embedder may inspect
// or persist directly: zero or more NUL-terminated records starting at
// offset 0, followed by NUL padding to the end of the buffer. Record
// boundaries are recomputed by a forward scan rather than tracked
// incrementally; for the small, bounded buffers this engine targets that
// costs nothing observable and is far easier to reason about than mirroring
// the source's backward-scan pointer arithmetic, which the specification
// itself flags as not fully self-consistent.
package history

import "github.com/nullterm/cliprompt/internal/corelog"

// Store manages one caller-supplied history buffer.
type Store struct {
	buf    []byte
	cursor int // index into records(); -1 means nothing has been recalled yet
}

// New wraps buf as a history ring. buf may be nil, in which case the store
// behaves as permanently empty (every Submit, Up, and Down is a no-op).
func New(buf []byte) *Store {
	return &Store{buf: buf, cursor: -1}
}

// records returns the current record boundaries by scanning the packed
// buffer from the start. A record that runs to the end of the buffer
// without a terminating NUL is corrupt and is dropped rather than returned.
func (s *Store) records() [][]byte {
	var recs [][]byte
	pos := 0
	for pos < len(s.buf) && s.buf[pos] != 0 {
		nul := pos
		for nul < len(s.buf) && s.buf[nul] != 0 {
			nul++
		}
		if nul >= len(s.buf) {
			break
		}
		recs = append(recs, s.buf[pos:nul])
		pos = nul + 1
	}
	return recs
}

// freeStart returns the offset of the first byte of free (all-NUL) space
// following the last packed record.
func (s *Store) freeStart() int {
	pos := 0
	for pos < len(s.buf) && s.buf[pos] != 0 {
		nul := pos
		for nul < len(s.buf) && s.buf[nul] != 0 {
			nul++
		}
		if nul >= len(s.buf) {
			return pos // corrupt trailing record; treat as consuming no free space
		}
		pos = nul + 1
	}
	return pos
}

// Submit inserts line into the ring, evicting the oldest records as needed
// to make room. navigating is true when the last key the decoder observed
// was history-up or history-down; per the engine's rules, a submission that
// immediately follows navigation does not insert — it only leaves the
// recall cursor where navigation left it. Submit reports whether it
// actually inserted a new record.
func (s *Store) Submit(line string, navigating bool) bool {
	if navigating {
		return false
	}
	if len(s.buf) == 0 || line == "" {
		return false
	}
	need := len(line) + 1
	if need > len(s.buf) {
		corelog.Tracef("history record of %d bytes never fits %d-byte buffer, dropping", need, len(s.buf))
		return false // silent drop: never fits
	}

	free := s.freeStart()
	for len(s.buf)-free < need {
		nul := -1
		for i := 0; i < free; i++ {
			if s.buf[i] == 0 {
				nul = i
				break
			}
		}
		if nul < 0 {
			corelog.Tracef("no record boundary to evict in %d bytes of packed space, abandoning insert", free)
			return false // nothing left to evict; abandon (corrupt or impossible)
		}
		shifted := copy(s.buf, s.buf[nul+1:free])
		for i := shifted; i < free; i++ {
			s.buf[i] = 0
		}
		newFree := free - (nul + 1)
		if newFree < 0 || newFree > len(s.buf) {
			corelog.Tracef("eviction produced out-of-range free offset %d, abandoning insert", newFree)
			return false // corrupt buffer; clamp by abandoning this insert
		}
		free = newFree
	}

	copy(s.buf[free:], line)
	s.buf[free+len(line)] = 0

	// Leave cursor out of range rather than at the newest record: Up's
	// "not yet navigating" guard below keys off that, so the first Up
	// after this submission seeds target at the newest record instead of
	// stepping past it.
	s.cursor = len(s.records())
	return true
}

// Up recalls the previous (older) record. lastWasDown indicates the
// decoder's last-key kind was Down before this call, which triggers the
// direction-reversal skip (an extra record boundary is crossed). It
// reports the recalled line and whether anything was recalled (false on an
// empty history).
func (s *Store) Up(lastWasDown bool) (string, bool) {
	recs := s.records()
	if len(recs) == 0 {
		return "", false
	}

	step := 1
	if lastWasDown {
		step = 2
	}

	target := s.cursor - step
	if s.cursor < 0 || s.cursor >= len(recs) {
		target = len(recs) - 1
	}
	if target < 0 {
		target = 0
	}
	if target > len(recs)-1 {
		target = len(recs) - 1
	}

	s.cursor = target
	return string(recs[target]), true
}

// Down recalls the next (newer) record. lastWasUp indicates the decoder's
// last-key kind was Up before this call, triggering the same reversal skip
// as Up. It is a no-op (returns false) when nothing has been recalled yet
// or the cursor is already at the newest record.
func (s *Store) Down(lastWasUp bool) (string, bool) {
	recs := s.records()
	if len(recs) == 0 || s.cursor < 0 || s.cursor >= len(recs) {
		return "", false
	}

	step := 1
	if lastWasUp {
		step = 2
	}

	target := s.cursor + step
	if target > len(recs)-1 {
		target = len(recs) - 1
		if target == s.cursor {
			return "", false
		}
	}

	s.cursor = target
	return string(recs[target]), true
}
