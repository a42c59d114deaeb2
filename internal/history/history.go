// Package history keeps undo and redo stacks of full surface snapshots.
package history

import (
	"github.com/example/shineypaint/internal/raster"
)

// History holds the undo and redo stacks. The most recent snapshot is last.
type History struct {
	undo  []*raster.Snapshot
	redo  []*raster.Snapshot
	limit int
}

// New returns an empty history. A positive limit caps the undo stack by
// dropping the oldest snapshots; zero keeps everything.
func New(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// BeginEdit records cur as the state to return to and invalidates redo. Call
// it once per discrete edit, before the edit touches the surface.
func (h *History) BeginEdit(cur *raster.Surface) {
	h.push(cur.Snapshot())
	h.redo = nil
}

// Undo moves cur onto the redo stack and returns the snapshot to restore. It
// returns false and changes nothing when there is nothing to undo.
func (h *History) Undo(cur *raster.Surface) (*raster.Snapshot, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	h.redo = append(h.redo, cur.Snapshot())
	return pop(&h.undo), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(cur *raster.Surface) (*raster.Snapshot, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	h.push(cur.Snapshot())
	return pop(&h.redo), true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) UndoLen() int { return len(h.undo) }
func (h *History) RedoLen() int { return len(h.redo) }

// PeekUndo returns the snapshot Undo would restore without popping it.
func (h *History) PeekUndo() (*raster.Snapshot, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	return h.undo[len(h.undo)-1], true
}

// Reset drops both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

func (h *History) push(s *raster.Snapshot) {
	h.undo = append(h.undo, s)
	if h.limit > 0 && len(h.undo) > h.limit {
		drop := len(h.undo) - h.limit
		clear(h.undo[:drop])
		h.undo = h.undo[drop:]
	}
}

func pop(stack *[]*raster.Snapshot) *raster.Snapshot {
	s := *stack
	top := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return top
}
