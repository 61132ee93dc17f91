package engine

// MaxUndo caps the undo stack; the oldest snapshot is evicted on push
// when the cap is reached.
const MaxUndo = 100

// UndoStack is a bounded stack of GameState snapshots, most recent last.
// A snapshot is pushed before each attempted mutation and discarded if
// the mutation fails, so only committed moves consume capacity.
type UndoStack struct {
	snaps []Snapshot
}

// Len returns the number of stored snapshots.
func (u *UndoStack) Len() int { return len(u.snaps) }

// CanUndo reports whether a snapshot is available.
func (u *UndoStack) CanUndo() bool { return len(u.snaps) > 0 }

// Push stores a snapshot, evicting the oldest when the stack is full.
func (u *UndoStack) Push(s Snapshot) {
	if len(u.snaps) >= MaxUndo {
		copy(u.snaps, u.snaps[1:])
		u.snaps = u.snaps[:len(u.snaps)-1]
	}
	u.snaps = append(u.snaps, s)
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() (Snapshot, bool) {
	if len(u.snaps) == 0 {
		return Snapshot{}, false
	}
	s := u.snaps[len(u.snaps)-1]
	u.snaps = u.snaps[:len(u.snaps)-1]
	return s, true
}

// Discard drops the most recent snapshot without returning it. Used when
// a move fails validation after its precautionary snapshot was pushed.
func (u *UndoStack) Discard() {
	if len(u.snaps) > 0 {
		u.snaps = u.snaps[:len(u.snaps)-1]
	}
}

// Clear empties the stack.
func (u *UndoStack) Clear() { u.snaps = u.snaps[:0] }
