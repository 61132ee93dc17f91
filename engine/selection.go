package engine

// Selection/cursor state machine. The input layer decodes keyboard or
// mouse events into Activate(location) and Cancel calls; this machine
// interprets them as pick-up, drop, cancel, or draw, delegating legality
// to the predicates in legal.go and mutation to the executor in
// actions.go. It is synchronous: each activation is fully resolved,
// including any auto-move, before it returns.

// EventResult classifies what an activation did.
type EventResult uint8

const (
	ResultNone      EventResult = iota // nothing happened (e.g. empty pile tapped)
	ResultPickedUp                     // a card or run is now held
	ResultMoved                        // held unit was placed successfully
	ResultAutoMoved                    // picked up and immediately moved to the only destination
	ResultCancelled                    // selection released without moving
	ResultRejected                     // attempted drop was illegal; selection retained
	ResultDrawn                        // stock tap drew cards to the waste
	ResultRecycled                     // stock tap recycled the waste
)

// Outcome is what an activation reports back to the caller: the
// classification, the executor's outcome when a mutation happened, and a
// human-readable message for display.
type Outcome struct {
	Result  EventResult
	Move    MoveOutcome
	Message string
}

// Selection references the held unit. It is a location descriptor only;
// the game state remains authoritative over card storage.
type Selection struct {
	Source Location
	RunLen uint8
}

// Selector is the two-state pick-up/drop machine: idle, or holding a
// liftable unit. It never mutates state on a failed attempt.
type Selector struct {
	holding bool
	sel     Selection
}

// Holding returns the current selection, if any.
func (s *Selector) Holding() (Selection, bool) { return s.sel, s.holding }

// Reset clears the selection unconditionally, without a message.
// Used after undo and on a new deal.
func (s *Selector) Reset() {
	s.holding = false
	s.sel = Selection{}
}

// Cancel releases the held unit. Cancelling with nothing held is a no-op.
func (s *Selector) Cancel() Outcome {
	if !s.holding {
		return Outcome{Result: ResultNone}
	}
	s.Reset()
	return Outcome{Result: ResultCancelled, Message: "Selection cancelled."}
}

// Activate resolves one location-activation event against the game
// state. Snapshots for undo are pushed before any mutation is attempted
// and discarded if the mutation fails, so failed attempts never consume
// undo capacity.
func (s *Selector) Activate(g *GameState, undo *UndoStack, loc Location) Outcome {
	if s.holding {
		return s.drop(g, undo, loc)
	}
	return s.pickUp(g, undo, loc)
}

// pickUp handles activation in the idle state.
func (s *Selector) pickUp(g *GameState, undo *UndoStack, loc Location) Outcome {
	if loc.Zone == ZoneStock {
		return s.stockTap(g, undo)
	}

	if !g.CanLift(loc) {
		return Outcome{Result: ResultNone, Message: "Nothing to select there."}
	}

	// Auto-move shortcut: a unit with exactly one legal destination moves
	// immediately instead of entering the holding state.
	if dests := g.LegalDestinations(loc); len(dests) == 1 {
		undo.Push(g.Save())
		move, err := g.ExecuteMove(loc, dests[0])
		if err != nil {
			undo.Discard()
			return Outcome{Result: ResultNone, Message: err.Error()}
		}
		msg := "Moved."
		if move.Won {
			msg = "You won!"
		}
		return Outcome{Result: ResultAutoMoved, Move: move, Message: msg}
	}

	s.holding = true
	s.sel = Selection{Source: loc, RunLen: g.runLength(loc)}
	if s.sel.RunLen > 1 {
		return Outcome{Result: ResultPickedUp, Message: "Run selected."}
	}
	return Outcome{Result: ResultPickedUp, Message: "Card selected."}
}

// drop handles activation in the holding state.
func (s *Selector) drop(g *GameState, undo *UndoStack, loc Location) Outcome {
	// Re-activating the source pile cancels the selection.
	if loc.SamePile(s.sel.Source) {
		return s.Cancel()
	}

	switch loc.Zone {
	case ZoneStock:
		return Outcome{Result: ResultRejected, Message: "Cannot place cards on the stock."}
	case ZoneWaste:
		return Outcome{Result: ResultRejected, Message: "Cannot place cards on the waste."}
	}

	undo.Push(g.Save())
	move, err := g.ExecuteMove(s.sel.Source, loc)
	if err != nil {
		// State untouched; the selection survives the failed attempt.
		undo.Discard()
		return Outcome{Result: ResultRejected, Message: "Invalid move: " + err.Error()}
	}

	s.Reset()
	msg := "Moved."
	if move.Won {
		msg = "You won!"
	}
	return Outcome{Result: ResultMoved, Move: move, Message: msg}
}

// stockTap performs the draw-or-recycle action bound to the stock pile.
func (s *Selector) stockTap(g *GameState, undo *UndoStack) Outcome {
	undo.Push(g.Save())
	move, err := g.DrawFromStock()
	if err != nil {
		undo.Discard()
		return Outcome{Result: ResultNone, Message: "Both stock and waste are empty."}
	}
	if move.Recycled {
		msg := "Recycled waste into stock."
		if move.Stalled {
			msg = "No moves left; the game is stalled."
		}
		return Outcome{Result: ResultRecycled, Move: move, Message: msg}
	}
	return Outcome{Result: ResultDrawn, Move: move, Message: "Drew from stock."}
}
