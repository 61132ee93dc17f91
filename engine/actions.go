package engine

import (
	"errors"
	"fmt"
)

// Recoverable move failures. The game state is unchanged whenever one of
// these is returned.
var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrEmptySource    = errors.New("empty source pile")
	ErrStockExhausted = errors.New("stock and waste are both empty")
)

// MoveOutcome reports what a successful mutation did.
type MoveOutcome struct {
	CardsMoved uint8 // cards transferred by ExecuteMove
	Flipped    bool  // a newly exposed tableau card was turned face-up
	Drawn      uint8 // cards moved from stock to waste
	Recycled   bool  // waste was turned back into the stock
	Won        bool  // all four foundations are complete
	Stalled    bool  // loss condition reached (see IsStalled)
}

// ExecuteMove transfers the liftable unit at src to dst. Legality is
// reconfirmed here; callers may not rely on an earlier CanPlace check.
// On success the run order is preserved, a newly exposed face-down
// tableau card is flipped as part of the same move, and the move counter
// advances. On failure the state is unchanged.
func (g *GameState) ExecuteMove(src, dst Location) (MoveOutcome, error) {
	var out MoveOutcome

	srcPile := g.PileAt(src)
	if srcPile == nil || srcPile.Empty() {
		return out, fmt.Errorf("%w: %s", ErrEmptySource, src.Zone)
	}
	if !g.CanPlace(src, dst) {
		return out, fmt.Errorf("%w: %s to %s", ErrIllegalMove, src.Zone, dst.Zone)
	}

	dstPile := g.PileAt(dst)
	n := g.runLength(src)
	start := srcPile.Len - n
	if src.Zone == ZoneTableau {
		start = src.Index
	}
	for i := start; i < start+n; i++ {
		dstPile.push(srcPile.Cards[i])
		srcPile.Cards[i] = 0
	}
	srcPile.Len = start

	if src.Zone == ZoneTableau && !srcPile.Empty() && !srcPile.Top().FaceUp() {
		srcPile.Cards[srcPile.Len-1] = srcPile.Top().Up()
		out.Flipped = true
	}

	g.MoveCount++
	g.Flags |= FlagProgress
	g.Burials = 0
	out.CardsMoved = n

	if g.FoundationTotal() == DeckSize {
		g.Flags |= FlagWon
		out.Won = true
	}
	return out, nil
}

// DrawFromStock moves up to DrawCount cards from the stock to the waste,
// face-up, last-drawn on top. With an empty stock and a non-empty waste
// it performs the recycle instead; with both empty it fails with
// ErrStockExhausted.
func (g *GameState) DrawFromStock() (MoveOutcome, error) {
	var out MoveOutcome

	if g.Stock.Empty() {
		if g.Waste.Empty() {
			return out, ErrStockExhausted
		}
		return g.RecycleStock()
	}

	n := g.Rules.drawCount()
	if n > g.Stock.Len {
		n = g.Stock.Len
	}
	for i := uint8(0); i < n; i++ {
		g.Waste.push(g.Stock.pop().Up())
	}
	g.MoveCount++
	out.Drawn = n
	return out, nil
}

// RecycleStock turns the whole waste back into the stock, face-down, so
// the first card dealt to the waste becomes the last to draw again. It
// increments the pass counter and feeds stall detection: a pass during
// which no card move succeeded and no legal move exists counts toward
// the loss condition.
func (g *GameState) RecycleStock() (MoveOutcome, error) {
	var out MoveOutcome

	if !g.Stock.Empty() {
		return out, fmt.Errorf("%w: stock is not empty", ErrIllegalMove)
	}
	if g.Waste.Empty() {
		return out, ErrStockExhausted
	}

	for !g.Waste.Empty() {
		g.Stock.push(g.Waste.pop().Down())
	}

	g.PassCount++
	if g.Flags&FlagProgress == 0 && !g.HasAnyLegalMove() {
		g.StallPasses++
	} else {
		g.StallPasses = 0
	}
	g.Flags &^= FlagProgress

	out.Recycled = true
	out.Stalled = g.IsStalled()
	return out, nil
}

// BuryTopCard moves the top waste card to the bottom of the stock,
// face-down. This is the draw-3 stall recovery: it is caller-invoked,
// does not count as a move, and resets the pass and stall counters so
// the next cycle through the stock starts fresh.
func (g *GameState) BuryTopCard() (MoveOutcome, error) {
	var out MoveOutcome

	if g.Waste.Empty() {
		return out, fmt.Errorf("%w: waste", ErrEmptySource)
	}

	card := g.Waste.pop().Down()
	copy(g.Stock.Cards[1:g.Stock.Len+1], g.Stock.Cards[:g.Stock.Len])
	g.Stock.Cards[0] = card
	g.Stock.Len++

	g.Burials++
	g.PassCount = 0
	g.StallPasses = 0
	return out, nil
}
