package engine

// Legality predicates. All functions in this file are pure reads over the
// game state; mutation lives in actions.go.

// CanLift reports whether the card (or run) at loc may be picked up.
//
//   - Stock: never liftable; a stock tap is a draw, not a pick-up.
//   - Waste: the top card, when present.
//   - Foundation: the top card, only when foundation-to-tableau moves are
//     enabled by the table rules.
//   - Tableau: the card at loc.Index, when face-up and the suffix from
//     there to the top forms a valid descending alternating-color run.
func (g *GameState) CanLift(loc Location) bool {
	switch loc.Zone {
	case ZoneWaste:
		return !g.Waste.Empty()
	case ZoneFoundation:
		if !g.Rules.AllowFoundationToTableau || loc.Pile >= NumFoundations {
			return false
		}
		return !g.Foundations[loc.Pile].Empty()
	case ZoneTableau:
		if loc.Pile >= NumTableaus {
			return false
		}
		pile := &g.Tableaus[loc.Pile]
		if loc.Index >= pile.Len || !pile.Cards[loc.Index].FaceUp() {
			return false
		}
		return validRun(pile.Cards[loc.Index:pile.Len])
	}
	return false
}

// validRun reports whether cards form a descending alternating-color
// sequence, bottom first. A single card is trivially valid.
func validRun(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		prev, cur := cards[i-1], cards[i]
		if !cur.FaceUp() {
			return false
		}
		if cur.Rank()+1 != prev.Rank() || !cur.OppositeColor(prev) {
			return false
		}
	}
	return true
}

// runLength returns the number of cards lifted from loc: the face-up
// suffix for tableau locations, otherwise 1.
func (g *GameState) runLength(loc Location) uint8 {
	if loc.Zone == ZoneTableau {
		return g.Tableaus[loc.Pile].Len - loc.Index
	}
	return 1
}

// runBottom returns the bottom card of the lifted unit at loc, the card
// that must satisfy the destination's placement rule.
func (g *GameState) runBottom(loc Location) Card {
	switch loc.Zone {
	case ZoneWaste:
		return g.Waste.Top()
	case ZoneFoundation:
		return g.Foundations[loc.Pile].Top()
	case ZoneTableau:
		return g.Tableaus[loc.Pile].Cards[loc.Index]
	}
	return EmptyCard
}

// CanPlace reports whether the liftable unit at src may legally be placed
// on dst. It implies CanLift(src).
//
// Foundations accept a single card of their own suit: an Ace on an empty
// pile, otherwise exactly one rank above the current top. Tableau piles
// accept a King-bottomed run on an empty pile, otherwise a run whose
// bottom card is opposite in color and one rank below the face-up top.
// Stock and waste are never placement destinations.
func (g *GameState) CanPlace(src, dst Location) bool {
	if !g.CanLift(src) || src.SamePile(dst) {
		return false
	}

	card := g.runBottom(src)

	switch dst.Zone {
	case ZoneFoundation:
		if dst.Pile >= NumFoundations || g.runLength(src) != 1 {
			return false
		}
		if card.Suit() != FoundationSuit(dst.Pile) {
			return false
		}
		pile := &g.Foundations[dst.Pile]
		if pile.Empty() {
			return card.Rank() == RankAce
		}
		return card.Rank() == pile.Top().Rank()+1

	case ZoneTableau:
		if dst.Pile >= NumTableaus {
			return false
		}
		pile := &g.Tableaus[dst.Pile]
		if pile.Empty() {
			return card.Rank() == RankKing
		}
		top := pile.Top()
		return top.FaceUp() && card.OppositeColor(top) && card.Rank()+1 == top.Rank()
	}
	return false
}

// LegalDestinations enumerates every pile where the unit at src may be
// placed right now, foundations first, in stable pile order.
func (g *GameState) LegalDestinations(src Location) []Location {
	if !g.CanLift(src) {
		return nil
	}
	var dests []Location
	for i := uint8(0); i < NumFoundations; i++ {
		if d := FoundationLoc(i); g.CanPlace(src, d) {
			dests = append(dests, d)
		}
	}
	for i := uint8(0); i < NumTableaus; i++ {
		if d := TableauLoc(i, 0); g.CanPlace(src, d) {
			dests = append(dests, d)
		}
	}
	return dests
}

// DestinationMask packs the legal destinations for src into a bitmask:
// bits 0-3 are the foundations, bits 4-10 the tableau piles. Renderers
// use it to highlight targets without allocating the enumeration.
func (g *GameState) DestinationMask(src Location) uint16 {
	if !g.CanLift(src) {
		return 0
	}
	var mask uint16
	for i := uint8(0); i < NumFoundations; i++ {
		if g.CanPlace(src, FoundationLoc(i)) {
			mask |= 1 << i
		}
	}
	for i := uint8(0); i < NumTableaus; i++ {
		if g.CanPlace(src, TableauLoc(i, 0)) {
			mask |= 1 << (NumFoundations + i)
		}
	}
	return mask
}

// HasAnyLegalMove reports whether any liftable unit has at least one
// legal destination. Drawing from the stock does not count; this is the
// exhaustive scan used for stall detection.
func (g *GameState) HasAnyLegalMove() bool {
	if !g.Waste.Empty() && g.hasDestination(WasteLoc()) {
		return true
	}
	for t := uint8(0); t < NumTableaus; t++ {
		pile := &g.Tableaus[t]
		for i := uint8(0); i < pile.Len; i++ {
			loc := TableauLoc(t, i)
			if g.CanLift(loc) && g.hasDestination(loc) {
				return true
			}
		}
	}
	if g.Rules.AllowFoundationToTableau {
		for f := uint8(0); f < NumFoundations; f++ {
			loc := FoundationLoc(f)
			if g.CanLift(loc) && g.hasDestination(loc) {
				return true
			}
		}
	}
	return false
}

// hasDestination reports whether src has at least one legal destination,
// without allocating the full enumeration.
func (g *GameState) hasDestination(src Location) bool {
	for i := uint8(0); i < NumFoundations; i++ {
		if g.CanPlace(src, FoundationLoc(i)) {
			return true
		}
	}
	for i := uint8(0); i < NumTableaus; i++ {
		if g.CanPlace(src, TableauLoc(i, 0)) {
			return true
		}
	}
	return false
}
