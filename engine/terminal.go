package engine

// Terminal-condition queries: win, stall (loss), and bury eligibility.

// IsStalled reports the loss condition.
//
// Draw-1: two consecutive full passes through the stock during which no
// card moved and no legal move existed.
//
// Draw-3: the player is offered the bury recovery instead; the game is
// only stalled once the bury budget is spent and a further pass still
// produced nothing.
func (g *GameState) IsStalled() bool {
	if g.Rules.drawCount() == 1 {
		return g.StallPasses >= 2
	}
	return g.Burials >= g.Rules.MaxBuries && g.StallPasses >= 1
}

// CanOfferBury reports whether the caller should offer the draw-3 bury
// recovery: the stock has just been exhausted with nothing gained and
// the bury budget is not yet spent.
func (g *GameState) CanOfferBury() bool {
	if g.Rules.drawCount() != 3 || g.Burials >= g.Rules.MaxBuries {
		return false
	}
	if g.Flags&FlagProgress != 0 {
		return false
	}
	return g.Stock.Empty() && !g.Waste.Empty()
}

// StateHash returns a fast 64-bit FNV-1a hash of the board, used by
// tests to compare states for bit-for-bit reproducibility.
func (g *GameState) StateHash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)

	mix := func(v uint64) {
		h ^= v
		h *= prime
	}

	hashPile := func(p *Pile) {
		for i := uint8(0); i < p.Len; i++ {
			mix(uint64(p.Cards[i]))
		}
		mix(uint64(p.Len) << 8)
	}

	hashPile(&g.Stock)
	hashPile(&g.Waste)
	for i := range g.Foundations {
		hashPile(&g.Foundations[i])
	}
	for i := range g.Tableaus {
		hashPile(&g.Tableaus[i])
	}
	mix(uint64(g.MoveCount) << 16)
	mix(uint64(g.PassCount) << 32)
	mix(uint64(g.Flags) << 40)
	return h
}
