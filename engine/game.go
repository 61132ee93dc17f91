// Package engine implements the Klondike solitaire rules.
//
// This package provides a self-contained, allocation-light game engine:
// the deal, the move-legality predicates, the move executor, the
// pick-up/drop selection machine, and the bounded undo stack. It performs
// no I/O; rendering, input decoding, and persistence live in the layers
// that consume it.
package engine

import "fmt"

const (
	DeckSize       = 52
	NumFoundations = 4
	NumTableaus    = 7
	FoundationSize = 13
	// TableauDealSize cards go to the tableau during the deal; the rest
	// form the stock.
	TableauDealSize = 28
)

// Pile is an ordered stack of cards. Cards[0] is the bottom; the top is
// Cards[Len-1]. A fixed backing array keeps GameState a flat value type.
type Pile struct {
	Cards [DeckSize]Card
	Len   uint8
}

// Empty reports whether the pile holds no cards.
func (p *Pile) Empty() bool { return p.Len == 0 }

// Top returns the top card, or EmptyCard if the pile is empty.
func (p *Pile) Top() Card {
	if p.Len == 0 {
		return EmptyCard
	}
	return p.Cards[p.Len-1]
}

// push appends a card to the top of the pile.
func (p *Pile) push(c Card) {
	p.Cards[p.Len] = c
	p.Len++
}

// pop removes and returns the top card, zeroing the vacated slot so
// pile equality never depends on stale cells. The pile must be non-empty.
func (p *Pile) pop() Card {
	p.Len--
	c := p.Cards[p.Len]
	p.Cards[p.Len] = 0
	return c
}

// GameState holds the complete, self-contained state of a Klondike game.
// It is a flat value type (no pointers, no slices), so snapshots for undo
// and determinism checks are plain struct copies.
type GameState struct {
	Stock       Pile
	Waste       Pile
	Foundations [NumFoundations]Pile
	Tableaus    [NumTableaus]Pile

	MoveCount   uint16
	PassCount   uint8 // completed stock recycles
	StallPasses uint8 // consecutive recycles with no card moved in between
	Burials     uint8 // consecutive bury operations (draw-3 stall recovery)
	Flags       uint16
	RNG         uint64
	Rules       TableRules
}

// Flags bitfield.
const (
	FlagWon      uint16 = 1 << 0
	FlagDealt    uint16 = 1 << 1
	FlagProgress uint16 = 1 << 2 // a card move succeeded since the last recycle
)

// IsWon reports whether all four foundations are complete.
func (g *GameState) IsWon() bool { return g.Flags&FlagWon != 0 }

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewGame initializes a new GameState with the given seed and rules.
// The 52-card deck is built face-down in the stock but not yet shuffled
// or dealt. The same seed always produces the same game.
func NewGame(seed uint64, rules TableRules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules

	for suit := uint8(0); suit <= SuitSpades; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			g.Stock.push(NewCard(suit, rank))
		}
	}
	return g
}

// Deal shuffles the deck and lays out the board: tableau pile i receives
// i+1 cards with only the last one face-up, and the remaining 24 cards
// stay in the stock face-down.
//
// Deal panics if the stock does not hold exactly the full deck; that is a
// programming error in game setup, not a reachable runtime condition.
func (g *GameState) Deal() {
	if g.Stock.Len != DeckSize {
		panic(fmt.Sprintf("engine: deal from corrupt deck (%d cards)", g.Stock.Len))
	}

	// Fisher-Yates shuffle.
	for i := int(g.Stock.Len) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Stock.Cards[i], g.Stock.Cards[j] = g.Stock.Cards[j], g.Stock.Cards[i]
	}

	for pile := uint8(0); pile < NumTableaus; pile++ {
		for n := uint8(0); n <= pile; n++ {
			card := g.Stock.pop()
			if n == pile {
				card = card.Up()
			}
			g.Tableaus[pile].push(card)
		}
	}

	g.Flags |= FlagDealt
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// FoundationSuit returns the suit accepted by foundation pile i.
// The layout is fixed: hearts, diamonds, clubs, spades.
func FoundationSuit(i uint8) uint8 { return i }

// PileAt returns the pile addressed by the location, or nil if the
// location is out of range.
func (g *GameState) PileAt(loc Location) *Pile {
	switch loc.Zone {
	case ZoneStock:
		return &g.Stock
	case ZoneWaste:
		return &g.Waste
	case ZoneFoundation:
		if loc.Pile < NumFoundations {
			return &g.Foundations[loc.Pile]
		}
	case ZoneTableau:
		if loc.Pile < NumTableaus {
			return &g.Tableaus[loc.Pile]
		}
	}
	return nil
}

// CardAt returns the card addressed by the location, or EmptyCard.
// For stock, waste, and foundation locations this is the pile top.
func (g *GameState) CardAt(loc Location) Card {
	p := g.PileAt(loc)
	if p == nil || p.Empty() {
		return EmptyCard
	}
	if loc.Zone == ZoneTableau {
		if loc.Index >= p.Len {
			return EmptyCard
		}
		return p.Cards[loc.Index]
	}
	return p.Top()
}

// FoundationTotal returns the number of cards across all foundations.
func (g *GameState) FoundationTotal() int {
	total := 0
	for i := range g.Foundations {
		total += int(g.Foundations[i].Len)
	}
	return total
}

// Validate checks the structural invariants: every one of the 52 cards
// appears in exactly one pile, stock cards are face-down, waste and
// foundation cards are face-up, and no tableau pile has a face-down card
// above a face-up one. Returns nil when the state is consistent.
func (g *GameState) Validate() error {
	var seen [DeckSize]bool
	count := 0

	mark := func(c Card, where string) error {
		if c.Rank() < RankAce || c.Rank() > RankKing {
			return fmt.Errorf("malformed card %#x in %s", uint8(c), where)
		}
		idx := int(c.Suit())*FoundationSize + int(c.Rank()) - 1
		if seen[idx] {
			return fmt.Errorf("duplicate card %s in %s", c.Up(), where)
		}
		seen[idx] = true
		count++
		return nil
	}

	for i := uint8(0); i < g.Stock.Len; i++ {
		c := g.Stock.Cards[i]
		if c.FaceUp() {
			return fmt.Errorf("face-up card %s in stock", c)
		}
		if err := mark(c, "stock"); err != nil {
			return err
		}
	}
	for i := uint8(0); i < g.Waste.Len; i++ {
		c := g.Waste.Cards[i]
		if !c.FaceUp() {
			return fmt.Errorf("face-down card in waste at %d", i)
		}
		if err := mark(c, "waste"); err != nil {
			return err
		}
	}
	for f := range g.Foundations {
		pile := &g.Foundations[f]
		for i := uint8(0); i < pile.Len; i++ {
			c := pile.Cards[i]
			if !c.FaceUp() {
				return fmt.Errorf("face-down card in foundation %d", f)
			}
			if c.Suit() != FoundationSuit(uint8(f)) {
				return fmt.Errorf("card %s on foundation %d (wrong suit)", c, f)
			}
			if c.Rank() != uint8(i)+RankAce {
				return fmt.Errorf("card %s at foundation %d position %d (out of order)", c, f, i)
			}
			if err := mark(c, "foundation"); err != nil {
				return err
			}
		}
	}
	for t := range g.Tableaus {
		pile := &g.Tableaus[t]
		sawFaceUp := false
		for i := uint8(0); i < pile.Len; i++ {
			c := pile.Cards[i]
			if c.FaceUp() {
				sawFaceUp = true
			} else if sawFaceUp {
				return fmt.Errorf("face-down card above face-up card in tableau %d", t)
			}
			if err := mark(c, "tableau"); err != nil {
				return err
			}
		}
	}

	if count != DeckSize {
		return fmt.Errorf("board holds %d cards, want %d", count, DeckSize)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState for undo support.
// No heap allocation; saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
