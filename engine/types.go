package engine

// Suit constants, packed into bits 4-5 of Card. The order doubles as the
// fixed foundation layout: foundation i accepts only suit i.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
)

// Rank constants, packed into the lower 4 bits of Card. Ace is low.
const (
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

// Card is a packed uint8: bit 6 = face-up flag, bits 4-5 = suit,
// bits 0-3 = rank (1-13). Exactly one card exists per (suit, rank) pair.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

const faceUpBit uint8 = 1 << 6

// NewCard constructs a face-down Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit&0x03)<<4 | rank&0x0F)
}

// Suit returns the suit bits (4-5).
func (c Card) Suit() uint8 { return (uint8(c) >> 4) & 0x03 }

// Rank returns the rank bits (1-13).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// FaceUp reports whether the card is face-up.
func (c Card) FaceUp() bool { return uint8(c)&faceUpBit != 0 }

// Up returns the card flipped face-up.
func (c Card) Up() Card { return Card(uint8(c) | faceUpBit) }

// Down returns the card flipped face-down.
func (c Card) Down() Card { return Card(uint8(c) &^ faceUpBit) }

// Flip returns the card with its face orientation toggled.
func (c Card) Flip() Card { return Card(uint8(c) ^ faceUpBit) }

// Is reports identity regardless of face orientation.
func (c Card) Is(other Card) bool { return c.Down() == other.Down() }

// IsRed reports whether the card's suit is hearts or diamonds.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitHearts || s == SuitDiamonds
}

// OppositeColor reports whether c and other have different colors.
func (c Card) OppositeColor(other Card) bool {
	return c.IsRed() != other.IsRed()
}

var rankNames = [14]string{"?", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var suitNames = [4]string{"♥", "♦", "♣", "♠"}

// String renders the card for debug output. Face-down cards render as "##".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	if !c.FaceUp() {
		return "##"
	}
	r := c.Rank()
	if r == 0 || r > RankKing {
		return "??"
	}
	return rankNames[r] + suitNames[c.Suit()]
}

// SuitName returns the lowercase suit name, used by the persistence schema.
func SuitName(suit uint8) string {
	names := [4]string{"hearts", "diamonds", "clubs", "spades"}
	if suit > SuitSpades {
		return ""
	}
	return names[suit]
}

// SuitFromName is the inverse of SuitName. Returns ok=false for unknown names.
func SuitFromName(name string) (uint8, bool) {
	switch name {
	case "hearts":
		return SuitHearts, true
	case "diamonds":
		return SuitDiamonds, true
	case "clubs":
		return SuitClubs, true
	case "spades":
		return SuitSpades, true
	}
	return 0, false
}

// Zone identifies one of the four board areas.
type Zone uint8

const (
	ZoneStock Zone = iota
	ZoneWaste
	ZoneFoundation
	ZoneTableau
)

// String returns the zone name.
func (z Zone) String() string {
	switch z {
	case ZoneStock:
		return "stock"
	case ZoneWaste:
		return "waste"
	case ZoneFoundation:
		return "foundation"
	case ZoneTableau:
		return "tableau"
	}
	return "unknown"
}

// Location addresses a pile position on the board. Pile selects the pile
// within the zone (0-3 for foundations, 0-6 for tableau, ignored
// otherwise). Index selects a card within a tableau pile and is ignored
// for the other zones, where only the top card is addressable.
type Location struct {
	Zone  Zone
	Pile  uint8
	Index uint8
}

// StockLoc returns the stock location.
func StockLoc() Location { return Location{Zone: ZoneStock} }

// WasteLoc returns the waste location.
func WasteLoc() Location { return Location{Zone: ZoneWaste} }

// FoundationLoc returns the location of foundation pile i (0-3).
func FoundationLoc(i uint8) Location {
	return Location{Zone: ZoneFoundation, Pile: i}
}

// TableauLoc returns the location of card index within tableau pile (0-6).
func TableauLoc(pile, index uint8) Location {
	return Location{Zone: ZoneTableau, Pile: pile, Index: index}
}

// SamePile reports whether two locations address the same pile,
// ignoring the card index.
func (l Location) SamePile(other Location) bool {
	return l.Zone == other.Zone && l.Pile == other.Pile
}
