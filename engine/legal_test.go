package engine

import "testing"

// up is shorthand for a face-up card in crafted test states.
func up(suit, rank uint8) Card { return NewCard(suit, rank).Up() }

// emptyBoard returns a GameState with no cards, for crafting specific
// pile arrangements. Such states are not Validate-clean and are only
// used to exercise individual predicates.
func emptyBoard() GameState {
	return GameState{Rules: DefaultTableRules()}
}

func TestCanLiftStock(t *testing.T) {
	g := newDealtGame(t)
	if g.CanLift(StockLoc()) {
		t.Error("stock cards must never be liftable")
	}
}

func TestCanLiftWaste(t *testing.T) {
	g := emptyBoard()
	if g.CanLift(WasteLoc()) {
		t.Error("empty waste should not be liftable")
	}
	g.Waste.push(up(SuitHearts, RankFive))
	if !g.CanLift(WasteLoc()) {
		t.Error("waste top should be liftable")
	}
}

func TestCanLiftFoundationGatedByRules(t *testing.T) {
	g := emptyBoard()
	g.Foundations[0].push(up(SuitHearts, RankAce))

	if g.CanLift(FoundationLoc(0)) {
		t.Error("foundation lift should be disabled by default")
	}
	g.Rules.AllowFoundationToTableau = true
	if !g.CanLift(FoundationLoc(0)) {
		t.Error("foundation lift should follow the table rules")
	}
	if g.CanLift(FoundationLoc(1)) {
		t.Error("empty foundation should not be liftable")
	}
}

func TestCanLiftTableau(t *testing.T) {
	g := emptyBoard()
	g.Tableaus[0].push(NewCard(SuitClubs, RankNine)) // face-down
	g.Tableaus[0].push(up(SuitHearts, RankEight))
	g.Tableaus[0].push(up(SuitSpades, RankSeven))

	if g.CanLift(TableauLoc(0, 0)) {
		t.Error("face-down card should not be liftable")
	}
	if !g.CanLift(TableauLoc(0, 1)) {
		t.Error("valid descending alternating run should be liftable")
	}
	if !g.CanLift(TableauLoc(0, 2)) {
		t.Error("single face-up card should be liftable")
	}
	if g.CanLift(TableauLoc(0, 3)) {
		t.Error("index past pile end should not be liftable")
	}
	if g.CanLift(TableauLoc(9, 0)) {
		t.Error("out-of-range pile should not be liftable")
	}
}

func TestCanLiftRejectsBrokenRun(t *testing.T) {
	g := emptyBoard()
	// 8♥ then 7♥: correct ranks, same color.
	g.Tableaus[0].push(up(SuitHearts, RankEight))
	g.Tableaus[0].push(up(SuitHearts, RankSeven))
	if g.CanLift(TableauLoc(0, 0)) {
		t.Error("same-color run should not be liftable as a group")
	}
	if !g.CanLift(TableauLoc(0, 1)) {
		t.Error("the top card alone should still be liftable")
	}

	g = emptyBoard()
	// 8♥ then 6♠: rank gap.
	g.Tableaus[0].push(up(SuitHearts, RankEight))
	g.Tableaus[0].push(up(SuitSpades, RankSix))
	if g.CanLift(TableauLoc(0, 0)) {
		t.Error("non-consecutive run should not be liftable as a group")
	}
}

func TestCanPlaceFoundation(t *testing.T) {
	g := emptyBoard()
	g.Waste.push(up(SuitHearts, RankAce))

	if !g.CanPlace(WasteLoc(), FoundationLoc(0)) {
		t.Error("ace of hearts should be placeable on the hearts foundation")
	}
	if g.CanPlace(WasteLoc(), FoundationLoc(2)) {
		t.Error("ace of hearts should not fit the clubs foundation")
	}

	g.Foundations[0].push(up(SuitHearts, RankAce))
	g.Waste.Cards[0] = up(SuitHearts, RankTwo)
	if !g.CanPlace(WasteLoc(), FoundationLoc(0)) {
		t.Error("two of hearts should stack on the ace")
	}
	g.Waste.Cards[0] = up(SuitHearts, RankThree)
	if g.CanPlace(WasteLoc(), FoundationLoc(0)) {
		t.Error("three of hearts should not skip the two")
	}
	g.Waste.Cards[0] = up(SuitDiamonds, RankTwo)
	if g.CanPlace(WasteLoc(), FoundationLoc(0)) {
		t.Error("foundation must stay single-suit")
	}
}

func TestCanPlaceFoundationRejectsRuns(t *testing.T) {
	g := emptyBoard()
	g.Tableaus[0].push(up(SuitHearts, RankTwo))
	g.Tableaus[0].push(up(SuitSpades, RankAce))

	if g.CanPlace(TableauLoc(0, 0), FoundationLoc(0)) {
		t.Error("multi-card runs must not move to a foundation")
	}
	if !g.CanPlace(TableauLoc(0, 1), FoundationLoc(3)) {
		t.Error("the single ace on top should be placeable")
	}
}

func TestCanPlaceTableau(t *testing.T) {
	g := emptyBoard()
	g.Waste.push(up(SuitHearts, RankTen))
	g.Tableaus[0].push(up(SuitSpades, RankJack))

	if !g.CanPlace(WasteLoc(), TableauLoc(0, 0)) {
		t.Error("red ten should stack on black jack")
	}

	g.Waste.Cards[0] = up(SuitDiamonds, RankNine)
	if g.CanPlace(WasteLoc(), TableauLoc(0, 0)) {
		t.Error("rank gap should be rejected")
	}

	g.Waste.Cards[0] = up(SuitClubs, RankTen)
	if g.CanPlace(WasteLoc(), TableauLoc(0, 0)) {
		t.Error("same-color stack should be rejected")
	}
}

func TestCanPlaceEmptyTableauWantsKing(t *testing.T) {
	g := emptyBoard()
	g.Waste.push(up(SuitHearts, RankKing))
	if !g.CanPlace(WasteLoc(), TableauLoc(4, 0)) {
		t.Error("king should be placeable on an empty tableau pile")
	}
	g.Waste.Cards[0] = up(SuitHearts, RankQueen)
	if g.CanPlace(WasteLoc(), TableauLoc(4, 0)) {
		t.Error("non-king should not be placeable on an empty tableau pile")
	}
}

func TestCanPlaceOnFaceDownTop(t *testing.T) {
	g := emptyBoard()
	g.Tableaus[0].push(NewCard(SuitSpades, RankJack)) // face-down
	g.Waste.push(up(SuitHearts, RankTen))
	if g.CanPlace(WasteLoc(), TableauLoc(0, 0)) {
		t.Error("cannot place on a face-down top card")
	}
}

func TestCanPlaceNeverOntoStockOrWaste(t *testing.T) {
	g := emptyBoard()
	g.Waste.push(up(SuitHearts, RankFive))
	g.Tableaus[0].push(up(SuitSpades, RankSix))

	if g.CanPlace(TableauLoc(0, 0), StockLoc()) {
		t.Error("stock is never a destination")
	}
	if g.CanPlace(TableauLoc(0, 0), WasteLoc()) {
		t.Error("waste is never a destination")
	}
}

// Holding a liftable Ace from the waste, the destinations include the
// matching empty foundation and no non-empty tableau pile.
func TestLegalDestinationsWasteAce(t *testing.T) {
	g := emptyBoard()
	g.Waste.push(up(SuitClubs, RankAce))
	g.Tableaus[0].push(up(SuitSpades, RankNine))

	dests := g.LegalDestinations(WasteLoc())
	if len(dests) != 1 {
		t.Fatalf("got %d destinations, want 1: %v", len(dests), dests)
	}
	want := FoundationLoc(2)
	if dests[0] != want {
		t.Errorf("destination = %v, want %v", dests[0], want)
	}
}

func TestLegalDestinationsOrdering(t *testing.T) {
	g := emptyBoard()
	// A red queen placeable on two black kings.
	g.Waste.push(up(SuitDiamonds, RankQueen))
	g.Tableaus[2].push(up(SuitSpades, RankKing))
	g.Tableaus[5].push(up(SuitClubs, RankKing))

	dests := g.LegalDestinations(WasteLoc())
	want := []Location{TableauLoc(2, 0), TableauLoc(5, 0)}
	if len(dests) != len(want) {
		t.Fatalf("got %d destinations, want %d", len(dests), len(want))
	}
	for i := range want {
		if dests[i] != want[i] {
			t.Errorf("dests[%d] = %v, want %v", i, dests[i], want[i])
		}
	}
}

func TestHasAnyLegalMove(t *testing.T) {
	g := emptyBoard()
	if g.HasAnyLegalMove() {
		t.Error("empty board has no moves")
	}

	g.Waste.push(up(SuitHearts, RankAce))
	if !g.HasAnyLegalMove() {
		t.Error("waste ace to foundation should be found")
	}

	g = emptyBoard()
	g.Tableaus[0].push(up(SuitSpades, RankSeven))
	g.Tableaus[1].push(up(SuitHearts, RankEight))
	if !g.HasAnyLegalMove() {
		t.Error("tableau-to-tableau move should be found")
	}

	g = emptyBoard()
	g.Tableaus[0].push(NewCard(SuitSpades, RankSeven)) // face-down only
	if g.HasAnyLegalMove() {
		t.Error("face-down cards provide no moves")
	}
}

func TestHasAnyLegalMoveFoundationMoveBack(t *testing.T) {
	g := emptyBoard()
	g.Foundations[0].push(up(SuitHearts, RankAce))
	g.Foundations[0].push(up(SuitHearts, RankTwo))
	g.Tableaus[0].push(up(SuitSpades, RankThree))

	if g.HasAnyLegalMove() {
		t.Error("move-back disabled: no moves expected")
	}
	g.Rules.AllowFoundationToTableau = true
	if !g.HasAnyLegalMove() {
		t.Error("move-back enabled: 2♥ onto 3♠ should be found")
	}
}

func TestDestinationMask(t *testing.T) {
	g := board()

	// waste 7♥ fits the black eights on tableaus 0 and 2
	want := uint16(1<<(NumFoundations+0) | 1<<(NumFoundations+2))
	if got := g.DestinationMask(WasteLoc()); got != want {
		t.Errorf("DestinationMask = %#x, want %#x", got, want)
	}

	if got := g.DestinationMask(StockLoc()); got != 0 {
		t.Errorf("stock is never liftable, mask = %#x", got)
	}

	g.Waste = Pile{}
	g.Waste.push(up(SuitClubs, RankAce))
	want = uint16(1 << SuitClubs)
	if got := g.DestinationMask(WasteLoc()); got != want {
		t.Errorf("ace mask = %#x, want %#x", got, want)
	}
}
