package game

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorpong/PySolitaire/engine"
)

func TestNewSessionDealsValidBoard(t *testing.T) {
	sess := New(engine.DefaultTableRules(), 42)
	g := sess.Snapshot()
	require.NoError(t, g.Validate())
	assert.Equal(t, uint64(42), sess.Seed)
	assert.Equal(t, 0, sess.MoveCount())
	assert.False(t, sess.Won())
	assert.Equal(t, "New game dealt.", sess.Message())
	_, holding := sess.Holding()
	assert.False(t, holding)
}

func TestSessionZeroSeedIsRandomized(t *testing.T) {
	a := New(engine.DefaultTableRules(), 0)
	b := New(engine.DefaultTableRules(), 0)
	assert.NotZero(t, a.Seed)
	assert.NotEqual(t, a.Seed, b.Seed)
}

func TestActivateStockDraws(t *testing.T) {
	sess := New(engine.DefaultTableRules(), 42)
	out := sess.Activate(engine.StockLoc())
	assert.Equal(t, engine.ResultDrawn, out.Result)
	g := sess.Snapshot()
	assert.Equal(t, uint8(1), g.Waste.Len)
	assert.True(t, g.Waste.Top().FaceUp())
}

func TestUndoRestoresPriorState(t *testing.T) {
	sess := New(engine.DefaultTableRules(), 42)
	before := sess.Snapshot()
	sess.Activate(engine.StockLoc())
	require.True(t, sess.CanUndo())

	require.True(t, sess.Undo())
	assert.Equal(t, before, sess.Snapshot())
	assert.Equal(t, "Undone.", sess.Message())

	assert.False(t, sess.Undo())
	assert.Equal(t, "Nothing to undo.", sess.Message())
}

func TestNewDealResetsEverything(t *testing.T) {
	sess := New(engine.DefaultTableRules(), 42)
	sess.Activate(engine.StockLoc())
	sess.Timer.Start()

	sess.NewDeal(7)
	assert.Equal(t, uint64(7), sess.Seed)
	assert.Equal(t, 0, sess.MoveCount())
	assert.False(t, sess.CanUndo())
	assert.False(t, sess.Timer.Running())
	snap := sess.Snapshot()
	assert.True(t, snap.Waste.Empty())
}

func TestRestoreCarriesElapsedTime(t *testing.T) {
	orig := New(engine.DefaultTableRules(), 42)
	id := uuid.New()
	sess := Restore(id, 42, orig.Snapshot(), 90*time.Second)
	assert.Equal(t, id, sess.ID)
	assert.Equal(t, 90*time.Second, sess.Timer.Elapsed())
	assert.Equal(t, "Game resumed.", sess.Message())
	assert.Equal(t, orig.Snapshot(), sess.Snapshot())
}

// nearWinState builds a board one move from victory: three complete
// foundations, spades stacked to the queen, and the king of spades
// waiting on the waste.
func nearWinState(t *testing.T) engine.GameState {
	t.Helper()
	g := engine.NewGame(1, engine.DefaultTableRules())
	g.Stock = engine.Pile{}
	for s := engine.SuitHearts; s < engine.SuitSpades; s++ {
		for r := engine.RankAce; r <= engine.RankKing; r++ {
			g.Foundations[s].Cards[r-1] = engine.NewCard(s, r).Up()
		}
		g.Foundations[s].Len = 13
	}
	for r := engine.RankAce; r <= engine.RankQueen; r++ {
		g.Foundations[engine.SuitSpades].Cards[r-1] = engine.NewCard(engine.SuitSpades, r).Up()
	}
	g.Foundations[engine.SuitSpades].Len = 12
	g.Waste.Cards[0] = engine.NewCard(engine.SuitSpades, engine.RankKing).Up()
	g.Waste.Len = 1
	g.Flags |= engine.FlagDealt
	require.NoError(t, g.Validate())
	return g
}

func TestWinningMoveFiresOnWin(t *testing.T) {
	sess := Restore(uuid.New(), 1, nearWinState(t), time.Minute)
	sess.Timer.Start()

	var gotMoves int
	var gotElapsed time.Duration
	calls := 0
	sess.OnWin = func(moves int, elapsed time.Duration) {
		calls++
		gotMoves = moves
		gotElapsed = elapsed
	}

	out := sess.Activate(engine.WasteLoc())
	require.Equal(t, engine.ResultPickedUp, out.Result)
	out = sess.Activate(engine.FoundationLoc(engine.SuitSpades))
	require.Equal(t, engine.ResultMoved, out.Result)
	assert.True(t, out.Move.Won)

	assert.True(t, sess.Won())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, gotMoves)
	assert.GreaterOrEqual(t, gotElapsed, time.Minute)
	assert.False(t, sess.Timer.Running())
}

func TestBuryUnavailableOnFreshDeal(t *testing.T) {
	rules := engine.DefaultTableRules()
	rules.DrawCount = 3
	sess := New(rules, 42)
	assert.False(t, sess.Bury())
	assert.Equal(t, "Burying is not available.", sess.Message())
}

func TestCancelReleasesSelection(t *testing.T) {
	sess := Restore(uuid.New(), 1, nearWinState(t), 0)
	out := sess.Activate(engine.WasteLoc())
	require.Equal(t, engine.ResultPickedUp, out.Result)

	out = sess.Cancel()
	assert.Equal(t, engine.ResultCancelled, out.Result)
	_, holding := sess.Holding()
	assert.False(t, holding)
}
