package engine

// TableRules holds configurable game rule settings.
type TableRules struct {
	DrawCount                uint8 // cards drawn per stock tap: 1 or 3
	AllowFoundationToTableau bool  // if true, foundation top cards may move back to tableau
	MaxBuries                uint8 // consecutive bury operations allowed in draw-3 stall recovery
}

// DefaultTableRules returns standard draw-1 Klondike rules.
func DefaultTableRules() TableRules {
	return TableRules{
		DrawCount:                1,
		AllowFoundationToTableau: false,
		MaxBuries:                2,
	}
}

// drawCount returns the effective draw count, treating 0 as 1.
func (r *TableRules) drawCount() uint8 {
	if r.DrawCount == 0 {
		return 1
	}
	return r.DrawCount
}
