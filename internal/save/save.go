// Package save persists an in-progress game to a JSON file and restores
// it byte-identically: pile order, face orientation, draw mode, move and
// pass counters, and elapsed play time all round-trip. The engine owns
// no file format; this package owns the schema.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gorpong/PySolitaire/engine"
	"github.com/gorpong/PySolitaire/internal/game"
)

// ErrNoSave is returned by Load when no saved game exists.
var ErrNoSave = errors.New("no saved game")

// Card is the on-disk card representation.
type Card struct {
	Rank   uint8  `json:"rank"`
	Suit   string `json:"suit"`
	FaceUp bool   `json:"face_up"`
}

// State is the on-disk board representation.
type State struct {
	Stock       []Card   `json:"stock"`
	Waste       []Card   `json:"waste"`
	Foundations [][]Card `json:"foundations"`
	Tableau     [][]Card `json:"tableau"`

	DrawCount                uint8 `json:"draw_count"`
	AllowFoundationToTableau bool  `json:"allow_foundation_to_tableau"`
	MaxBuries                uint8 `json:"max_buries"`

	MoveCount    uint16 `json:"move_count"`
	PassCount    uint8  `json:"pass_count"`
	StallPasses  uint8  `json:"stall_passes"`
	Burials      uint8  `json:"burials"`
	MadeProgress bool   `json:"made_progress"`
	Won          bool   `json:"won"`
	RNG          uint64 `json:"rng"`
}

// File is the complete save-file schema.
type File struct {
	ID             string    `json:"id"`
	Seed           uint64    `json:"seed"`
	SavedAt        time.Time `json:"saved_at"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	State          State     `json:"state"`
}

func encodeCard(c engine.Card) Card {
	return Card{
		Rank:   c.Rank(),
		Suit:   engine.SuitName(c.Suit()),
		FaceUp: c.FaceUp(),
	}
}

func decodeCard(c Card) (engine.Card, error) {
	suit, ok := engine.SuitFromName(c.Suit)
	if !ok {
		return engine.EmptyCard, fmt.Errorf("unknown suit %q", c.Suit)
	}
	if c.Rank < engine.RankAce || c.Rank > engine.RankKing {
		return engine.EmptyCard, fmt.Errorf("rank %d out of range", c.Rank)
	}
	card := engine.NewCard(suit, c.Rank)
	if c.FaceUp {
		card = card.Up()
	}
	return card, nil
}

func encodePile(p *engine.Pile) []Card {
	out := make([]Card, 0, p.Len)
	for i := uint8(0); i < p.Len; i++ {
		out = append(out, encodeCard(p.Cards[i]))
	}
	return out
}

func decodePile(cards []Card, into *engine.Pile) error {
	if len(cards) > engine.DeckSize {
		return fmt.Errorf("pile holds %d cards", len(cards))
	}
	for i, c := range cards {
		card, err := decodeCard(c)
		if err != nil {
			return err
		}
		into.Cards[i] = card
	}
	into.Len = uint8(len(cards))
	return nil
}

// EncodeState maps a GameState onto the on-disk schema.
func EncodeState(g engine.GameState) State {
	st := State{
		Stock:                    encodePile(&g.Stock),
		Waste:                    encodePile(&g.Waste),
		Foundations:              make([][]Card, engine.NumFoundations),
		Tableau:                  make([][]Card, engine.NumTableaus),
		DrawCount:                g.Rules.DrawCount,
		AllowFoundationToTableau: g.Rules.AllowFoundationToTableau,
		MaxBuries:                g.Rules.MaxBuries,
		MoveCount:                g.MoveCount,
		PassCount:                g.PassCount,
		StallPasses:              g.StallPasses,
		Burials:                  g.Burials,
		MadeProgress:             g.Flags&engine.FlagProgress != 0,
		Won:                      g.IsWon(),
		RNG:                      g.RNG,
	}
	for i := range g.Foundations {
		st.Foundations[i] = encodePile(&g.Foundations[i])
	}
	for i := range g.Tableaus {
		st.Tableau[i] = encodePile(&g.Tableaus[i])
	}
	return st
}

// DecodeState rebuilds a GameState from the schema and verifies the
// structural invariants, rejecting corrupt or tampered files.
func DecodeState(st State) (engine.GameState, error) {
	var g engine.GameState
	if len(st.Foundations) != engine.NumFoundations {
		return g, fmt.Errorf("save has %d foundations", len(st.Foundations))
	}
	if len(st.Tableau) != engine.NumTableaus {
		return g, fmt.Errorf("save has %d tableau piles", len(st.Tableau))
	}

	if err := decodePile(st.Stock, &g.Stock); err != nil {
		return g, fmt.Errorf("stock: %w", err)
	}
	if err := decodePile(st.Waste, &g.Waste); err != nil {
		return g, fmt.Errorf("waste: %w", err)
	}
	for i := range g.Foundations {
		if err := decodePile(st.Foundations[i], &g.Foundations[i]); err != nil {
			return g, fmt.Errorf("foundation %d: %w", i, err)
		}
	}
	for i := range g.Tableaus {
		if err := decodePile(st.Tableau[i], &g.Tableaus[i]); err != nil {
			return g, fmt.Errorf("tableau %d: %w", i, err)
		}
	}

	g.Rules = engine.TableRules{
		DrawCount:                st.DrawCount,
		AllowFoundationToTableau: st.AllowFoundationToTableau,
		MaxBuries:                st.MaxBuries,
	}
	g.MoveCount = st.MoveCount
	g.PassCount = st.PassCount
	g.StallPasses = st.StallPasses
	g.Burials = st.Burials
	g.RNG = st.RNG
	g.Flags = engine.FlagDealt
	if st.MadeProgress {
		g.Flags |= engine.FlagProgress
	}
	if st.Won {
		g.Flags |= engine.FlagWon
	}

	if err := g.Validate(); err != nil {
		return g, fmt.Errorf("saved state is corrupt: %w", err)
	}
	return g, nil
}

// Manager reads and writes the single save slot under a directory.
type Manager struct {
	dir string
	log *logrus.Entry
}

// NewManager creates the save directory if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Manager{
		dir: dir,
		log: logrus.WithField("dir", dir),
	}, nil
}

func (m *Manager) path() string { return filepath.Join(m.dir, "save.json") }

// Exists reports whether a saved game is present.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path())
	return err == nil
}

// Save writes the session to disk, replacing any previous save.
func (m *Manager) Save(s *game.Session) error {
	f := File{
		ID:             s.ID.String(),
		Seed:           s.Seed,
		SavedAt:        time.Now().UTC(),
		ElapsedSeconds: s.Timer.Elapsed().Seconds(),
		State:          EncodeState(s.Snapshot()),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}
	if err := os.WriteFile(m.path(), data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	m.log.WithField("moves", f.State.MoveCount).Debug("game saved")
	return nil
}

// Load restores the saved session, or ErrNoSave when none exists.
func (m *Manager) Load() (*game.Session, error) {
	data, err := os.ReadFile(m.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal save: %w", err)
	}
	state, err := DecodeState(f.State)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(f.ID)
	if err != nil {
		id = uuid.New()
	}

	elapsed := time.Duration(f.ElapsedSeconds * float64(time.Second))
	m.log.WithField("moves", state.MoveCount).Debug("game loaded")
	return game.Restore(id, f.Seed, state, elapsed), nil
}

// Delete removes the save slot. Deleting a missing save is not an error.
func (m *Manager) Delete() error {
	err := os.Remove(m.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
