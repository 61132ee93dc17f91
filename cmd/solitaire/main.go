// Command solitaire plays Klondike solitaire in the terminal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/gorpong/PySolitaire/engine"
	"github.com/gorpong/PySolitaire/internal/config"
	"github.com/gorpong/PySolitaire/internal/game"
	"github.com/gorpong/PySolitaire/internal/leaderboard"
	"github.com/gorpong/PySolitaire/internal/save"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cmd := &cli.Command{
		Name:  "solitaire",
		Usage: "play Klondike solitaire in the terminal",
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "start a new game",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "draw", Usage: "cards per draw (1 or 3)"},
					&cli.StringFlag{Name: "seed", Usage: "fixed shuffle seed (decimal)"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig(log)
					if err != nil {
						return err
					}
					if d := int(c.Int("draw")); d != 0 {
						if d != 1 && d != 3 {
							return fmt.Errorf("--draw must be 1 or 3, got %d", d)
						}
						cfg.DrawCount = d
					}
					seed := cfg.Seed
					if s := c.String("seed"); s != "" {
						seed, err = strconv.ParseUint(s, 10, 64)
						if err != nil {
							return fmt.Errorf("parse --seed: %w", err)
						}
					}
					rules := engine.DefaultTableRules()
					rules.DrawCount = uint8(cfg.DrawCount)
					sess := game.New(rules, seed)
					return play(ctx, cfg, sess, log)
				},
			},
			{
				Name:  "resume",
				Usage: "resume the saved game",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig(log)
					if err != nil {
						return err
					}
					mgr, err := save.NewManager(cfg.SaveDir)
					if err != nil {
						return err
					}
					sess, err := mgr.Load()
					if err != nil {
						return err
					}
					return play(ctx, cfg, sess, log)
				},
			},
			{
				Name:  "leaderboard",
				Usage: "show the best finished games",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "draw", Value: 1, Usage: "draw mode to show (1 or 3)"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig(log)
					if err != nil {
						return err
					}
					store, err := leaderboard.Open(cfg.LeaderboardPath)
					if err != nil {
						return err
					}
					defer store.Close()
					return printLeaderboard(ctx, os.Stdout, store, int(c.Int("draw")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("solitaire exited")
	}
}

func loadConfig(log *logrus.Logger) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return cfg, nil
}

// play runs the line-oriented game loop until quit or win.
func play(ctx context.Context, cfg config.Config, sess *game.Session, log *logrus.Logger) error {
	mgr, err := save.NewManager(cfg.SaveDir)
	if err != nil {
		return err
	}

	out := os.Stdout
	in := bufio.NewScanner(os.Stdin)
	sess.Timer.Start()

	fmt.Fprintln(out, "Commands: s=draw  w=waste  f1-f4  t1-t7 [depth]  c=cancel  u=undo  b=bury  save  q=quit")
	renderBoard(out, sess)

	for {
		if sess.Won() {
			return finishWin(ctx, cfg, sess, mgr, out, in)
		}
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return in.Err()
		}
		line := strings.TrimSpace(strings.ToLower(in.Text()))
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "q", "quit":
			if err := mgr.Save(sess); err != nil {
				log.WithError(err).Warn("could not save game on quit")
			} else {
				fmt.Fprintln(out, "Game saved.")
			}
			return nil
		case "save":
			if err := mgr.Save(sess); err != nil {
				return err
			}
			fmt.Fprintln(out, "Game saved.")
			continue
		case "u", "undo":
			sess.Undo()
		case "c", "cancel":
			sess.Cancel()
		case "b", "bury":
			if !sess.Bury() {
				fmt.Fprintln(out, "Bury is not available.")
			}
		case "help", "h", "?":
			fmt.Fprintln(out, "Commands: s=draw  w=waste  f1-f4  t1-t7 [depth]  c=cancel  u=undo  b=bury  save  q=quit")
			continue
		default:
			loc, err := parseLocation(fields, sess.Snapshot())
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			sess.Activate(loc)
		}

		if msg := sess.Message(); msg != "" {
			fmt.Fprintln(out, msg)
		}
		renderBoard(out, sess)
		if sess.Stalled() {
			fmt.Fprintln(out, "No moves remain. Press u to undo or q to quit.")
		}
	}
}

func finishWin(ctx context.Context, cfg config.Config, sess *game.Session, mgr *save.Manager, out io.Writer, in *bufio.Scanner) error {
	elapsed := sess.Timer.Elapsed()
	fmt.Fprintf(out, "You won in %d moves, %s.\n", sess.MoveCount(), elapsed.Round(time.Second))
	_ = mgr.Delete()

	store, err := leaderboard.Open(cfg.LeaderboardPath)
	if err != nil {
		return err
	}
	defer store.Close()

	drawMode := int(sess.Rules.DrawCount)
	if drawMode == 0 {
		drawMode = 1
	}
	ok, err := store.Qualifies(ctx, drawMode, sess.MoveCount(), int(elapsed.Seconds()))
	if err != nil || !ok {
		return err
	}

	fmt.Fprint(out, "Enter your initials (3 letters): ")
	if !in.Scan() {
		return in.Err()
	}
	pos, err := store.Add(ctx, leaderboard.Entry{
		Initials:    in.Text(),
		Moves:       sess.MoveCount(),
		TimeSeconds: int(elapsed.Seconds()),
		DrawMode:    drawMode,
	})
	if err != nil {
		return err
	}
	if pos > 0 {
		fmt.Fprintf(out, "You placed #%d!\n", pos)
	}
	return printLeaderboard(ctx, out, store, drawMode)
}

// parseLocation turns a command like "w", "f2" or "t3 4" into a board
// location. A tableau depth counts face-up cards from the top; depth 1
// is the top card.
func parseLocation(fields []string, g engine.GameState) (engine.Location, error) {
	tok := fields[0]
	switch {
	case tok == "s" || tok == "stock":
		return engine.StockLoc(), nil
	case tok == "w" || tok == "waste":
		return engine.WasteLoc(), nil
	case len(tok) == 2 && tok[0] == 'f':
		i := int(tok[1] - '1')
		if i < 0 || i >= engine.NumFoundations {
			return engine.Location{}, fmt.Errorf("foundations are f1-f%d", engine.NumFoundations)
		}
		return engine.FoundationLoc(uint8(i)), nil
	case len(tok) == 2 && tok[0] == 't':
		i := int(tok[1] - '1')
		if i < 0 || i >= engine.NumTableaus {
			return engine.Location{}, fmt.Errorf("tableaus are t1-t%d", engine.NumTableaus)
		}
		depth := 1
		if len(fields) > 1 {
			d, err := strconv.Atoi(fields[1])
			if err != nil || d < 1 {
				return engine.Location{}, fmt.Errorf("depth must be a positive number")
			}
			depth = d
		}
		pile := g.Tableaus[i]
		if int(pile.Len) < depth {
			return engine.Location{}, fmt.Errorf("t%d has only %d cards", i+1, pile.Len)
		}
		return engine.TableauLoc(uint8(i), pile.Len-uint8(depth)), nil
	}
	return engine.Location{}, fmt.Errorf("unknown command %q (try help)", tok)
}

func renderBoard(out io.Writer, sess *game.Session) {
	g := sess.Snapshot()

	fmt.Fprintf(out, "\nStock: %2d  Waste: %-4s  ", g.Stock.Len, topLabel(&g.Waste))
	for i := range g.Foundations {
		fmt.Fprintf(out, "F%d: %-4s ", i+1, topLabel(&g.Foundations[i]))
	}
	fmt.Fprintf(out, " Moves: %d\n", g.MoveCount)

	for i := range g.Tableaus {
		fmt.Fprintf(out, "  t%d:", i+1)
		p := &g.Tableaus[i]
		if p.Empty() {
			fmt.Fprint(out, " --")
		}
		for j := uint8(0); j < p.Len; j++ {
			fmt.Fprintf(out, " %s", p.Cards[j])
		}
		fmt.Fprintln(out)
	}
	if sel, ok := sess.Holding(); ok {
		fmt.Fprintf(out, "Holding %d card(s) from %s.\n", sel.RunLen, sel.Source.Zone)
	}
}

func topLabel(p *engine.Pile) string {
	if p.Empty() {
		return "--"
	}
	return p.Top().String()
}

func printLeaderboard(ctx context.Context, out io.Writer, store *leaderboard.Store, drawMode int) error {
	entries, err := store.Top(ctx, drawMode, leaderboard.MaxEntries)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Best games (draw %d):\n", drawMode)
	if len(entries) == 0 {
		fmt.Fprintln(out, "  none yet")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(out, "  %2d. %s  %4d moves  %4ds\n", i+1, e.Initials, e.Moves, e.TimeSeconds)
	}
	return nil
}
