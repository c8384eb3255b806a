package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
	"github.com/domino14/solvitaire/solver"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) streamliner() game.Streamliner {
	sl, err := game.ParseStreamliner(sc.cfg.Streamliner())
	if err != nil {
		log.Warn().Err(err).Msg("ignoring-streamliner")
		return game.StreamlinerNone
	}
	return sl
}

// setRules takes a preset name or the path of a rules document.
func (sc *ShellController) setRules(name string) error {
	r, err := rules.FromPreset(name)
	if err != nil {
		data, ferr := os.ReadFile(name)
		if ferr != nil {
			return fmt.Errorf("%q is neither a preset nor a readable file: %w", name, err)
		}
		if r, err = rules.Parse(data); err != nil {
			return err
		}
	}
	sc.rules = r
	sc.rulesName = name
	sc.setGame(nil)
	return nil
}

func (sc *ShellController) setGame(gs *game.GameState) {
	sc.curGame = gs
	sc.dealt = nil
	if gs != nil {
		sc.dealt = gs.Copy()
	}
	sc.history = nil
	sc.curMoves = nil
}

func (sc *ShellController) parent() move.Move {
	if len(sc.history) == 0 {
		return move.Move{}
	}
	return sc.history[len(sc.history)-1]
}

func (sc *ShellController) setRulesCmd(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("Rules: " + sc.rulesName), nil
	}
	if err := sc.setRules(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("Rules set to " + sc.rulesName), nil
}

func (sc *ShellController) presets(cmd *shellcmd) (*Response, error) {
	return msg(strings.Join(rules.PresetNames(), "\n")), nil
}

func (sc *ShellController) seed(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("need a seed, e.g. `seed 42`")
	}
	seed, err := strconv.ParseInt(cmd.args[0], 10, 64)
	if err != nil {
		return nil, err
	}
	gs, err := game.NewSeeded(sc.rules, seed, game.WithStreamliner(sc.streamliner()))
	if err != nil {
		return nil, err
	}
	sc.setGame(gs)
	log.Debug().Int64("seed", seed).Str("rules", sc.rulesName).Msg("dealt")
	return msg(gs.ToDisplayText(false)), nil
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("need the path of a deal file")
	}
	data, err := os.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	d, err := game.ParseDeal(data)
	if err != nil {
		return nil, err
	}
	gs, err := game.NewFromDeal(sc.rules, d, game.WithStreamliner(sc.streamliner()))
	if err != nil {
		return nil, err
	}
	sc.setGame(gs)
	return msg(gs.ToDisplayText(false)), nil
}

// export writes the dealt position, not the current one, as a deal file.
func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.dealt == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("need a path to export to")
	}
	data, err := sc.dealt.Deal().Marshal()
	if err != nil {
		return nil, err
	}
	if err = os.WriteFile(cmd.args[0], data, 0o644); err != nil {
		return nil, err
	}
	return msg("Deal written to " + cmd.args[0]), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.curGame == nil {
		return nil, errNoGame
	}
	out := sc.curGame.ToDisplayText(cmd.options.Bool("hidden"))
	if sc.curGame.IsSolved() {
		out += "\nSolved!"
	}
	return msg(out), nil
}

func (sc *ShellController) genMoves() {
	sc.curMoves = sc.curMoves[:0]
	if d, ok := sc.curGame.DominanceMove(); ok {
		sc.curMoves = append(sc.curMoves, d)
		return
	}
	sc.curMoves = append(sc.curMoves, sc.curGame.LegalMoves(sc.parent())...)
}

func moveTable(moves []move.Move) string {
	var sb strings.Builder
	for i, m := range moves {
		fmt.Fprintf(&sb, "%3d: %s", i+1, m.ShortDescription())
		if m.Dominance {
			sb.WriteString(" (dominance)")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.curGame == nil {
		return nil, errNoGame
	}
	sc.genMoves()
	if len(sc.curMoves) == 0 {
		return msg("No moves."), nil
	}
	return msg(moveTable(sc.curMoves)), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.curGame == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("need the number of a move from `moves`")
	}
	idx, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if sc.curMoves == nil {
		sc.genMoves()
	}
	if idx < 1 || idx > len(sc.curMoves) {
		return nil, fmt.Errorf("move %d out of range; there are %d moves", idx, len(sc.curMoves))
	}
	m := sc.curMoves[idx-1]
	sc.curGame.MakeMove(m)
	sc.history = append(sc.history, m)
	sc.curMoves = nil
	return sc.show(&shellcmd{options: CmdOptions{}})
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.curGame == nil {
		return nil, errNoGame
	}
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	m := sc.history[len(sc.history)-1]
	sc.curGame.UndoMove(m)
	sc.history = sc.history[:len(sc.history)-1]
	sc.curMoves = nil
	return sc.show(&shellcmd{options: CmdOptions{}})
}

func (sc *ShellController) solve(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.curGame == nil {
		return nil, errNoGame
	}
	timeout := sc.cfg.Timeout()
	if len(cmd.args) > 0 {
		var err error
		if timeout, err = time.ParseDuration(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	opts := []solver.Option{
		solver.WithTimeout(timeout),
		solver.WithMemoryFraction(sc.cfg.MemoryFraction()),
	}
	if c := sc.cfg.CacheCapacity(); c > 0 {
		opts = append(opts, solver.WithCacheCapacity(c))
	}
	res := solver.New(sc.curGame, opts...).Run(ctx)

	var sb strings.Builder
	sb.WriteString(res.String())
	if res.Outcome == solver.Solved {
		if cmd.options.Bool("full") {
			text, err := res.SolutionText(sc.curGame, cmd.options.Bool("hidden"))
			if err != nil {
				return nil, err
			}
			sb.WriteString(text)
		} else {
			sb.WriteString("Solution:\n")
			sb.WriteString(moveTable(res.Moves))
		}
	}
	return msg(strings.TrimSuffix(sb.String(), "\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage("standard")), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
