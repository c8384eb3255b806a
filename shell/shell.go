// Package shell is an interactive prompt for dealing, playing through and
// solving solitaire games.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/solvitaire/config"
	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please deal a game first with the `seed` or `deal` command")
	errQuit              = errors.New("quit")
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	rulesName string
	rules     rules.Rules

	// curGame is the position being played through; history holds the moves
	// that led to it from the deal.
	curGame  *game.GameState
	dealt    *game.GameState
	history  []move.Move
	curMoves []move.Move
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config) (*ShellController, error) {
	sc := &ShellController{cfg: cfg}
	if err := sc.setRules(cfg.DefaultPreset()); err != nil {
		return nil, err
	}
	return sc, nil
}

func NewShellController(cfg *config.Config) *ShellController {
	sc, err := newController(cfg)
	if err != nil {
		panic(err)
	}
	prompt := "\033[32msolvitaire>\033[0m "
	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     "/tmp/solvitaire_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// rawArgCommands take their arguments as-is; preset names such as
// -test-free-cell would otherwise read as options.
var rawArgCommands = map[string]bool{"rules": true}

// extractFields splits a line into the command, its positional arguments
// and its -option value pairs.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	if rawArgCommands[cmd] {
		if len(fields) > 1 {
			args = fields[1:]
		}
		return &shellcmd{cmd: cmd, args: args, options: options}, nil
	}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if _, err := strconv.ParseFloat(fields[idx], 64); err == nil {
				// a negative number is an argument
				args = append(args, fields[idx])
				continue
			}
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "rules":
		return sc.setRulesCmd(cmd)
	case "presets":
		return sc.presets(cmd)
	case "seed":
		return sc.seed(cmd)
	case "deal":
		return sc.deal(cmd)
	case "export":
		return sc.export(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves", "gen":
		return sc.moves(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "solve":
		return sc.solve(ctx, cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	ctx := log.Logger.WithContext(context.Background())

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(ctx, line)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		} else if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
