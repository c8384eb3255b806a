package shell

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/solvitaire/rules"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
	// Files completes the argument as a path.
	Files bool
}

var commandMetadata = map[string]CommandMetadata{
	"show":   {Options: []string{"-hidden"}},
	"solve":  {Options: []string{"-full", "-hidden"}, Args: []string{"10s", "1m", "10m", "1h"}},
	"deal":   {Files: true},
	"export": {Files: true},
	"help":   {Args: []string{"rules", "deal", "solve"}},
}

var commandNames = []string{
	"help", "rules", "presets", "seed", "deal", "export", "show", "moves",
	"play", "undo", "solve", "exit",
}

var boolValues = []string{"true", "false"}

func fileCompletions(prefix string) []string {
	dir, _ := filepath.Split(prefix)
	lookIn := dir
	if lookIn == "" {
		lookIn = "."
	}
	entries, err := os.ReadDir(lookIn)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := dir + e.Name()
		if e.IsDir() {
			name += "/"
		}
		out = append(out, name)
	}
	return out
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case strings.HasPrefix(lastCompleteField, "-"):
			// every option takes a boolean
			completions = boolValues
		case cmdName == "rules":
			completions = rules.PresetNames()
			if strings.ContainsAny(prefix, "./") {
				completions = fileCompletions(prefix)
			}
		case cmdName == "play" && c.sc.curGame != nil:
			if c.sc.curMoves == nil {
				c.sc.genMoves()
			}
			for i := range c.sc.curMoves {
				completions = append(completions, strconv.Itoa(i+1))
			}
		default:
			metadata := commandMetadata[cmdName]
			switch {
			case metadata.Files:
				completions = fileCompletions(prefix)
			case strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0:
				completions = metadata.Options
			default:
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
