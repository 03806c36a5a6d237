package shell

import (
	"strings"

	"github.com/chzyer/readline"

	"github.com/jobmate/reportgen/pkg/store"
)

// commands is the static list of shell commands (without the / prefix).
var commands = []string{
	"quit",
	"exit",
	"q",
	"help",
	"h",
	"sessions",
	"ls",
	"show",
	"stats",
	"generate",
	"gen",
	"delete",
	"rm",
	"clear",
}

// idCommands expect a session id as their first argument and trigger
// session id completion.
var idCommands = []string{
	"show",
	"stats",
	"generate",
	"gen",
	"delete",
	"rm",
}

// Completer provides tab completion for commands and session ids.
type Completer struct {
	store *store.Store
}

// NewCompleter creates a completer backed by the session store.
func NewCompleter(st *store.Store) *Completer {
	return &Completer{store: st}
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter. It completes /commands at the start
// of a word and session ids after an id-expecting command.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if len(line) == 0 || pos <= 0 {
		return nil, 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	lineStr := string(line[:pos])
	wordStart := findWordStart(lineStr)
	currentWord := lineStr[wordStart:]

	if currentWord == "" {
		return nil, 0
	}

	if strings.HasPrefix(currentWord, "/") {
		return c.completeCommand(currentWord)
	}

	if isIDCommandContext(lineStr, wordStart) {
		return c.completeSessionID(currentWord)
	}

	return nil, 0
}

// findWordStart returns the index where the current word begins.
func findWordStart(s string) int {
	wordStart := strings.LastIndex(s, " ")
	if tab := strings.LastIndex(s, "\t"); tab > wordStart {
		wordStart = tab
	}
	return wordStart + 1
}

// isIDCommandContext reports whether the text before the current word is an
// id-expecting command.
func isIDCommandContext(line string, wordStart int) bool {
	before := strings.TrimRight(line[:wordStart], " \t")
	if !strings.HasPrefix(before, "/") {
		return false
	}

	cmdName := strings.TrimPrefix(before, "/")
	if idx := strings.IndexAny(cmdName, " \t"); idx != -1 {
		cmdName = cmdName[:idx]
	}

	for _, cmd := range idCommands {
		if cmdName == cmd {
			return true
		}
	}
	return false
}

func (c *Completer) completeCommand(prefix string) ([][]rune, int) {
	cmdPrefix := strings.TrimPrefix(prefix, "/")

	var matches [][]rune
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, cmdPrefix) {
			matches = append(matches, []rune(cmd[len(cmdPrefix):]+" "))
		}
	}
	return matches, len(prefix)
}

func (c *Completer) completeSessionID(prefix string) ([][]rune, int) {
	if c.store == nil {
		return nil, 0
	}

	var matches [][]rune
	for _, sum := range c.store.List() {
		if strings.HasPrefix(sum.ID, prefix) {
			matches = append(matches, []rune(sum.ID[len(prefix):]+" "))
		}
	}
	return matches, len(prefix)
}
