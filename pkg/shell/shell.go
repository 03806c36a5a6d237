// Package shell provides the interactive console for browsing sessions and
// generating reports.
package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/help"
	"github.com/jobmate/reportgen/pkg/progress"
	"github.com/jobmate/reportgen/pkg/report"
	"github.com/jobmate/reportgen/pkg/session"
	"github.com/jobmate/reportgen/pkg/store"
)

// errQuit signals a clean exit from the command loop.
var errQuit = fmt.Errorf("quit")

// Shell is the interactive command-line interface.
type Shell struct {
	store    *store.Store
	rl       *readline.Instance
	prompter Prompter
	out      io.Writer

	reportsDir string
	opts       report.Options
}

// Config holds shell configuration.
type Config struct {
	HistoryFile string
	ReportsDir  string
	Options     report.Options
}

// New creates a new interactive shell.
func New(st *store.Store, cfg Config) (*Shell, error) {
	completer := NewCompleter(st)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mreportgen>\033[0m ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return nil, err
	}

	reportsDir := cfg.ReportsDir
	if reportsDir == "" {
		reportsDir = "."
	}

	return &Shell{
		store:      st,
		rl:         rl,
		prompter:   NewInteractivePrompter(),
		out:        os.Stdout,
		reportsDir: reportsDir,
		opts:       cfg.Options,
	}, nil
}

// Run starts the interactive loop.
func (s *Shell) Run() error {
	defer s.rl.Close()

	s.banner()
	fmt.Fprintln(s.out, "Type /help for commands, Tab to complete.")
	fmt.Fprintln(s.out)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.handleCommand(line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %s\n", errors.UserMessage(err))
		}
	}
}

// handleCommand dispatches one input line.
func (s *Shell) handleCommand(line string) error {
	parts := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "h":
		s.cmdHelp(args)
		return nil
	case "sessions", "ls":
		s.cmdSessions()
		return nil
	case "show":
		return s.cmdShow(args)
	case "stats":
		return s.cmdStats(args)
	case "generate", "gen":
		return s.cmdGenerate(args)
	case "delete", "rm":
		return s.cmdDelete(args)
	case "clear":
		fmt.Fprint(s.out, "\033[2J\033[H")
		return nil
	default:
		return fmt.Errorf("unknown command: /%s (try /help)", cmd)
	}
}

func (s *Shell) banner() {
	box := help.NewBox(44)
	fmt.Fprintln(s.out, box.Top())
	fmt.Fprintln(s.out, box.RowCenter("Reportgen - Interview Report Console"))
	fmt.Fprintln(s.out, box.Bottom())
}

func (s *Shell) cmdHelp(args []string) {
	r := help.NewRenderer(s.out)
	if len(args) > 0 {
		r.RenderCommand(args[0])
		return
	}
	r.RenderFull()
}

func (s *Shell) cmdSessions() {
	list := s.store.List()
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No sessions stored.")
		return
	}

	for _, sum := range list {
		fmt.Fprintf(s.out, "  %s  %-40s %s  %d/%d answered\n",
			shortID(sum.ID), sum.Title,
			sum.Timestamp.Format("2006-01-02 15:04"),
			sum.Answered, sum.Questions)
	}
}

func (s *Shell) cmdShow(args []string) error {
	sess, err := s.resolveSession(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s (%s)\n", sess.Title(), sess.ID)
	if sess.InterviewType != "" {
		fmt.Fprintf(s.out, "Type: %s\n", sess.InterviewType)
	}
	fmt.Fprintln(s.out)

	for i, item := range sess.Feedback {
		fmt.Fprintf(s.out, "Q%d: %s\n", i+1, session.StripOrdinal(item.Question))
		if item.Score != nil {
			fmt.Fprintf(s.out, "    Score: %.1f/10\n", *item.Score)
		}
	}
	return nil
}

func (s *Shell) cmdStats(args []string) error {
	sess, err := s.resolveSession(args)
	if err != nil {
		return err
	}

	stats := session.ComputeStatistics(sess)

	names := make([]string, 0, len(stats.Scores.ByCategory))
	for name := range stats.Scores.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cat := stats.Scores.ByCategory[name]
		fmt.Fprintf(s.out, "  %-16s %.1f/10 (%d answered)\n", name, cat.Score, cat.TotalQuestions)
	}
	if stats.Scores.Overall.TotalAnswered > 0 {
		fmt.Fprintf(s.out, "  Overall: %.1f/10 across %d answers\n",
			stats.Scores.Overall.Average, stats.Scores.Overall.TotalAnswered)
	} else {
		fmt.Fprintln(s.out, "  No scored answers.")
	}
	return nil
}

func (s *Shell) cmdGenerate(args []string) error {
	sess, err := s.resolveSession(args)
	if err != nil {
		return err
	}

	out := filepath.Join(s.reportsDir, "report_"+sess.ID+".pdf")
	if len(args) > 1 {
		out = args[1]
	}

	bar := progress.New("Generating report")
	b := report.NewBuilder(s.opts)
	b.Progress = bar.Update

	bar.Start()
	res, err := b.BuildReport(sess)
	if err != nil {
		bar.Fail("generation failed")
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		bar.Fail("write failed")
		return err
	}
	if err := os.WriteFile(out, res.PDF, 0644); err != nil {
		bar.Fail("write failed")
		return err
	}

	bar.Complete(fmt.Sprintf("wrote %s (%d pages)", out, res.Pages))
	return nil
}

func (s *Shell) cmdDelete(args []string) error {
	sess, err := s.resolveSession(args)
	if err != nil {
		return err
	}

	ok, err := s.prompter.Confirm(fmt.Sprintf("Delete session %q?", sess.Title()))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	if err := s.store.Delete(sess.ID); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted %s.\n", sess.ID)
	return nil
}

// resolveSession looks up a session by full or shortened ID.
func (s *Shell) resolveSession(args []string) (*session.Session, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("a session id is required (see /sessions)")
	}
	id := args[0]

	if sess, err := s.store.Get(id); err == nil {
		return sess, nil
	}

	// Allow the shortened prefix shown by /sessions.
	var match string
	for _, sum := range s.store.List() {
		if strings.HasPrefix(sum.ID, id) {
			if match != "" {
				return nil, fmt.Errorf("ambiguous session id %q", id)
			}
			match = sum.ID
		}
	}
	if match == "" {
		return nil, errors.NewSessionError(errors.ErrSessionNotFound, "session not found").
			WithContext("session", id)
	}
	return s.store.Get(match)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
