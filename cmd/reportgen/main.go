// Reportgen - Interview Report Generator
//
// Reportgen turns finished interview sessions into PDF reports: rendered
// score charts, a category statistics panel, and one block per answered
// question. It runs as an HTTP/WebSocket service for the interview flow
// or as a CLI for one-shot generation and interactive browsing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobmate/reportgen/pkg/api"
	"github.com/jobmate/reportgen/pkg/config"
	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/progress"
	"github.com/jobmate/reportgen/pkg/report"
	"github.com/jobmate/reportgen/pkg/session"
	"github.com/jobmate/reportgen/pkg/shell"
	"github.com/jobmate/reportgen/pkg/store"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Config file path (default: reportgen.yaml)")
	initConfig := flag.Bool("init", false, "Initialize default config file")
	serve := flag.Bool("serve", false, "Run the HTTP/WebSocket server")
	addr := flag.String("addr", "", "Listen address override, host:port")
	sessionArg := flag.String("session", "", "Session id or path to a session JSON file")
	out := flag.String("out", "", "Output PDF path for -session")
	all := flag.Bool("all", false, "Generate reports for every stored session")
	interactive := flag.Bool("interactive", false, "Start the interactive console")
	verify := flag.String("verify", "", "Validate a generated PDF and print its page count")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("reportgen %s\n", version)
		os.Exit(0)
	}

	// Optional .env for the REPORTGEN_* overrides.
	godotenv.Load()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}

	if *initConfig {
		if err := config.InitConfig(cfgPath); err != nil {
			fail(err)
		}
		fmt.Printf("Config initialized at: %s\n", cfgPath)
		os.Exit(0)
	}

	if *verify != "" {
		pages, err := report.VerifyFile(*verify)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s: valid PDF, %d pages\n", *verify, pages)
		os.Exit(0)
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fail(err)
	}
	if *addr != "" {
		host, port, err := splitAddr(*addr)
		if err != nil {
			fail(err)
		}
		cfg.Server.Host = host
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	switch {
	case *serve:
		runServer(cfg)
	case *sessionArg != "":
		runGenerate(cfg, *sessionArg, *out)
	case *all:
		runBatch(cfg)
	case *interactive:
		runShell(cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runServer(cfg *config.Config) {
	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		fail(err)
	}

	hub := api.NewHub()
	go hub.Run()
	defer hub.Stop()

	srv := api.NewServer(&cfg.Server)
	handlers := api.NewHandlers(st, hub, cfg.Storage.ReportsDir, cfg.Charts.FontsDir, version)
	handlers.RegisterRoutes(srv.Router())

	if err := srv.Start(); err != nil {
		fail(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fail(err)
	}
}

func runGenerate(cfg *config.Config, sessionArg, out string) {
	sess, err := loadSession(cfg, sessionArg)
	if err != nil {
		fail(err)
	}

	if out == "" {
		out = filepath.Join(cfg.Storage.ReportsDir, "report_"+sess.ID+".pdf")
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		fail(err)
	}

	opts := reportOptions(cfg)
	bar := progress.New("Generating report")
	b := report.NewBuilder(opts)
	b.Progress = bar.Update

	bar.Start()
	res, err := b.BuildReport(sess)
	if err != nil {
		bar.Fail("generation failed")
		fail(err)
	}
	if err := os.WriteFile(out, res.PDF, 0644); err != nil {
		bar.Fail("write failed")
		fail(err)
	}
	if cfg.Report.Verify {
		if _, err := report.VerifyFile(out); err != nil {
			bar.Fail("verification failed")
			fail(err)
		}
	}
	bar.Complete(fmt.Sprintf("wrote %s (%d pages)", out, res.Pages))
}

// runBatch generates a report for every stored session. One bar tracks the
// whole run; a failing session is reported and skipped.
func runBatch(cfg *config.Config) {
	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		fail(err)
	}
	if err := os.MkdirAll(cfg.Storage.ReportsDir, 0755); err != nil {
		fail(err)
	}

	list := st.List()
	if len(list) == 0 {
		fmt.Println("No sessions stored.")
		return
	}

	opts := reportOptions(cfg)
	bar := progress.New("Generating reports")
	bar.Start()

	failed := 0
	for i, sum := range list {
		bar.Update(sum.Title, i+1, len(list))

		sess, err := st.Get(sum.ID)
		if err != nil {
			failed++
			continue
		}

		out := filepath.Join(cfg.Storage.ReportsDir, "report_"+sess.ID+".pdf")
		if !report.Generate(sess, out, opts) {
			failed++
			continue
		}
		if cfg.Report.Verify {
			if _, err := report.VerifyFile(out); err != nil {
				failed++
			}
		}
	}

	if failed > 0 {
		bar.Fail(fmt.Sprintf("%d of %d reports failed", failed, len(list)))
		os.Exit(1)
	}
	bar.Complete(fmt.Sprintf("wrote %d reports to %s", len(list), cfg.Storage.ReportsDir))
}

func runShell(cfg *config.Config) {
	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		fail(err)
	}

	homeDir, _ := os.UserHomeDir()
	sh, err := shell.New(st, shell.Config{
		HistoryFile: filepath.Join(homeDir, ".reportgen_history"),
		ReportsDir:  cfg.Storage.ReportsDir,
		Options:     reportOptions(cfg),
	})
	if err != nil {
		fail(err)
	}

	if err := sh.Run(); err != nil {
		fail(err)
	}
}

// loadSession resolves the -session argument: a JSON file path when it
// exists on disk, otherwise a stored session id.
func loadSession(cfg *config.Config, arg string) (*session.Session, error) {
	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, errors.WrapStorage(err, errors.ErrStorageReadFailed, "cannot read session file").
				WithContext("path", arg)
		}
		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, errors.WrapSession(err, errors.ErrSessionDecodeFailed, "cannot decode session file").
				WithContext("path", arg)
		}
		if sess.ID == "" {
			sess.ID = filepath.Base(arg[:len(arg)-len(filepath.Ext(arg))])
		}
		return &sess, nil
	}

	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	return st.Get(arg)
}

func reportOptions(cfg *config.Config) report.Options {
	opts := report.DefaultOptions()
	if cfg.Report.Title != "" {
		opts.Title = cfg.Report.Title
	}
	if cfg.Report.Margin > 0 {
		opts.Margin = cfg.Report.Margin
	}
	if cfg.Report.FontSize > 0 {
		opts.FontSize = cfg.Report.FontSize
	}
	if cfg.Report.LineHeight > 0 {
		opts.LineHeight = cfg.Report.LineHeight
	}
	opts.ChartFontsDir = cfg.Charts.FontsDir
	return opts
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, errors.NewConfigErrorf(errors.ErrConfigInvalid, "invalid address %q", addr).
			WithSuggestion("use host:port, e.g. localhost:8084")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, errors.NewConfigErrorf(errors.ErrConfigInvalid, "invalid port %q", portStr)
	}
	return host, port, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errors.Format(err))
	os.Exit(1)
}
