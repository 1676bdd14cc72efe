package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/cli"
	"github.com/alexanderramin/freightdesk/internal/config"
	"github.com/alexanderramin/freightdesk/internal/db"
	"github.com/alexanderramin/freightdesk/internal/logging"
	"github.com/alexanderramin/freightdesk/internal/repository"
	"github.com/alexanderramin/freightdesk/internal/service"
	"github.com/alexanderramin/freightdesk/internal/session"
	"github.com/alexanderramin/freightdesk/internal/submit"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	// Metrics are only exported as a textfile on exit.
	reg := prometheus.NewRegistry()
	observers := backend.MultiObserver{backend.NewMetricsObserver(reg)}
	if cfg.LogCalls {
		observers = append(observers, backend.NewLogObserver(log))
	}
	client := backend.NewHTTPClient(cfg.Backend, observers)

	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		log.WithError(err).Warn("session file unreadable, continuing anonymously")
	}
	if sess.IsAnonymous() {
		log.Debug("no signed-in user; audit stamps will be anonymous")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}
	defer database.Close()
	drafts := repository.NewSQLiteDraftRepo(database)

	notify := cli.NewNotifier(os.Stdout)
	assembler := submit.NewAssembler(client, sess, notify, log, submit.WithDrafts(drafts))

	app := &cli.App{
		Backend:    client,
		Assembler:  assembler,
		Records:    service.NewRecordService(client),
		JobNumbers: service.NewJobNumberService(client, log),
		Drafts:     service.NewDraftService(drafts, assembler),
		Notify:     notify,
		Prompter:   cli.NewTerminalPrompter(),
		Log:        log,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	runErr := cli.NewRootCmd(app).Execute()

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			log.WithError(err).Warn("could not write metrics file")
		}
	}
	return runErr
}
