package main

import (
	"context"
	"database/sql"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	sse "github.com/r3labs/sse/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wheelibin/shutters/internal/commands"
	"github.com/wheelibin/shutters/internal/config"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/dispatch"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/repos"
	"github.com/wheelibin/shutters/internal/schedule"
	"github.com/wheelibin/shutters/internal/server"
	"github.com/wheelibin/shutters/internal/shutterd"
	"github.com/wheelibin/shutters/internal/store"
)

func main() {

	// read the config file
	if err := config.InitialiseConfig(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxAge:   3,
		}
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05",
	})
	logger.Info("shutterd starting", "remote", cfg.Remote)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatal("error opening database", "err", err)
	}
	defer db.Close()

	shutterRepo, err := repos.NewShutterRepo(logger, db)
	if err != nil {
		logger.Fatal(err)
	}
	if err := shutterRepo.Upsert(cfg.Shutters); err != nil {
		logger.Fatal(err)
	}

	var publisher interface {
		Publish(subject string, data []byte) error
	}
	if cfg.NatsURL != "" {
		natsPublisher, err := dispatch.NewNatsPublisher(logger, cfg.NatsURL)
		if err != nil {
			logger.Fatal(err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		publisher = dispatch.NewLogPublisher(logger)
	}

	// create/wire up services
	dispatcher := dispatch.NewDispatcher(logger, publisher, shutterRepo, cfg.SendRepeat, constants.ShutterCommandSpacing)
	planner := schedule.NewScheduleService(logger, cfg.Latitude, cfg.Longitude, cfg.SunLimits)

	if cfg.Remote {
		runRemote(ctx, logger, cfg, planner, dispatcher)
	} else {
		runLocal(ctx, logger, cfg, db, shutterRepo, planner, dispatcher)
	}

	logger.Info("shutterd is closing")
}

// runLocal hosts the command service and plans from the local database.
func runLocal(
	ctx context.Context,
	logger *log.Logger,
	cfg *config.Config,
	db *sql.DB,
	shutterRepo *repos.ShutterRepo,
	planner *schedule.ScheduleService,
	dispatcher *dispatch.Dispatcher,
) {
	ruleRepo, err := repos.NewRuleRepo(logger, db)
	if err != nil {
		logger.Fatal(err)
	}

	srv := server.NewServer(logger, ruleRepo, shutterRepo, dispatcher, cfg.Latitude, cfg.Longitude)
	changes := srv.Changes()

	go func() {
		if err := srv.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
			logger.Error(err)
		}
	}()

	d := shutterd.NewShutterd(logger, shutterd.NewRepoSource(ruleRepo), planner, dispatcher)
	d.Run(ctx, changes)
}

// runRemote plans from a command service running elsewhere and follows its
// change stream.
func runRemote(
	ctx context.Context,
	logger *log.Logger,
	cfg *config.Config,
	planner *schedule.ScheduleService,
	dispatcher *dispatch.Dispatcher,
) {
	client := commands.NewClient(logger, cfg.ServiceURL)
	ruleStore := store.NewRuleStore(logger, client)

	consumer := commands.NewEventConsumer(logger, cfg.ServiceURL)
	events := make(chan *sse.Event)
	if err := consumer.Subscribe(events); err != nil {
		logger.Error("running without change notifications", "err", err)
	}
	defer consumer.Unsubscribe()

	changes := make(chan models.RuleChange)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				change, err := commands.ParseRuleChange(event)
				if err != nil {
					logger.Warn("ignoring event", "err", err)
					continue
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	d := shutterd.NewShutterd(logger, shutterd.NewStoreSource(ruleStore), planner, dispatcher)
	d.Run(ctx, changes)
}
