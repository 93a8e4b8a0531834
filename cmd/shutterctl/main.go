package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wheelibin/shutters/internal/commands"
	"github.com/wheelibin/shutters/internal/config"
	"github.com/wheelibin/shutters/internal/shutters"
	"github.com/wheelibin/shutters/internal/store"
)

const requestTimeout = 30 * time.Second

// app is what every command needs once the config has been read
type app struct {
	logger   *log.Logger
	cfg      *config.Config
	client   *commands.Client
	store    *store.RuleStore
	registry *shutters.Registry
}

var current app

var rootCmd = &cobra.Command{
	Use:           "shutterctl",
	Short:         "Manage shutter schedules",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("service", "", "command service url (defaults to serviceUrl from the config)")
	rootCmd.PersistentFlags().Bool("debug", false, "log requests")

	rootCmd.AddCommand(
		listCmd,
		describeCmd,
		addCmd,
		editCmd,
		removeCmd,
		pauseCmd,
		resumeCmd,
		moveCmd,
		watchCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command) error {
	if err := config.InitialiseConfig(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := log.WarnLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	serviceURL := cfg.ServiceURL
	if flag, _ := cmd.Flags().GetString("service"); flag != "" {
		serviceURL = flag
	}

	client := commands.NewClient(logger, serviceURL)
	ruleStore := store.NewRuleStore(logger, client)

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	if err := ruleStore.Refresh(ctx); err != nil {
		return err
	}

	current = app{
		logger:   logger,
		cfg:      cfg,
		client:   client,
		store:    ruleStore,
		registry: shutters.NewRegistry(ruleStore.Config().Shutters),
	}
	current.cfg.ServiceURL = serviceURL
	return nil
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}
