// Package cli is the presentation layer: thin cobra commands that render
// store snapshots and issue intents. No state lives here.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskManager/internal/api"
	"taskManager/internal/config"
	"taskManager/internal/logger"
	"taskManager/internal/notify"
	"taskManager/internal/session"
	"taskManager/internal/store"
)

var (
	cfgPath string
	verbose bool
	rootCmd *cobra.Command

	app *appContext
)

// appContext wires config, transport and the two stores for one invocation.
type appContext struct {
	cfg      *config.Config
	client   *api.Client
	creds    *session.Credentials
	session  *session.Store
	notifier notify.Notifier
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskman",
		Short: "taskman - a task manager in your terminal",
		Long: `taskman manages your personal task list against the remote task service:
create, update, filter and delete tasks, and see dashboard statistics.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Development || verbose); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	creds := session.NewCredentials(cfg.State.Dir)
	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout), creds)
	notifier := notify.NewConsole(cmd.ErrOrStderr())

	app = &appContext{
		cfg:      cfg,
		client:   client,
		creds:    creds,
		session:  session.NewStore(client, creds, notifier),
		notifier: notifier,
	}
	return nil
}

// requireAuth resolves the startup session state and fails early when no
// valid credential is present, before any task endpoint is touched.
func requireAuth(ctx context.Context) error {
	if app.session.Restore(ctx) != session.StateAuthenticated {
		return fmt.Errorf("not logged in; run 'taskman login' first")
	}
	return nil
}

// taskStore builds the task store, which performs its initial load.
func taskStore(ctx context.Context) (*store.TaskStore, error) {
	if err := requireAuth(ctx); err != nil {
		return nil, err
	}
	return store.New(ctx, app.client, app.notifier)
}

// Execute runs the root command.
func Execute() error {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(statsCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
