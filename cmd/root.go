package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caregiver-hours/internal/backend"
	"github.com/Tiliavir/caregiver-hours/internal/config"
	"github.com/Tiliavir/caregiver-hours/internal/log"
	"github.com/Tiliavir/caregiver-hours/internal/mailto"
	"github.com/Tiliavir/caregiver-hours/internal/tracker"
)

var (
	backendName string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "cht",
	Short: "Caregiver Hours Tracker – log daily care hours and email a monthly report",
	Long: `cht records the hours and expenses of a caregiver day by day, shows the
running total for the current month and emails a formatted report.
Settings live in ~/.cht/config.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	code := 1
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(code)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Store to use: supabase, sqlite or file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(recipientCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(newMonthCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}

// exitError carries a process exit code. An empty err means the failure was
// already shown to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// setupError marks configuration and backend failures.
func setupError(err error) error {
	return &exitError{code: 2, err: err}
}

// reported marks a failure that has already been rendered.
func reported() error {
	return &exitError{code: 1}
}

// session is one command invocation: an initialized tracker over an open
// backend.
type session struct {
	tracker *tracker.Tracker
	backend *backend.Result
	logger  *log.Logger
}

type sessionOptions struct {
	composer  mailto.Composer
	assumeYes bool
}

// openSession loads configuration, opens the backend and loads the current
// month. A load failure is rendered and returned as an exit-1 error.
func openSession(cmd *cobra.Command, opts sessionOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, setupError(err)
	}
	if backendName != "" {
		cfg.Backend = backendName
	}
	if err := cfg.Validate(); err != nil {
		return nil, setupError(fmt.Errorf("invalid configuration:\n%w", err))
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	logCfg := log.DefaultConfig()
	logCfg.Level = level
	logCfg.Output = cmd.ErrOrStderr()
	logger := log.New(logCfg)
	log.SetDefault(logger)

	res, err := backend.Open(cfg, logger)
	if err != nil {
		return nil, setupError(err)
	}
	logger = logger.With("backend", res.Name)

	composer := opts.composer
	if composer == nil {
		composer = mailto.BrowserComposer{}
	}
	t := tracker.New(tracker.Options{
		Store:    res.Store,
		Composer: composer,
		Prompter: &linePrompter{
			in:        bufio.NewReader(cmd.InOrStdin()),
			out:       cmd.OutOrStdout(),
			assumeYes: opts.assumeYes,
		},
		Logger: logger.WithComponent("tracker"),
	})

	s := &session{tracker: t, backend: res, logger: logger}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := t.Initialize(ctx); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderError(t.LastError()))
		s.close()
		return nil, reported()
	}
	logger.Debug("session ready", "entries", len(t.Entries()))
	return s, nil
}

// close waits for background writes and releases the backend.
func (s *session) close() {
	s.tracker.Wait()
	if err := s.backend.Close(); err != nil {
		s.logger.Warn("error closing backend", "error", err)
	}
}
