package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/inovacc/consultas/internal/application"
	"github.com/inovacc/consultas/internal/auth"
	"github.com/inovacc/consultas/internal/config"
	"github.com/inovacc/consultas/internal/kv"
	"github.com/inovacc/consultas/internal/store"
	"github.com/spf13/cobra"
)

const (
	// annotationPublic marks commands that run without a session.
	annotationPublic = "consultas/public"

	// annotationOffline marks commands that never touch storage.
	annotationOffline = "consultas/offline"
)

// environment holds what a command needs, opened once per invocation.
type environment struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	gate    *auth.Gate
	loc     *time.Location
	now     func() time.Time
	closers []io.Closer
}

func (e *environment) Close() error {
	var errs []error

	// close in reverse so the log file outlives the database
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	e.closers = nil

	return errors.Join(errs...)
}

var (
	current *environment

	// openEnv is replaced in tests.
	openEnv = openDefaultEnv
)

func openDefaultEnv(cmd *cobra.Command) (*environment, error) {
	appDir, err := application.GetApplicationDirectory()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(appDir)
	if err != nil {
		return nil, err
	}

	// the interactive UI owns the terminal
	var fallbackLog string
	if !cmd.HasParent() {
		fallbackLog = filepath.Join(appDir, application.AppName+".log")
	}

	logger, logCloser, err := cfg.Log.NewLogger(fallbackLog)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	env := &environment{
		cfg:     cfg,
		logger:  logger,
		loc:     time.Local,
		now:     time.Now,
		closers: []io.Closer{logCloser},
	}

	adapter, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		_ = env.Close()

		return nil, fmt.Errorf("opening %s storage at %s: %w", cfg.Storage.Backend, cfg.Storage.Path, err)
	}

	env.closers = append(env.closers, adapter)

	env.gate, err = auth.NewGate(adapter, auth.Options{
		User:         cfg.Auth.User,
		PasswordHash: cfg.Auth.PasswordHash,
		Secret:       cfg.Auth.Secret,
		TTL:          cfg.Auth.SessionTTL,
		Logger:       logger,
	})
	if err != nil {
		_ = env.Close()

		return nil, err
	}

	env.store = store.New(adapter, store.WithLogger(logger))

	logger.Debug("environment ready",
		"backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "command", cmd.CommandPath())

	return env, nil
}

// needsEnv is false for offline commands and for cobra's generated help
// and completion commands.
func needsEnv(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationOffline] == "true" {
		return false
	}

	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}

	return true
}

func setupEnv(cmd *cobra.Command, _ []string) error {
	if !needsEnv(cmd) {
		return nil
	}

	env, err := openEnv(cmd)
	if err != nil {
		return err
	}

	if cmd.Annotations[annotationPublic] != "true" {
		ok, err := env.gate.LoggedIn(cmd.Context())
		if err != nil {
			_ = env.Close()

			return err
		}

		if !ok {
			_ = env.Close()

			return fmt.Errorf("%w: run '%s login' first", auth.ErrNotLoggedIn, application.AppName)
		}
	}

	current = env

	return nil
}

func teardownEnv(_ *cobra.Command, _ []string) error {
	if current == nil {
		return nil
	}

	err := current.Close()
	current = nil

	return err
}
