package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/config"
	"github.com/jywlabs/kalam/internal/display"
	"github.com/jywlabs/kalam/internal/logging"
	"github.com/jywlabs/kalam/internal/session"
)

// app bundles the collaborators every command needs.
type app struct {
	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
	logger   *zap.Logger
	display  *display.Display
}

// sessionToken prefers a token from the environment over the stored session.
type sessionToken struct {
	env   string
	store *session.Store
}

func (t sessionToken) Token() string {
	if t.env != "" {
		return t.env
	}
	return t.store.Token()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(dirFlag)
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.APIBaseURL = strings.TrimRight(apiURLFlag, "/")
	}

	level := cfg.LogLevel
	if verboseFlag {
		level = "debug"
	}
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, err
	}

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		if sessionPath, err = session.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store, err := session.Open(sessionPath)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, sessionToken{env: cfg.Token, store: store},
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
	)

	logger.Debug("client configured",
		zap.String("api", cfg.APIBaseURL),
		zap.String("session", sessionPath),
	)

	return &app{
		cfg:      cfg,
		sessions: store,
		client:   client,
		logger:   logger,
		display:  display.New(cmd.OutOrStdout()),
	}, nil
}

// requireSession fails early when no token is available.
func (a *app) requireSession() error {
	if a.cfg.Token == "" && !a.sessions.Current().Valid() {
		return fmt.Errorf("not signed in: run 'kalam login' first")
	}
	return nil
}
