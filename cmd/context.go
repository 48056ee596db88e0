package cmd

import (
	"fmt"

	"github.com/masmgr/gityear/config"
	"github.com/masmgr/gityear/internal/git"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
type CommandContext struct {
	Config *config.Config
	Logger *logrus.Logger
	Lookup *git.Lookup
}

// NewCommandContext loads configuration and opens a lookup over the
// repository containing anyPath.
func NewCommandContext(c *cli.Context, anyPath string) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	lookupCfg, err := cfg.LookupConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid lookup options: %w", err)
	}

	logger := newLogger(c)
	lookup, err := git.Open(anyPath, lookupCfg, git.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"root":       lookup.Root(),
		"dateSource": lookupCfg.DateSource().String(),
		"maxCommits": lookupCfg.MaxCommits(),
		"backend":    lookupCfg.Backend().String(),
	}).Debug("Opened repository")

	return &CommandContext{
		Config: cfg,
		Logger: logger,
		Lookup: lookup,
	}, nil
}

// Close releases the repository.
func (ctx *CommandContext) Close() error {
	return ctx.Lookup.Close()
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(c.App.ErrWriter)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
