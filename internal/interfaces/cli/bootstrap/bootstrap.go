// Package bootstrap loads configuration and opens the shared resources every
// command needs.
package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Options are the persistent flags shared by all commands.
type Options struct {
	Env        string
	ConfigPath string
}

// Bind registers --env and --config on cmd.
func (o *Options) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Runtime is a loaded configuration with an initialized logger.
type Runtime struct {
	Config *config.Config
	Log    logger.Interface
}

// Load reads configuration and initializes the logger and business timezone.
func Load(opts Options) (*Runtime, error) {
	cfg, err := config.Load(MapEnvToMode(opts.Env), opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return &Runtime{Config: cfg, Log: logger.NewLogger()}, nil
}

// LoadWithDatabase is Load followed by opening the package-level database.
// Callers close it with database.Close.
func LoadWithDatabase(opts Options) (*Runtime, error) {
	rt, err := Load(opts)
	if err != nil {
		return nil, err
	}
	if err := database.Init(&rt.Config.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return rt, nil
}

// MapEnvToMode translates an environment name into a gin mode.
func MapEnvToMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
