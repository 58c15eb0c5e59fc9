// Package stats rebuilds the quickStats snapshot out of band.
package stats

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/application/analytics/usecases"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	infraPermission "github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Reporting tools",
	}
	opts.Bind(cmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "rebuild",
		Short: "Recompute quick stats and print them",
		Long: `Recompute the quick stats snapshot. With the redis cache backend the
snapshot is also published to the shared cache for running servers.`,
		RunE: runRebuild,
	})
	return cmd
}

func runRebuild(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.LoadWithDatabase(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	cfg, log := rt.Config, rt.Log
	ctx := context.Background()

	var client *redis.Client
	if cfg.Redis.Host != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
	}

	statsCache, err := cache.New(cfg.Cache, client, log)
	if err != nil {
		return err
	}
	if statsCache != nil {
		defer statsCache.Close()
	}

	checker, err := infraPermission.NewDefaultChecker(log)
	if err != nil {
		return err
	}

	db := database.Get()
	uc := usecases.NewQuickStatsUseCase(
		repository.NewTicketRepository(db, log),
		repository.NewUserRepository(db, log),
		statsCache, checker, cfg.Helpdesk.StatsWindowDays, log,
	)

	snapshot, err := uc.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("failed to rebuild stats: %w", err)
	}

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
