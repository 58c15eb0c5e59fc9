package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/server"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/stats"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/token"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/user"
	"github.com/orris-inc/helpdesk/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "helpdesk",
		Short:   "Multi-tenant helpdesk",
		Long:    `Helpdesk serves the ticketing API and ships the operational commands around it.`,
		Version: version.Current(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
		token.NewCommand(),
		stats.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
