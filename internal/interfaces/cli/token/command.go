// Package token issues bearer tokens for existing users.
package token

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
)

var (
	opts     bootstrap.Options
	username string
	ttl      time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	opts.Bind(cmd)
	cmd.AddCommand(newIssueCommand())
	return cmd
}

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an API token for a user",
		Long: `Sign a JWT for an existing user. The token is printed alone when stdout
is not a terminal so it can be captured by scripts.`,
		Example: "  helpdesk token issue -u alice --ttl 24h",
		RunE:    run,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "User to issue the token for (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.jwt.access_exp_minutes)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.LoadWithDatabase(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	users := repository.NewUserRepository(database.Get(), rt.Log)
	u, err := users.GetByUsername(context.Background(), username)
	if err != nil {
		return fmt.Errorf("failed to find user %q: %w", username, err)
	}

	jwtCfg := rt.Config.Auth.JWT
	svc := auth.NewJWTService(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.AccessExpMinutes)
	signed, expiresAt, err := svc.Generate(u.ID(), u.Username(), ttl)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(out, signed)
		return nil
	}
	fmt.Fprintf(out, "user:    %s (%s)\n", u.Username(), u.Role())
	fmt.Fprintf(out, "expires: %s\n", expiresAt.Format(time.RFC3339))
	fmt.Fprintf(out, "token:   %s\n", signed)
	return nil
}
