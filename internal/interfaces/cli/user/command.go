// Package user provisions accounts from the command line.
package user

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
)

var (
	opts    bootstrap.Options
	request dto.CreateUserRequest
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	opts.Bind(cmd)
	cmd.AddCommand(newCreateCommand())
	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Example: `  helpdesk user create --username alice --email alice@example.com --role support
  helpdesk user create --username root --email root@example.com --role admin`,
		RunE: runCreate,
	}

	cmd.Flags().StringVar(&request.Username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&request.Fullname, "fullname", "", "Display name")
	cmd.Flags().StringVar(&request.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&request.Role, "role", "user", "Role ID")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.LoadWithDatabase(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	uc := usecases.NewCreateUserUseCase(repository.NewUserRepository(database.Get(), rt.Log), rt.Log)
	created, err := uc.Execute(context.Background(), request)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, role %s)\n", created.ID, created.Username, created.Role)
	return nil
}
