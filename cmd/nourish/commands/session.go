package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nourish/internal/core/domain"
)

func (c *CLI) newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the signed-in account",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login <file>",
		Short: "Sign in with a user profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var user domain.User
			if err := readDocument(args[0], &user); err != nil {
				return err
			}
			if err := c.app.SignIn(&user); err != nil {
				return err
			}
			age, ok := c.app.Age(&user)
			return c.printer(cmd).user(&user, age, ok)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.SignOut()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			age, ok := c.app.Age(user)
			return c.printer(cmd).user(user, age, ok)
		},
	})

	return cmd
}
