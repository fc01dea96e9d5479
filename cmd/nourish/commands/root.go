// Package commands implements the CLI commands for nourish.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/nourish/internal/app"
	"go.trai.ch/nourish/internal/build"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/engine/edit"
)

// CLI represents the command line interface for nourish.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	output  string
}

// Application represents the application logic interface.
type Application interface {
	Daily(ctx context.Context, date string) (*domain.DailySummary, error)
	Weekly(ctx context.Context, start string) (*domain.WeeklySummary, error)
	Recent(ctx context.Context, days int) ([]app.DayReport, error)
	Parse(text string) (app.Timestamp, error)
	SaveMeal(ctx context.Context, meal *domain.Meal, changes app.MealChanges) (*domain.Meal, edit.ChangeSet, error)
	DeleteMeal(ctx context.Context, id int) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	Age(user *domain.User) (int, bool)
	SignIn(user *domain.User) error
	SignOut() error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "nourish",
		Short:         "Track daily and weekly nutrition from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// Read by main before the components are built; declared here so cobra accepts them.
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("progress", false, "Print fetch and save progress to stderr")
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", formatText, "Output format: text or yaml")
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return validateFormat(c.output)
	}

	rootCmd.AddCommand(c.newDailyCmd())
	rootCmd.AddCommand(c.newWeeklyCmd())
	rootCmd.AddCommand(c.newRecentCmd())
	rootCmd.AddCommand(c.newParseCmd())
	rootCmd.AddCommand(c.newMealCmd())
	rootCmd.AddCommand(c.newSessionCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), c.output)
}
