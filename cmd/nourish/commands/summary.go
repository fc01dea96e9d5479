package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDailyCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show the nutrition summary of one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.app.Daily(cmd.Context(), date)
			if err != nil {
				return err
			}
			return c.printer(cmd).daily(s)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to show as yyyy-MM-dd or dd/MM/yyyy (default today)")
	return cmd
}

func (c *CLI) newWeeklyCmd() *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show the nutrition summary of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.app.Weekly(cmd.Context(), start)
			if err != nil {
				return err
			}
			return c.printer(cmd).weekly(s)
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "First day of the week (default today)")
	return cmd
}

func (c *CLI) newRecentCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show calories for today and the preceding days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := c.app.Recent(cmd.Context(), days)
			if err != nil {
				return err
			}
			return c.printer(cmd).recent(reports)
		},
	}
	cmd.Flags().IntVarP(&days, "days", "n", 7, "Number of days to show")
	return cmd
}

func (c *CLI) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <timestamp>",
		Short: "Show how a timestamp is read in the configured time zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := c.app.Parse(args[0])
			if err != nil {
				return err
			}
			return c.printer(cmd).timestamp(ts)
		},
	}
}
