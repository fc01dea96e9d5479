package commands

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.trai.ch/nourish/internal/app"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/zerr"
)

var errInvalidQuantity = zerr.New("quantity must be given as <ingredient-id>=<amount>")

func (c *CLI) newMealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Add, edit or remove meals on the menu",
	}
	cmd.AddCommand(c.newMealSaveCmd())
	cmd.AddCommand(c.newMealDeleteCmd())
	return cmd
}

func (c *CLI) newMealSaveCmd() *cobra.Command {
	var (
		create  bool
		sets    []string
		changes app.MealChanges
	)
	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Apply edits to a meal file and save it",
		Long: "Reads a meal as JSON or YAML, applies the requested edits and sends it to the server.\n" +
			"Use --new for a suggested meal that is not on the menu yet.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var meal domain.Meal
			if err := readDocument(args[0], &meal); err != nil {
				return err
			}

			quantities, err := parseQuantities(sets)
			if err != nil {
				return err
			}
			changes.Create = create
			changes.Quantities = quantities

			committed, sent, err := c.app.SaveMeal(cmd.Context(), &meal, changes)
			if err != nil {
				return err
			}
			return c.printer(cmd).meal(committed, sent)
		},
	}
	cmd.Flags().BoolVar(&create, "new", false, "Add the meal instead of updating it")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a quantity as <ingredient-id>=<amount> (repeatable)")
	cmd.Flags().IntSliceVar(&changes.Increments, "inc", nil, "Raise an ingredient by one step (repeatable)")
	cmd.Flags().IntSliceVar(&changes.Decrements, "dec", nil, "Lower an ingredient by one step (repeatable)")
	cmd.Flags().StringVar(&changes.ConsumedAt, "at", "", "Consume time as yyyy-MM-ddTHH:mm:ss local time")
	return cmd
}

func parseQuantities(values []string) (map[int]decimal.Decimal, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[int]decimal.Decimal, len(values))
	for _, v := range values {
		idText, amountText, ok := strings.Cut(v, "=")
		if !ok {
			return nil, zerr.With(zerr.Wrap(errInvalidQuantity, "parse quantity"), "value", v)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idText))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(errInvalidQuantity, "parse quantity"), "value", v)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(amountText))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(errInvalidQuantity, "parse quantity"), "value", v)
		}
		out[id] = amount
	}
	return out, nil
}

func (c *CLI) newMealDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a saved meal from the menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return zerr.With(zerr.Wrap(domain.ErrDeleteNotAllowed, "parse meal id"), "id", args[0])
			}
			if err := c.app.DeleteMeal(cmd.Context(), id); err != nil {
				return err
			}
			p := c.printer(cmd)
			p.line("%s Deleted meal %d", p.styled("✓", colorGreen), id)
			return nil
		},
	}
}
