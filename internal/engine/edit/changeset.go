package edit

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"go.trai.ch/nourish/internal/core/domain"
)

// IngredientQuantity is the editable part of one ingredient.
type IngredientQuantity struct {
	IngredientID int
	Quantity     decimal.Decimal
}

// Snapshot holds the fields of a meal that count as user edits.
type Snapshot struct {
	Ingredients []IngredientQuantity
	ConsumedAt  string
}

func snapshotOf(m *domain.Meal) Snapshot {
	if m == nil {
		return Snapshot{}
	}
	s := Snapshot{ConsumedAt: m.ConsumedAt}
	if m.Ingredients != nil {
		s.Ingredients = make([]IngredientQuantity, len(m.Ingredients))
		for i, ing := range m.Ingredients {
			s.Ingredients[i] = IngredientQuantity{IngredientID: ing.IngredientID, Quantity: ing.Quantity}
		}
	}
	return s
}

// ChangeSet compares the committed state of a meal with the working copy.
type ChangeSet struct {
	Before Snapshot
	After  Snapshot
}

// Quantities compare numerically, so 3.0 equals 3.00.
var compareOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

func newChangeSet(original, working *domain.Meal) ChangeSet {
	return ChangeSet{Before: snapshotOf(original), After: snapshotOf(working)}
}

// Dirty reports whether the working copy differs from the committed state.
func (c ChangeSet) Dirty() bool {
	return !cmp.Equal(c.Before, c.After, compareOpts)
}

// Diff renders the difference for debug output. It is empty when nothing changed.
func (c ChangeSet) Diff() string {
	return cmp.Diff(c.Before, c.After, compareOpts)
}
