package domain

import "github.com/shopspring/decimal"

var (
	// StepFine is the adjustment step for small weight and volume units.
	StepFine = decimal.RequireFromString("0.1")
	// StepCoarse is the adjustment step for large weight and volume units.
	StepCoarse = decimal.RequireFromString("0.5")
	// StepCountable is the adjustment step for units counted in whole items.
	StepCountable = decimal.NewFromInt(1)
)

var unitSteps = map[Unit]decimal.Decimal{
	UnitGram:       StepFine,
	UnitOunce:      StepFine,
	UnitMilliliter: StepFine,
	UnitTeaspoon:   StepFine,
	UnitTablespoon: StepFine,
	UnitFluidOunce: StepFine,
	UnitPinch:      StepFine,
	UnitDash:       StepFine,
	UnitDrop:       StepFine,

	UnitKilogram: StepCoarse,
	UnitPound:    StepCoarse,
	UnitLiter:    StepCoarse,
	UnitCup:      StepCoarse,
	UnitPint:     StepCoarse,
	UnitQuart:    StepCoarse,
	UnitGallon:   StepCoarse,

	UnitPiece:   StepCountable,
	UnitSlice:   StepCountable,
	UnitClove:   StepCountable,
	UnitHead:    StepCountable,
	UnitBunch:   StepCountable,
	UnitStalk:   StepCountable,
	UnitWedge:   StepCountable,
	UnitSheet:   StepCountable,
	UnitPod:     StepCountable,
	UnitBox:     StepCountable,
	UnitCan:     StepCountable,
	UnitBottle:  StepCountable,
	UnitPackage: StepCountable,
	UnitBag:     StepCountable,
	UnitJar:     StepCountable,
	UnitTube:    StepCountable,
	UnitCarton:  StepCountable,
	UnitServing: StepCountable,
	UnitPortion: StepCountable,
	UnitOther:   StepCountable,
}

// StepFor returns the increment used when adjusting a quantity of unit u.
// Unclassified units use the fine step.
func StepFor(u Unit) decimal.Decimal {
	if s, ok := unitSteps[u]; ok {
		return s
	}
	return StepFine
}

// IncrementQuantity adds one step. There is no upper bound.
func IncrementQuantity(q decimal.Decimal, u Unit) decimal.Decimal {
	return q.Add(StepFor(u))
}

// DecrementQuantity subtracts one step, clamping at zero.
func DecrementQuantity(q decimal.Decimal, u Unit) decimal.Decimal {
	next := q.Sub(StepFor(u))
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}

// FormatQuantity renders whole values without a decimal part and everything else
// rounded half-up to two places with trailing zeros stripped.
func FormatQuantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.Truncate(0).String()
	}
	return q.Round(2).String()
}
