package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MealType is the slot of the day a meal belongs to.
type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
)

// MealTypeForHour classifies a local hour of day.
func MealTypeForHour(hour int) MealType {
	switch {
	case hour >= 5 && hour < 10:
		return MealTypeBreakfast
	case hour >= 10 && hour < 14:
		return MealTypeLunch
	case hour >= 17 && hour < 22:
		return MealTypeDinner
	default:
		return MealTypeSnack
	}
}

// Meal is a food entry on the user's menu.
type Meal struct {
	ID                     int              `json:"id"`
	Name                   string           `json:"name"`
	Description            string           `json:"description,omitempty"`
	PreparationTimeMinutes int              `json:"preparationTimeMinutes"`
	CookingTimeMinutes     int              `json:"cookingTimeMinutes"`
	Calories               decimal.Decimal  `json:"calories"`
	Protein                decimal.Decimal  `json:"protein"`
	Carbohydrates          decimal.Decimal  `json:"carbohydrates"`
	Fat                    decimal.Decimal  `json:"fat"`
	Fiber                  decimal.Decimal  `json:"fiber"`
	MealType               MealType         `json:"mealType,omitempty"`
	MealDate               string           `json:"mealDate,omitempty"`
	ConsumedAt             string           `json:"consumedAt,omitempty"`
	DifficultyLevel        string           `json:"difficultyLevel,omitempty"`
	ImageURL               string           `json:"imageUrl,omitempty"`
	Ingredients            []MealIngredient `json:"ingredients"`
	Instructions           []string         `json:"instructions,omitempty"`
	Tips                   []string         `json:"tips,omitempty"`
}

// Clone returns a deep copy of m. The copy shares no slices with m.
func (m *Meal) Clone() *Meal {
	if m == nil {
		return nil
	}
	c := *m
	if m.Ingredients != nil {
		c.Ingredients = make([]MealIngredient, len(m.Ingredients))
		copy(c.Ingredients, m.Ingredients)
	}
	if m.Instructions != nil {
		c.Instructions = append([]string(nil), m.Instructions...)
	}
	if m.Tips != nil {
		c.Tips = append([]string(nil), m.Tips...)
	}
	return &c
}

// Ingredient returns the ingredient with the given id, or nil.
func (m *Meal) Ingredient(id int) *MealIngredient {
	for i := range m.Ingredients {
		if m.Ingredients[i].IngredientID == id {
			return &m.Ingredients[i]
		}
	}
	return nil
}

// MealIngredient is one line item of a meal.
type MealIngredient struct {
	IngredientID   int             `json:"ingredientId"`
	IngredientName string          `json:"ingredientName"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           Unit            `json:"unit"`
	// UnknownUnit keeps the raw wire value when Unit fell back to UnitOther.
	UnknownUnit string `json:"-"`
}

// Adjustable reports whether the quantity of i may be edited.
func (i MealIngredient) Adjustable() bool {
	return i.IngredientID > 0
}

// UnmarshalJSON decodes an ingredient and remembers unit values it could not map.
func (i *MealIngredient) UnmarshalJSON(data []byte) error {
	type plain MealIngredient
	aux := struct {
		*plain
		Unit json.RawMessage `json:"unit"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Unit, i.UnknownUnit = decodeUnit(aux.Unit)
	return nil
}

// MealRequest is the outbound create or update payload.
type MealRequest struct {
	ID          int                     `json:"id,omitempty"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	MealType    MealType                `json:"mealType"`
	MealDate    string                  `json:"mealDate"`
	ConsumedAt  string                  `json:"consumedAt"`
	Calories    decimal.Decimal         `json:"calories"`
	ImageURL    string                  `json:"imageUrl,omitempty"`
	Ingredients []MealIngredientRequest `json:"ingredients"`
}

// MealIngredientRequest is one outbound line item.
type MealIngredientRequest struct {
	IngredientID int             `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
}

// NewMealRequest builds the outbound payload from a meal snapshot.
func NewMealRequest(m *Meal) MealRequest {
	req := MealRequest{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		MealType:    m.MealType,
		MealDate:    m.MealDate,
		ConsumedAt:  m.ConsumedAt,
		Calories:    m.Calories,
		ImageURL:    m.ImageURL,
		Ingredients: make([]MealIngredientRequest, 0, len(m.Ingredients)),
	}
	for _, ing := range m.Ingredients {
		req.Ingredients = append(req.Ingredients, MealIngredientRequest{
			IngredientID: ing.IngredientID,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
		})
	}
	return req
}
