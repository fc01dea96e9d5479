package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekLength is the number of days covered by a weekly summary.
const WeekLength = 7

// User is the signed-in account as held by the session.
type User struct {
	ID                   int             `json:"id"`
	Username             string          `json:"username"`
	Email                string          `json:"email,omitempty"`
	DateOfBirth          string          `json:"dateOfBirth,omitempty"`
	Gender               string          `json:"gender,omitempty"`
	Height               decimal.Decimal `json:"height"`
	Weight               decimal.Decimal `json:"weight"`
	TargetWeight         decimal.Decimal `json:"targetWeight"`
	PrimaryNutritionGoal string          `json:"primaryNutritionGoal,omitempty"`
	ActivityLevel        string          `json:"activityLevel,omitempty"`
}

// UserInformation is the profile subset the server needs to compute targets.
type UserInformation struct {
	DateOfBirth          string          `json:"dateOfBirth,omitempty"`
	Gender               string          `json:"gender,omitempty"`
	Height               decimal.Decimal `json:"height"`
	Weight               decimal.Decimal `json:"weight"`
	TargetWeight         decimal.Decimal `json:"targetWeight"`
	PrimaryNutritionGoal string          `json:"primaryNutritionGoal,omitempty"`
	ActivityLevel        string          `json:"activityLevel,omitempty"`
}

// Information maps u to the profile subset sent with nutrition requests.
func (u *User) Information() UserInformation {
	if u == nil {
		return UserInformation{}
	}
	return UserInformation{
		DateOfBirth:          u.DateOfBirth,
		Gender:               u.Gender,
		Height:               u.Height,
		Weight:               u.Weight,
		TargetWeight:         u.TargetWeight,
		PrimaryNutritionGoal: u.PrimaryNutritionGoal,
		ActivityLevel:        u.ActivityLevel,
	}
}

// NutritionRequest is the outbound summary query. Daily queries set CurrentDate,
// weekly queries set StartDate.
type NutritionRequest struct {
	Resolution  Resolution
	CurrentDate time.Time
	StartDate   time.Time
	// EndDate is derived from StartDate for local display and is not sent.
	EndDate time.Time
	User    UserInformation
}

// SetStartDate sets the week start and derives EndDate seven calendar days later.
func (r *NutritionRequest) SetStartDate(t time.Time) {
	r.StartDate = t
	r.EndDate = t.AddDate(0, 0, WeekLength)
}

// Summary is a cached nutrition aggregate.
type Summary interface {
	Resolution() Resolution
	CloneSummary() Summary
}

// DailySummary aggregates a single local day.
type DailySummary struct {
	Date           string          `json:"date"`
	TotalCalories  decimal.Decimal `json:"totalCalories"`
	TotalProtein   decimal.Decimal `json:"totalProtein"`
	TotalCarbs     decimal.Decimal `json:"totalCarbohydrates"`
	TotalFat       decimal.Decimal `json:"totalFat"`
	TotalFiber     decimal.Decimal `json:"totalFiber"`
	TargetCalories decimal.Decimal `json:"targetCalories"`
	Meals          []Meal          `json:"meals"`
}

// Resolution implements Summary.
func (s *DailySummary) Resolution() Resolution { return ResolutionDaily }

// CloneSummary implements Summary.
func (s *DailySummary) CloneSummary() Summary { return s.Clone() }

// Clone returns a deep copy of s.
func (s *DailySummary) Clone() *DailySummary {
	if s == nil {
		return nil
	}
	c := *s
	if s.Meals != nil {
		c.Meals = make([]Meal, len(s.Meals))
		for i := range s.Meals {
			c.Meals[i] = *s.Meals[i].Clone()
		}
	}
	return &c
}

// WeeklySummary aggregates seven days starting at StartDate.
type WeeklySummary struct {
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	TotalCalories   decimal.Decimal `json:"totalCalories"`
	AverageCalories decimal.Decimal `json:"averageCalories"`
	Days            []DailySummary  `json:"dailyBreakdown"`
}

// Resolution implements Summary.
func (s *WeeklySummary) Resolution() Resolution { return ResolutionWeekly }

// CloneSummary implements Summary.
func (s *WeeklySummary) CloneSummary() Summary { return s.Clone() }

// Clone returns a deep copy of s.
func (s *WeeklySummary) Clone() *WeeklySummary {
	if s == nil {
		return nil
	}
	c := *s
	if s.Days != nil {
		c.Days = make([]DailySummary, len(s.Days))
		for i := range s.Days {
			c.Days[i] = *s.Days[i].Clone()
		}
	}
	return &c
}
