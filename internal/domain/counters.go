package domain

import "time"

// Counter domain names. They double as storage key suffixes.
const (
	DomainNutrition = "nutrition"
	DomainWater     = "water"
)

// FoodItem is one logged food.
type FoodItem struct {
	Name     string    `json:"name"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"proteinG,omitempty"`
	CarbsG   float64   `json:"carbsG,omitempty"`
	FatG     float64   `json:"fatG,omitempty"`
	LoggedAt time.Time `json:"loggedAt"`
}

// NutritionDay holds one local day of food logging. TargetCalories is user
// configuration and survives the daily reset.
type NutritionDay struct {
	Date           string     `json:"date"`
	Items          []FoodItem `json:"items"`
	TargetCalories float64    `json:"targetCalories,omitempty"`
}

// Day returns the record's local day.
func (n *NutritionDay) Day() string { return n.Date }

// Active reports whether anything was logged.
func (n *NutritionDay) Active() bool { return len(n.Items) > 0 }

// ResetTo zeroes the counters for day, keeping the calorie target.
func (n *NutritionDay) ResetTo(day string) {
	*n = NutritionDay{Date: day, Items: []FoodItem{}, TargetCalories: n.TargetCalories}
}

// Calories sums the logged items.
func (n *NutritionDay) Calories() float64 {
	var total float64
	for _, it := range n.Items {
		total += it.Calories
	}
	return total
}

// WaterDay holds one local day of water intake. GoalMl survives the daily reset.
type WaterDay struct {
	Date       string  `json:"date"`
	ConsumedMl float64 `json:"consumedMl"`
	GoalMl     float64 `json:"goalMl,omitempty"`
}

// Day returns the record's local day.
func (w *WaterDay) Day() string { return w.Date }

// Active reports whether any water was recorded.
func (w *WaterDay) Active() bool { return w.ConsumedMl > 0 }

// ResetTo zeroes the intake for day, keeping the goal.
func (w *WaterDay) ResetTo(day string) {
	*w = WaterDay{Date: day, GoalMl: w.GoalMl}
}
