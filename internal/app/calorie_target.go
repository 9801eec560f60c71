package app

import "healthstate/internal/domain"

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// goalAdjustment is added to maintenance calories for each goal.
var goalAdjustment = map[domain.Goal]float64{
	domain.GoalGain: 500,
	domain.GoalLose: -500,
}

// EstimateCalorieTarget derives a daily calorie target from the profile with
// the Mifflin-St Jeor equation. It returns 0, which disables the nutrition
// factor, when weight, height or age is missing.
func EstimateCalorieTarget(u domain.UserProfile, age int) float64 {
	if u.WeightKg <= 0 || u.HeightCm <= 0 || age <= 0 {
		return 0
	}
	bmr := 10*u.WeightKg + 6.25*u.HeightCm - 5*float64(age)
	switch u.Sex {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		bmr -= 78
	}
	mult, ok := activityMultipliers[u.ActivityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	target := bmr*mult + goalAdjustment[u.Goal]
	if target < 1200 {
		target = 1200
	}
	return target
}
