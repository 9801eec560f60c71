// Package metrics computes composite wellness scores from one day of inputs.
// Every function here is pure.
package metrics

import "math"

// Reference values for the sub-factors.
const (
	idealSleepHours = 7.5

	testosteroneLow  = 12.0 // nmol/L, index 0
	testosteroneHigh = 30.0 // nmol/L, index 100
	testosteroneOK   = 18.0

	bilirubinLimit = 20.0
	uricAcidLimit  = 339.0
	plateletsFloor = 180.0
)

// clamp bounds v to [lo, hi]. NaN counts as 0.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finitePtr drops a value that is not a real number.
func finitePtr(v *float64) *float64 {
	if v == nil || !isFinite(*v) {
		return nil
	}
	return v
}

// SleepFactor rewards or penalizes deviation from 7.5h, capped to [-20, 15].
func SleepFactor(sleepHours float64) float64 {
	return clamp((sleepHours-idealSleepHours)*8, -20, 15)
}

// SleepDeficitBonus is the stress added by acute sleep deprivation.
func SleepDeficitBonus(sleepHours float64) float64 {
	switch {
	case sleepHours < 5:
		return 25
	case sleepHours < 6:
		return 15
	}
	return 0
}

// NutritionEffect is the energy factor and stress bonus from calorie intake.
type NutritionEffect struct {
	Factor      float64
	StressBonus float64
}

// Nutrition compares intake to target. A non-positive target disables the factor.
// A deficit above 500 kcal adds stress whatever its percentage, unless intake
// is within 5% of target.
func Nutrition(consumed, target float64) NutritionEffect {
	if target <= 0 {
		return NutritionEffect{}
	}
	diff := (consumed - target) / target
	if math.Abs(diff) <= 0.05 {
		return NutritionEffect{Factor: 5}
	}
	var e NutritionEffect
	switch {
	case diff < -0.20:
		e.Factor = -10
	case diff > 0.25:
		e.Factor = -8
	}
	if target-consumed > 500 {
		e.StressBonus = 10
	}
	return e
}

// WorkoutAdaptation is the energy effect of training load on a 0-10 scale.
func WorkoutAdaptation(intensity float64) float64 {
	switch {
	case intensity >= 3 && intensity <= 6:
		return 5
	case intensity > 7:
		return -6
	}
	return 0
}

// WorkoutStress is the raw stress contribution of training, always applied.
func WorkoutStress(intensity float64) float64 {
	return intensity * 1.5
}

// TestosteroneIndex maps the 12-30 nmol/L band onto 0-100. Nil means no data.
func TestosteroneIndex(nmolL *float64) *int {
	if nmolL == nil {
		return nil
	}
	idx := int(math.Round(clamp((*nmolL-testosteroneLow)/(testosteroneHigh-testosteroneLow)*100, 0, 100)))
	return &idx
}

// TestosteroneFactor is the energy/recovery adjustment for a testosterone value.
func TestosteroneFactor(nmolL *float64) float64 {
	if nmolL == nil {
		return 0
	}
	switch v := *nmolL; {
	case v < testosteroneOK:
		return -8
	case v > testosteroneHigh:
		return 2
	}
	return 5
}

// LiverLoad is the capped penalty for bilirubin above 20.
func LiverLoad(bilirubin *float64) float64 {
	if bilirubin == nil || *bilirubin <= bilirubinLimit {
		return 0
	}
	return math.Min((*bilirubin-bilirubinLimit)*2, 15)
}

// MetabolicStress is the uncapped penalty for uric acid above 339.
func MetabolicStress(uricAcid *float64) float64 {
	if uricAcid == nil || *uricAcid <= uricAcidLimit {
		return 0
	}
	return (*uricAcid - uricAcidLimit) * 0.05
}

// RecoveryPenalty applies when platelets are below 180.
func RecoveryPenalty(platelets *float64) float64 {
	if platelets == nil || *platelets >= plateletsFloor {
		return 0
	}
	return 5
}
