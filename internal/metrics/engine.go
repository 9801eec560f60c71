package metrics

import "math"

// Labs are the optional blood values the engine reads. Testosterone is nmol/L.
type Labs struct {
	Testosterone *float64 `json:"testosterone,omitempty"`
	Bilirubin    *float64 `json:"bilirubin,omitempty"`
	UricAcid     *float64 `json:"uricAcid,omitempty"`
	Platelets    *float64 `json:"platelets,omitempty"`
}

// Input is one day's snapshot.
type Input struct {
	SleepHours       float64 `json:"sleepHours"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
	CaloriesTarget   float64 `json:"caloriesTarget"`
	WorkoutIntensity float64 `json:"workoutIntensity"`
	WaterMl          float64 `json:"waterMl"`
	Age              int     `json:"age"`
	WeightKg         float64 `json:"weightKg"`
	HeightCm         float64 `json:"heightCm"`
	Labs             Labs    `json:"labs"`
}

// Factors is the sub-factor breakdown behind an Output.
type Factors struct {
	Sleep              float64 `json:"sleep"`
	SleepDeficitBonus  float64 `json:"sleepDeficitBonus"`
	Nutrition          float64 `json:"nutrition"`
	NutritionStress    float64 `json:"nutritionStress"`
	WorkoutAdaptation  float64 `json:"workoutAdaptation"`
	WorkoutStress      float64 `json:"workoutStress"`
	TestosteroneFactor float64 `json:"testosteroneFactor"`
	RecoveryPenalty    float64 `json:"recoveryPenalty"`
}

// Output holds the composite scores. Recovery, Stress and Energy are in
// [0,100]. TestosteroneIndex is nil when no testosterone value was given.
type Output struct {
	RecoveryScore     int     `json:"recoveryScore"`
	StressScore       int     `json:"stressScore"`
	EnergyScore       int     `json:"energyScore"`
	TestosteroneIndex *int    `json:"testosteroneIndex"`
	LiverLoad         float64 `json:"liverLoad"`
	MetabolicStress   float64 `json:"metabolicStress"`
	Factors           Factors `json:"factors"`
}

// known returns l without the values that are not real numbers.
func (l Labs) known() Labs {
	return Labs{
		Testosterone: finitePtr(l.Testosterone),
		Bilirubin:    finitePtr(l.Bilirubin),
		UricAcid:     finitePtr(l.UricAcid),
		Platelets:    finitePtr(l.Platelets),
	}
}

func score(v float64) int {
	return int(math.Trunc(clamp(v, 0, 100)))
}

// Compute derives the composite scores from in.
//
// Order matters: stress discounts against the clamped recovery score and
// energy discounts against the clamped stress score.
//
// An input that is NaN or infinite contributes nothing, as if it were absent.
func Compute(in Input) Output {
	labs := in.Labs.known()
	f := Factors{
		TestosteroneFactor: TestosteroneFactor(labs.Testosterone),
		RecoveryPenalty:    RecoveryPenalty(labs.Platelets),
	}
	if isFinite(in.SleepHours) {
		f.Sleep = SleepFactor(in.SleepHours)
		f.SleepDeficitBonus = SleepDeficitBonus(in.SleepHours)
	}
	if isFinite(in.WorkoutIntensity) {
		f.WorkoutAdaptation = WorkoutAdaptation(in.WorkoutIntensity)
		f.WorkoutStress = WorkoutStress(in.WorkoutIntensity)
	}
	if isFinite(in.CaloriesConsumed) && isFinite(in.CaloriesTarget) {
		n := Nutrition(in.CaloriesConsumed, in.CaloriesTarget)
		f.Nutrition, f.NutritionStress = n.Factor, n.StressBonus
	}

	liver := LiverLoad(labs.Bilirubin)
	metabolic := MetabolicStress(labs.UricAcid)

	recovery := score(70 + f.Sleep + f.TestosteroneFactor - liver - f.RecoveryPenalty)
	stress := score(35 + f.WorkoutStress + f.SleepDeficitBonus + metabolic + f.NutritionStress - float64(recovery)*0.3)
	energy := score(60 + f.Sleep + f.Nutrition + f.WorkoutAdaptation + f.TestosteroneFactor - float64(stress)*0.25 - liver)

	return Output{
		RecoveryScore:     recovery,
		StressScore:       stress,
		EnergyScore:       energy,
		TestosteroneIndex: TestosteroneIndex(labs.Testosterone),
		LiverLoad:         liver,
		MetabolicStress:   metabolic,
		Factors:           f,
	}
}
