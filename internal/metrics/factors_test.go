package metrics

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestSleepFactor(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{7.5, 0},
		{9, 12},
		{10, 15},
		{6.5, -8},
		{4, -20},
		{0, -20},
	}
	for _, tc := range tests {
		if got := SleepFactor(tc.hours); got != tc.want {
			t.Errorf("SleepFactor(%v) = %v; want %v", tc.hours, got, tc.want)
		}
	}
}

func TestSleepDeficitBonus(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{4.9, 25},
		{5, 15},
		{5.9, 15},
		{6, 0},
		{8, 0},
	}
	for _, tc := range tests {
		if got := SleepDeficitBonus(tc.hours); got != tc.want {
			t.Errorf("SleepDeficitBonus(%v) = %v; want %v", tc.hours, got, tc.want)
		}
	}
}

func TestNutrition(t *testing.T) {
	tests := []struct {
		name             string
		consumed, target float64
		want             NutritionEffect
	}{
		{"zero target disables", 1500, 0, NutritionEffect{}},
		{"negative target disables", 1500, -10, NutritionEffect{}},
		{"on target", 2000, 2000, NutritionEffect{Factor: 5}},
		{"5% under", 1900, 2000, NutritionEffect{Factor: 5}},
		{"5% over", 2100, 2000, NutritionEffect{Factor: 5}},
		{"10% under", 1800, 2000, NutritionEffect{}},
		{"25% under, deficit exactly 500", 1500, 2000, NutritionEffect{Factor: -10}},
		{"30% under, deficit 600", 1400, 2000, NutritionEffect{Factor: -10, StressBonus: 10}},
		{"15% under, deficit 600", 3400, 4000, NutritionEffect{StressBonus: 10}},
		{"20% over", 2400, 2000, NutritionEffect{}},
		{"30% over", 2600, 2000, NutritionEffect{Factor: -8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Nutrition(tc.consumed, tc.target); got != tc.want {
				t.Errorf("Nutrition(%v, %v) = %+v; want %+v", tc.consumed, tc.target, got, tc.want)
			}
		})
	}
}

func TestWorkout(t *testing.T) {
	tests := []struct {
		intensity   float64
		adaptation  float64
		stressDelta float64
	}{
		{0, 0, 0},
		{2, 0, 3},
		{3, 5, 4.5},
		{6, 5, 9},
		{7, 0, 10.5},
		{7.5, -6, 11.25},
		{10, -6, 15},
	}
	for _, tc := range tests {
		if got := WorkoutAdaptation(tc.intensity); got != tc.adaptation {
			t.Errorf("WorkoutAdaptation(%v) = %v; want %v", tc.intensity, got, tc.adaptation)
		}
		if got := WorkoutStress(tc.intensity); got != tc.stressDelta {
			t.Errorf("WorkoutStress(%v) = %v; want %v", tc.intensity, got, tc.stressDelta)
		}
	}
}

func TestTestosteroneIndex(t *testing.T) {
	if got := TestosteroneIndex(nil); got != nil {
		t.Fatalf("TestosteroneIndex(nil) = %v; want nil", *got)
	}
	tests := []struct {
		value float64
		want  int
	}{
		{12, 0},
		{5, 0},
		{21, 50},
		{15, 17},
		{30, 100},
		{40, 100},
	}
	for _, tc := range tests {
		got := TestosteroneIndex(ptr(tc.value))
		if got == nil || *got != tc.want {
			t.Errorf("TestosteroneIndex(%v) = %v; want %d", tc.value, got, tc.want)
		}
	}
}

func TestTestosteroneFactor(t *testing.T) {
	if got := TestosteroneFactor(nil); got != 0 {
		t.Errorf("TestosteroneFactor(nil) = %v; want 0", got)
	}
	tests := []struct {
		value float64
		want  float64
	}{
		{17.9, -8},
		{18, 5},
		{30, 5},
		{30.1, 2},
	}
	for _, tc := range tests {
		if got := TestosteroneFactor(ptr(tc.value)); got != tc.want {
			t.Errorf("TestosteroneFactor(%v) = %v; want %v", tc.value, got, tc.want)
		}
	}
}

func TestLabPenalties(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"liver absent", LiverLoad(nil), 0},
		{"liver at threshold", LiverLoad(ptr(20)), 0},
		{"liver 25", LiverLoad(ptr(25)), 10},
		{"liver capped", LiverLoad(ptr(40)), 15},
		{"uric absent", MetabolicStress(nil), 0},
		{"uric at threshold", MetabolicStress(ptr(339)), 0},
		{"uric 439", MetabolicStress(ptr(439)), 5},
		{"uric uncapped", MetabolicStress(ptr(1339)), 50},
		{"platelets absent", RecoveryPenalty(nil), 0},
		{"platelets low", RecoveryPenalty(ptr(179)), 5},
		{"platelets at floor", RecoveryPenalty(ptr(180)), 0},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %v; want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestClamp_NaN(t *testing.T) {
	if got := clamp(math.NaN(), 0, 100); got != 0 {
		t.Errorf("clamp(NaN, 0, 100) = %v; want 0", got)
	}
	if got := clamp(math.NaN(), 10, 100); got != 10 {
		t.Errorf("clamp(NaN, 10, 100) = %v; want 10", got)
	}
	if got := score(math.NaN()); got != 0 {
		t.Errorf("score(NaN) = %v; want 0", got)
	}
}
