package app

import (
	"context"

	"healthstate/internal/domain"
	"healthstate/internal/metrics"
)

// ScoreRequest carries the inputs that are not persisted.
// A nil WorkoutIntensity uses the highest intensity logged today.
type ScoreRequest struct {
	SleepHours       float64  `json:"sleepHours"`
	WorkoutIntensity *float64 `json:"workoutIntensity,omitempty"`
}

// ScoreReport is the engine input assembled for a day and its result.
type ScoreReport struct {
	Day    string           `json:"day"`
	Input  metrics.Input    `json:"input"`
	Scores metrics.Output   `json:"scores"`
	Lab    *domain.LabEntry `json:"lab"`
}

// ScoresService assembles today's snapshot and runs the metric engine.
type ScoresService struct {
	users     *UserStore
	rollover  *RolloverService
	nutrition *NutritionService
	water     *WaterService
	workouts  *WorkoutService
	labs      *LabService
}

// NewScoresService wires a ScoresService.
func NewScoresService(users *UserStore, rollover *RolloverService, nutrition *NutritionService, water *WaterService, workouts *WorkoutService, labs *LabService) *ScoresService {
	return &ScoresService{
		users:     users,
		rollover:  rollover,
		nutrition: nutrition,
		water:     water,
		workouts:  workouts,
		labs:      labs,
	}
}

// Today normalizes the user's counters to today and computes the scores.
func (s *ScoresService) Today(ctx context.Context, userID string, req ScoreRequest) (ScoreReport, error) {
	if !finite(req.SleepHours) || req.SleepHours < 0 || req.SleepHours > 24 {
		return ScoreReport{}, invalid("sleepHours must be within [0, 24]")
	}
	if w := req.WorkoutIntensity; w != nil && (!finite(*w) || *w < 0 || *w > 10) {
		return ScoreReport{}, invalid("workoutIntensity must be within [0, 10]")
	}

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return ScoreReport{}, err
	}
	if u == nil {
		return ScoreReport{}, ErrUserNotFound
	}

	day := s.rollover.EnsureDailyReset(ctx, userID).Today

	food, err := s.nutrition.Today(ctx, userID)
	if err != nil {
		return ScoreReport{}, err
	}
	water, err := s.water.Today(ctx, userID)
	if err != nil {
		return ScoreReport{}, err
	}
	intensity, err := s.workouts.TodayIntensity(ctx, userID)
	if err != nil {
		return ScoreReport{}, err
	}
	if req.WorkoutIntensity != nil {
		intensity = *req.WorkoutIntensity
	}
	lab, err := s.labs.Latest(ctx, userID)
	if err != nil {
		return ScoreReport{}, err
	}

	age := u.Age(day)
	target := food.TargetCalories
	if target <= 0 {
		target = EstimateCalorieTarget(*u, age)
	}

	in := metrics.Input{
		SleepHours:       req.SleepHours,
		CaloriesConsumed: food.Calories(),
		CaloriesTarget:   target,
		WorkoutIntensity: intensity,
		WaterMl:          water.ConsumedMl,
		Age:              age,
		WeightKg:         u.WeightKg,
		HeightCm:         u.HeightCm,
		Labs:             labsFor(lab),
	}
	return ScoreReport{Day: day, Input: in, Scores: metrics.Compute(in), Lab: lab}, nil
}

func labsFor(lab *domain.LabEntry) metrics.Labs {
	if lab == nil {
		return metrics.Labs{}
	}
	return metrics.Labs{
		Testosterone: lab.Testosterone,
		Bilirubin:    lab.OtherValue(domain.LabBilirubin),
		UricAcid:     lab.OtherValue(domain.LabUricAcid),
		Platelets:    lab.OtherValue(domain.LabPlatelets),
	}
}
