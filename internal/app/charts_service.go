package app

import (
	"context"
	"time"

	"healthstate/internal/domain"
)

// ChartsService builds per-day series from today's counters and the archives.
type ChartsService struct {
	water     *WaterService
	nutrition *NutritionService
	cal       calendar
}

// NewChartsService creates a ChartsService reading through the given services.
func NewChartsService(water *WaterService, nutrition *NutritionService, clock domain.Clock, loc *time.Location) *ChartsService {
	return &ChartsService{water: water, nutrition: nutrition, cal: newCalendar(clock, loc)}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day      string  `json:"day"`
	WaterMl  float64 `json:"waterMl"`
	Calories float64 `json:"calories"`
}

// GetDaily returns one point per local day for the last days days, oldest
// first. Days without a record are zero.
func (s *ChartsService) GetDaily(ctx context.Context, userID string, days int) ([]DayPoint, error) {
	if days <= 0 {
		return nil, invalid("days must be > 0")
	}
	if days > 366 {
		days = 366
	}

	waterToday, err := s.water.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	waterHist, err := s.water.History(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	foodToday, err := s.nutrition.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	foodHist, err := s.nutrition.History(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	water := map[string]float64{waterToday.Date: waterToday.ConsumedMl}
	for _, d := range waterHist {
		if _, seen := water[d.Date]; !seen {
			water[d.Date] = d.ConsumedMl
		}
	}
	calories := map[string]float64{foodToday.Date: foodToday.Calories()}
	for _, d := range foodHist {
		if _, seen := calories[d.Date]; !seen {
			calories[d.Date] = d.Calories()
		}
	}

	now := s.cal.now().In(s.cal.loc)
	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(domain.DayLayout)
		points = append(points, DayPoint{Day: day, WaterMl: water[day], Calories: calories[day]})
	}
	return points, nil
}
