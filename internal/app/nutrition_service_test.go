package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"healthstate/internal/app"
	"healthstate/internal/domain"
)

func newNutrition(kv domain.KVStore, clock *fakeClock) *app.NutritionService {
	return app.NewNutritionService(kv, newRollover(kv, clock), quietLogger())
}

func TestLogFood_Validation(t *testing.T) {
	svc := newNutrition(newMockKV(), newClock())

	tests := []struct {
		name string
		item domain.FoodItem
	}{
		{"missing name", domain.FoodItem{Calories: 100}},
		{"blank name", domain.FoodItem{Name: "   ", Calories: 100}},
		{"negative calories", domain.FoodItem{Name: "x", Calories: -1}},
		{"negative macro", domain.FoodItem{Name: "x", FatG: -2}},
		{"nan calories", domain.FoodItem{Name: "x", Calories: math.NaN()}},
		{"infinite protein", domain.FoodItem{Name: "x", ProteinG: math.Inf(1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.LogFood(context.Background(), uid, tc.item); !errors.Is(err, app.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestLogFoodAndUndo(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	svc := newNutrition(newMockKV(), clock)

	if _, err := svc.LogFood(ctx, uid, domain.FoodItem{Name: " rice ", Calories: 400}); err != nil {
		t.Fatal(err)
	}
	rec, err := svc.LogFood(ctx, uid, domain.FoodItem{Name: "egg", Calories: 80})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Items) != 2 || rec.Calories() != 480 || rec.Items[0].Name != "rice" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !rec.Items[1].LoggedAt.Equal(clock.now) {
		t.Errorf("expected LoggedAt from clock, got %v", rec.Items[1].LoggedAt)
	}

	ok, rec, err := svc.UndoLast(ctx, uid)
	if err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if rec.Calories() != 400 {
		t.Fatalf("expected 400 kcal after undo, got %v", rec.Calories())
	}

	_, _, _ = svc.UndoLast(ctx, uid)
	ok, _, err = svc.UndoLast(ctx, uid)
	if err != nil || ok {
		t.Fatalf("undo on empty log: ok=%v err=%v", ok, err)
	}
}

func TestSetTarget_CarriesOver(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	svc := newNutrition(newMockKV(), clock)

	for _, bad := range []float64{-5, math.NaN(), math.Inf(1)} {
		if _, err := svc.SetTarget(ctx, uid, bad); !errors.Is(err, app.ErrInvalidInput) {
			t.Fatalf("target %v: expected invalid input, got %v", bad, err)
		}
	}
	if _, err := svc.SetTarget(ctx, uid, 2100); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.LogFood(ctx, uid, domain.FoodItem{Name: "toast", Calories: 150}); err != nil {
		t.Fatal(err)
	}

	clock.advanceDays(1)
	rec, err := svc.Today(ctx, uid)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Date != "2026-02-09" || len(rec.Items) != 0 || rec.TargetCalories != 2100 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLogFood_ArchivesStaleDayFirst(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	put(t, kv, app.StorageKey(uid, "nutrition"), domain.NutritionDay{
		Date:           "2026-02-07",
		Items:          []domain.FoodItem{{Name: "oats", Calories: 350}},
		TargetCalories: 2200,
	})
	put(t, kv, app.StorageKey(uid, "water"), domain.WaterDay{Date: "2026-02-07", ConsumedMl: 1800})
	clock := newClock()
	rollover := newRollover(kv, clock)
	food := app.NewNutritionService(kv, rollover, quietLogger())
	water := app.NewWaterService(kv, rollover, quietLogger())

	if _, err := water.Add(ctx, uid, 250); err != nil {
		t.Fatal(err)
	}
	rec, err := food.LogFood(ctx, uid, domain.FoodItem{Name: "egg", Calories: 80})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Date != "2026-02-08" || len(rec.Items) != 1 || rec.TargetCalories != 2200 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if res := rollover.EnsureDailyReset(ctx, uid); !res.Current {
		t.Fatalf("expected day already rolled, got %+v", res)
	}

	foodHist := mustGet[[]domain.NutritionDay](t, kv, app.StorageKey(uid, "nutrition_history"))
	if len(foodHist) != 1 || foodHist[0].Date != "2026-02-07" || foodHist[0].Calories() != 350 {
		t.Fatalf("expected oats day archived, got %+v", foodHist)
	}
	waterHist := mustGet[[]domain.WaterDay](t, kv, app.StorageKey(uid, "water_history"))
	if len(waterHist) != 1 || waterHist[0].Date != "2026-02-07" || waterHist[0].ConsumedMl != 1800 {
		t.Fatalf("expected water day archived, got %+v", waterHist)
	}
}

func TestUndoLast_NeverTouchesPastDay(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	put(t, kv, app.StorageKey(uid, "nutrition"), domain.NutritionDay{
		Date:  "2026-02-07",
		Items: []domain.FoodItem{{Name: "oats", Calories: 350}},
	})
	svc := newNutrition(kv, newClock())

	ok, rec, err := svc.UndoLast(ctx, uid)
	if err != nil || ok || len(rec.Items) != 0 {
		t.Fatalf("undo on a fresh day: ok=%v rec=%+v err=%v", ok, rec, err)
	}
	hist, err := svc.History(ctx, uid, 0)
	if err != nil || len(hist) != 1 || len(hist[0].Items) != 1 {
		t.Fatalf("expected past day archived intact, got %+v %v", hist, err)
	}
}
