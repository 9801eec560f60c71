package domain

import "time"

// Keys of LabEntry.Other read by the metric engine.
const (
	LabBilirubin = "bilirubin"
	LabUricAcid  = "uricAcid"
	LabPlatelets = "platelets"
)

// LabEntry is one blood draw. Testosterone is in nmol/L.
type LabEntry struct {
	Date         string             `json:"date"`
	Testosterone *float64           `json:"testosterone,omitempty"`
	Cortisol     *float64           `json:"cortisol,omitempty"`
	VitaminD     *float64           `json:"vitaminD,omitempty"`
	Hemoglobin   *float64           `json:"hemoglobin,omitempty"`
	Other        map[string]float64 `json:"other,omitempty"`
}

// OtherValue returns a pointer to Other[key], or nil when absent.
func (l LabEntry) OtherValue(key string) *float64 {
	v, ok := l.Other[key]
	if !ok {
		return nil
	}
	return &v
}

// WorkoutEntry is one logged training session. Intensity is on a 0-10 scale.
type WorkoutEntry struct {
	Date      string    `json:"date"`
	Kind      string    `json:"kind,omitempty"`
	Intensity float64   `json:"intensity"`
	Minutes   float64   `json:"minutes,omitempty"`
	LoggedAt  time.Time `json:"loggedAt"`
}
