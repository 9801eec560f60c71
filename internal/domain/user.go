package domain

import "time"

// Goal is the user's body-weight goal.
type Goal string

const (
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
	GoalLose     Goal = "lose"
)

// Valid reports whether g is a known goal. The empty goal is treated as unset.
func (g Goal) Valid() bool {
	switch g {
	case "", GoalGain, GoalMaintain, GoalLose:
		return true
	}
	return false
}

// UserProfile is one registered user with static body attributes.
type UserProfile struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Password      string    `json:"password,omitempty"`
	Nickname      string    `json:"nickname,omitempty"`
	HeightCm      float64   `json:"heightCm,omitempty"`
	WeightKg      float64   `json:"weightKg,omitempty"`
	Goal          Goal      `json:"goal,omitempty"`
	DobISO        string    `json:"dobISO,omitempty"`
	ActivityLevel string    `json:"activityLevel,omitempty"`
	Sex           string    `json:"sex,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Age returns the age in whole years on the given local day, or 0 when the
// date of birth is unset or unparsable.
func (u UserProfile) Age(today string) int {
	dob, err := time.Parse(DayLayout, u.DobISO)
	if err != nil {
		return 0
	}
	now, err := time.Parse(DayLayout, today)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ProfilePatch carries a partial profile update. Nil fields are left alone.
type ProfilePatch struct {
	Phone         *string  `json:"phone,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Password      *string  `json:"password,omitempty"`
	Nickname      *string  `json:"nickname,omitempty"`
	HeightCm      *float64 `json:"heightCm,omitempty"`
	WeightKg      *float64 `json:"weightKg,omitempty"`
	Goal          *Goal    `json:"goal,omitempty"`
	DobISO        *string  `json:"dobISO,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
	Sex           *string  `json:"sex,omitempty"`
}

// Apply merges the non-nil fields of p onto u.
func (p ProfilePatch) Apply(u *UserProfile) {
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Nickname != nil {
		u.Nickname = *p.Nickname
	}
	if p.HeightCm != nil {
		u.HeightCm = *p.HeightCm
	}
	if p.WeightKg != nil {
		u.WeightKg = *p.WeightKg
	}
	if p.Goal != nil {
		u.Goal = *p.Goal
	}
	if p.DobISO != nil {
		u.DobISO = *p.DobISO
	}
	if p.ActivityLevel != nil {
		u.ActivityLevel = *p.ActivityLevel
	}
	if p.Sex != nil {
		u.Sex = *p.Sex
	}
}

// UserStoreState is the single persisted record of registered users and the
// currently active one. CurrentUserID, when set, references an entry of Users.
type UserStoreState struct {
	CurrentUserID *string       `json:"currentUserId"`
	Users         []UserProfile `json:"users"`
}
