package app

import (
	"context"
	"fmt"

	"healthstate/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// UsersKey holds the serialized UserStoreState.
	UsersKey = "health_users"
	// DefaultMaxUsers is the number of profiles a store holds unless configured otherwise.
	DefaultMaxUsers = 5

	legacyProfileKey = "user_profile"
)

// Storage key suffixes of the per-user domains.
const (
	SuffixNutrition        = domain.DomainNutrition
	SuffixWater            = domain.DomainWater
	SuffixNutritionHistory = domain.DomainNutrition + "_history"
	SuffixWaterHistory     = domain.DomainWater + "_history"
	SuffixLabs             = "labs"
	SuffixWorkouts         = "workouts"
	SuffixLastResetDate    = "lastResetDate"
)

// legacySuffixes are copied from un-namespaced keys during the legacy migration.
var legacySuffixes = []string{
	SuffixNutrition,
	SuffixWater,
	SuffixNutritionHistory,
	SuffixWaterHistory,
	SuffixLabs,
	SuffixWorkouts,
	SuffixLastResetDate,
}

// StorageKey derives the key of a per-user record. User ids never contain
// '_', so distinct users never share a key.
func StorageKey(userID, suffix string) string {
	return "user_" + userID + "_" + suffix
}

// UserStore owns the registered profiles and the active-user pointer.
type UserStore struct {
	kv       domain.KVStore
	cal      calendar
	maxUsers int
	log      logrus.FieldLogger
	newID    func() string
}

// NewUserStore creates a UserStore persisting to kv. A non-positive maxUsers
// falls back to DefaultMaxUsers.
func NewUserStore(kv domain.KVStore, clock domain.Clock, maxUsers int, log logrus.FieldLogger) *UserStore {
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	return &UserStore{
		kv:       kv,
		cal:      newCalendar(clock, nil),
		maxUsers: maxUsers,
		log:      log,
		newID:    uuid.NewString,
	}
}

// GetStorageKey derives the key of a per-user record.
func (s *UserStore) GetStorageKey(userID, suffix string) string {
	return StorageKey(userID, suffix)
}

func (s *UserStore) load(ctx context.Context) (domain.UserStoreState, error) {
	st, _, err := loadJSON[domain.UserStoreState](ctx, s.kv, s.log, UsersKey)
	if err != nil {
		return st, fmt.Errorf("load users: %w", err)
	}
	if st.CurrentUserID != nil && indexOf(st.Users, *st.CurrentUserID) < 0 {
		st.CurrentUserID = nil
	}
	return st, nil
}

func (s *UserStore) save(ctx context.Context, st domain.UserStoreState) error {
	if st.Users == nil {
		st.Users = []domain.UserProfile{}
	}
	if err := saveJSON(ctx, s.kv, UsersKey, st); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func indexOf(users []domain.UserProfile, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// AddUser registers candidate under a fresh id. It returns ErrCapacity
// without touching the store once MaxUsers profiles exist.
func (s *UserStore) AddUser(ctx context.Context, candidate domain.UserProfile) (domain.UserProfile, error) {
	if !candidate.Goal.Valid() {
		return domain.UserProfile{}, invalid("unknown goal %q", candidate.Goal)
	}
	st, err := s.load(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if len(st.Users) >= s.maxUsers {
		return domain.UserProfile{}, ErrCapacity
	}

	candidate.ID = s.newID()
	candidate.CreatedAt = s.cal.now().UTC()
	st.Users = append(st.Users, candidate)
	if err := s.save(ctx, st); err != nil {
		return domain.UserProfile{}, err
	}

	s.log.WithField("user_id", candidate.ID).Info("user added")
	return candidate, nil
}

// FindUserByIdentifierAndSecret returns the first user whose phone or email
// equals identifier and whose password equals secret. Matching is exact and
// case-sensitive. A nil profile means no match.
func (s *UserStore) FindUserByIdentifierAndSecret(ctx context.Context, identifier, secret string) (*domain.UserProfile, error) {
	if identifier == "" {
		return nil, nil
	}
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range st.Users {
		if (u.Phone == identifier || u.Email == identifier) && u.Password == secret {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// UpdateUser merges patch onto the user with the given id. Unknown ids are
// ignored.
func (s *UserStore) UpdateUser(ctx context.Context, id string, patch domain.ProfilePatch) error {
	if patch.Goal != nil && !patch.Goal.Valid() {
		return invalid("unknown goal %q", *patch.Goal)
	}
	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(st.Users, id)
	if i < 0 {
		return nil
	}
	patch.Apply(&st.Users[i])
	return s.save(ctx, st)
}

// GetUser returns the profile with the given id, or nil.
func (s *UserStore) GetUser(ctx context.Context, id string) (*domain.UserProfile, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(st.Users, id); i >= 0 {
		u := st.Users[i]
		return &u, nil
	}
	return nil, nil
}

// ListUsers returns every registered profile in registration order.
func (s *UserStore) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if st.Users == nil {
		return []domain.UserProfile{}, nil
	}
	return st.Users, nil
}

// Login makes the matching user current.
func (s *UserStore) Login(ctx context.Context, identifier, secret string) (*domain.UserProfile, error) {
	u, err := s.FindUserByIdentifierAndSecret(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	id := u.ID
	st.CurrentUserID = &id
	if err := s.save(ctx, st); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout clears the current user.
func (s *UserStore) Logout(ctx context.Context) error {
	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	if st.CurrentUserID == nil {
		return nil
	}
	st.CurrentUserID = nil
	return s.save(ctx, st)
}

// CurrentUser returns the active user, or nil when nobody is logged in.
func (s *UserStore) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if st.CurrentUserID == nil {
		return nil, nil
	}
	u := st.Users[indexOf(st.Users, *st.CurrentUserID)]
	return &u, nil
}

// MigrateLegacy converts a single-user installation into the first profile
// of an empty store, copying its records under namespaced keys. It does
// nothing once any profile exists or when no legacy profile is stored.
func (s *UserStore) MigrateLegacy(ctx context.Context) (*domain.UserProfile, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(st.Users) > 0 {
		return nil, nil
	}
	legacy, found, err := loadJSON[domain.UserProfile](ctx, s.kv, s.log, legacyProfileKey)
	if err != nil {
		return nil, fmt.Errorf("load legacy profile: %w", err)
	}
	if !found {
		return nil, nil
	}

	legacy.ID = s.newID()
	if legacy.CreatedAt.IsZero() {
		legacy.CreatedAt = s.cal.now().UTC()
	}
	if !legacy.Goal.Valid() {
		legacy.Goal = ""
	}

	log := s.log.WithField("user_id", legacy.ID)
	for _, suffix := range legacySuffixes {
		raw, ok, err := s.kv.Get(ctx, suffix)
		if err != nil {
			return nil, fmt.Errorf("read legacy %s: %w", suffix, err)
		}
		if !ok {
			continue
		}
		if err := s.kv.Set(ctx, StorageKey(legacy.ID, suffix), raw); err != nil {
			return nil, fmt.Errorf("copy legacy %s: %w", suffix, err)
		}
		log.WithField("suffix", suffix).Debug("copied legacy record")
	}

	// The profile is written last so a failed copy is retried on next load.
	id := legacy.ID
	st.Users = []domain.UserProfile{legacy}
	st.CurrentUserID = &id
	if err := s.save(ctx, st); err != nil {
		return nil, err
	}
	log.Info("migrated legacy profile")
	return &legacy, nil
}
