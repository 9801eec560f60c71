package app_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"healthstate/internal/app"
	"healthstate/internal/domain"
)

func newUserStore(kv domain.KVStore, maxUsers int) *app.UserStore {
	return app.NewUserStore(kv, newClock(), maxUsers, quietLogger())
}

func TestAddUser_AssignsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	store := newUserStore(kv, 5)

	u, err := store.AddUser(ctx, domain.UserProfile{Phone: "555-0100", Password: "pw", Nickname: "sam"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" || strings.Contains(u.ID, "_") {
		t.Fatalf("unexpected id %q", u.ID)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	raw, ok, _ := kv.Get(ctx, app.UsersKey)
	if !ok || !strings.Contains(raw, u.ID) {
		t.Fatalf("expected persisted state to contain the user, got %q", raw)
	}

	again, err := store.AddUser(ctx, domain.UserProfile{Phone: "555-0101"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID == u.ID {
		t.Fatal("expected distinct ids")
	}
}

func TestAddUser_Capacity(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	const maxUsers = 3
	store := newUserStore(kv, maxUsers)

	for i := 0; i < maxUsers; i++ {
		if _, err := store.AddUser(ctx, domain.UserProfile{Phone: fmt.Sprintf("555-010%d", i)}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	before, _, _ := kv.Get(ctx, app.UsersKey)

	_, err := store.AddUser(ctx, domain.UserProfile{Phone: "555-0199"})
	if !errors.Is(err, app.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}

	after, _, _ := kv.Get(ctx, app.UsersKey)
	if before != after {
		t.Fatal("store must not change on a capacity failure")
	}
	users, _ := store.ListUsers(ctx)
	if len(users) != maxUsers {
		t.Fatalf("expected %d users, got %d", maxUsers, len(users))
	}
}

func TestAddUser_RejectsUnknownGoal(t *testing.T) {
	store := newUserStore(newMockKV(), 5)
	_, err := store.AddUser(context.Background(), domain.UserProfile{Goal: "bulk"})
	if !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFindUserByIdentifierAndSecret(t *testing.T) {
	ctx := context.Background()
	store := newUserStore(newMockKV(), 5)
	a, _ := store.AddUser(ctx, domain.UserProfile{Phone: "555-0100", Email: "a@example.com", Password: "secret"})
	_, _ = store.AddUser(ctx, domain.UserProfile{Phone: "555-0200", Password: "other"})

	tests := []struct {
		name       string
		identifier string
		secret     string
		wantID     string
	}{
		{"by phone", "555-0100", "secret", a.ID},
		{"by email", "a@example.com", "secret", a.ID},
		{"wrong secret", "555-0100", "Secret", ""},
		{"email case differs", "A@example.com", "secret", ""},
		{"partial phone", "555-01", "secret", ""},
		{"empty identifier", "", "", ""},
		{"unknown", "555-0999", "secret", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := store.FindUserByIdentifierAndSecret(ctx, tc.identifier, tc.secret)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch {
			case tc.wantID == "" && u != nil:
				t.Fatalf("expected no match, got %s", u.ID)
			case tc.wantID != "" && (u == nil || u.ID != tc.wantID):
				t.Fatalf("expected %s, got %v", tc.wantID, u)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	store := newUserStore(kv, 5)
	u, _ := store.AddUser(ctx, domain.UserProfile{Phone: "555-0100", Nickname: "sam", HeightCm: 180})

	nick := "samantha"
	if err := store.UpdateUser(ctx, u.ID, domain.ProfilePatch{Nickname: &nick}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := store.GetUser(ctx, u.ID)
	if got.Nickname != "samantha" || got.HeightCm != 180 || got.Phone != "555-0100" {
		t.Fatalf("unexpected profile after patch: %+v", got)
	}

	before, _, _ := kv.Get(ctx, app.UsersKey)
	if err := store.UpdateUser(ctx, "no-such-id", domain.ProfilePatch{Nickname: &nick}); err != nil {
		t.Fatalf("unknown id must be a silent no-op, got %v", err)
	}
	after, _, _ := kv.Get(ctx, app.UsersKey)
	if before != after {
		t.Fatal("unknown id must not change the store")
	}
}

func TestLoginLogoutCurrentUser(t *testing.T) {
	ctx := context.Background()
	store := newUserStore(newMockKV(), 5)
	u, _ := store.AddUser(ctx, domain.UserProfile{Email: "a@example.com", Password: "pw"})

	if cur, _ := store.CurrentUser(ctx); cur != nil {
		t.Fatal("expected nobody logged in")
	}
	if _, err := store.Login(ctx, "a@example.com", "nope"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := store.Login(ctx, "a@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	cur, _ := store.CurrentUser(ctx)
	if cur == nil || cur.ID != u.ID {
		t.Fatalf("expected current user %s, got %v", u.ID, cur)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if cur, _ := store.CurrentUser(ctx); cur != nil {
		t.Fatal("expected nobody logged in after logout")
	}
}

func TestLoad_MalformedStateIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	_ = kv.Set(ctx, app.UsersKey, "{not json")
	store := newUserStore(kv, 5)

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("malformed state must not error, got %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %d", len(users))
	}
	if _, err := store.AddUser(ctx, domain.UserProfile{Phone: "1"}); err != nil {
		t.Fatalf("add after malformed state: %v", err)
	}
}

func TestLoad_DanglingCurrentUserIgnored(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	_ = kv.Set(ctx, app.UsersKey, `{"currentUserId":"ghost","users":[]}`)
	store := newUserStore(kv, 5)

	cur, err := store.CurrentUser(ctx)
	if err != nil || cur != nil {
		t.Fatalf("expected no current user, got %v, %v", cur, err)
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	kv := newMockKV()
	kv.getFn = func(context.Context, string) (string, bool, error) { return "", false, errors.New("disk gone") }
	store := newUserStore(kv, 5)

	if _, err := store.AddUser(context.Background(), domain.UserProfile{}); err == nil {
		t.Fatal("expected store error")
	}
}

func TestStorageKey(t *testing.T) {
	if got := app.StorageKey("abc", "water"); got != "user_abc_water" {
		t.Fatalf("unexpected key %q", got)
	}

	ctx := context.Background()
	store := newUserStore(newMockKV(), 10)
	seen := map[string]string{}
	for i := 0; i < 10; i++ {
		u, err := store.AddUser(ctx, domain.UserProfile{Phone: fmt.Sprint(i)})
		if err != nil {
			t.Fatal(err)
		}
		for _, suffix := range []string{"water", "nutrition", "water_history", "labs"} {
			key := store.GetStorageKey(u.ID, suffix)
			if owner, dup := seen[key]; dup {
				t.Fatalf("key %q shared by %s and %s", key, owner, u.ID)
			}
			seen[key] = u.ID
		}
	}
}

func TestMigrateLegacy(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	_ = kv.Set(ctx, "user_profile", `{"phone":"555-0100","password":"pw","nickname":"legacy","weightKg":72}`)
	_ = kv.Set(ctx, "water", `{"date":"2026-02-07","consumedMl":750,"goalMl":2500}`)
	_ = kv.Set(ctx, "labs", `[{"date":"2026-01-01","testosterone":20}]`)
	store := newUserStore(kv, 5)

	u, err := store.MigrateLegacy(ctx)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if u == nil || u.Nickname != "legacy" || u.WeightKg != 72 {
		t.Fatalf("unexpected migrated profile %+v", u)
	}

	water, ok, _ := kv.Get(ctx, app.StorageKey(u.ID, "water"))
	if !ok || !strings.Contains(water, `"consumedMl":750`) {
		t.Fatalf("water not copied: %q", water)
	}
	if _, ok, _ := kv.Get(ctx, app.StorageKey(u.ID, "labs")); !ok {
		t.Fatal("labs not copied")
	}
	if _, ok, _ := kv.Get(ctx, app.StorageKey(u.ID, "nutrition")); ok {
		t.Fatal("absent legacy records must not be created")
	}
	cur, _ := store.CurrentUser(ctx)
	if cur == nil || cur.ID != u.ID {
		t.Fatal("migrated user should be current")
	}

	again, err := store.MigrateLegacy(ctx)
	if err != nil || again != nil {
		t.Fatalf("second migration must be a no-op, got %v, %v", again, err)
	}
	users, _ := store.ListUsers(ctx)
	if len(users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(users))
	}
}

func TestMigrateLegacy_NothingToMigrate(t *testing.T) {
	ctx := context.Background()
	store := newUserStore(newMockKV(), 5)
	u, err := store.MigrateLegacy(ctx)
	if err != nil || u != nil {
		t.Fatalf("expected no-op, got %v, %v", u, err)
	}
}

func TestMigrateLegacy_SkippedWhenUsersExist(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	_ = kv.Set(ctx, "user_profile", `{"phone":"555-0100"}`)
	store := newUserStore(kv, 5)
	_, _ = store.AddUser(ctx, domain.UserProfile{Phone: "555-0200"})

	u, err := store.MigrateLegacy(ctx)
	if err != nil || u != nil {
		t.Fatalf("expected no-op, got %v, %v", u, err)
	}
}
