package account

import (
	"testing"

	"luggage-link/models/user"
	"luggage-link/types"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Each pooled connection would otherwise get its own in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&user.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestFindOrCreateFromClaims(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db)

	claims := jwt.MapClaims{
		"uid":        "provider-123",
		"email":      "Alice@Example.com",
		"first_name": "Alice",
		"last_name":  "Nguyen",
	}

	created, err := svc.FindOrCreateFromClaims(claims)
	if err != nil {
		t.Fatalf("FindOrCreateFromClaims returned error: %v", err)
	}
	if created.ProviderUID != "provider-123" {
		t.Fatalf("expected provider UID to be stored, got %q", created.ProviderUID)
	}
	if created.Email != "alice@example.com" {
		t.Fatalf("expected lower-cased email, got %q", created.Email)
	}

	// Second call resolves the same row instead of creating another.
	again, err := svc.FindOrCreateFromClaims(claims)
	if err != nil {
		t.Fatalf("second FindOrCreateFromClaims returned error: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("expected the existing user, got new id %d", again.ID)
	}

	var count int64
	if err := db.Model(&user.User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestFindOrCreateMissingUID(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db)

	if _, err := svc.FindOrCreateFromClaims(jwt.MapClaims{}); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for missing uid claim, got %v", err)
	}
}

func TestUpdateVerification(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db)

	u := user.User{ProviderUID: "uid-v", Email: "v@example.com", FirstName: "Vera"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	for _, field := range []string{"idVerified", "phoneVerified"} {
		updated, err := svc.UpdateVerification(u.ID, field, true)
		if err != nil {
			t.Fatalf("UpdateVerification(%s) returned error: %v", field, err)
		}
		// IsVerified stays false until every flag is set.
		if updated.IsVerified {
			t.Fatalf("user became verified with only %s set", field)
		}
	}

	updated, err := svc.UpdateVerification(u.ID, "addressVerified", true)
	if err != nil {
		t.Fatalf("UpdateVerification(addressVerified) returned error: %v", err)
	}
	if !updated.IsVerified {
		t.Fatal("expected IsVerified once all three flags are set")
	}

	// Clearing any flag drops the conjunction again.
	updated, err = svc.UpdateVerification(u.ID, "phoneVerified", false)
	if err != nil {
		t.Fatalf("UpdateVerification(clear) returned error: %v", err)
	}
	if updated.IsVerified {
		t.Fatal("expected IsVerified to clear when a flag is withdrawn")
	}

	var reloaded user.User
	if err := db.First(&reloaded, u.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.IsVerified || !reloaded.VerificationStatus.IDVerified || reloaded.VerificationStatus.PhoneVerified {
		t.Fatalf("persisted verification state mismatch: %+v", reloaded.VerificationStatus)
	}
}

func TestUpdateVerificationErrors(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db)

	u := user.User{ProviderUID: "uid-e", Email: "e@example.com", FirstName: "Errol"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if _, err := svc.UpdateVerification(u.ID, "emailVerified", true); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for unknown field, got %v", err)
	}
	if _, err := svc.UpdateVerification(9999, "idVerified", true); types.KindOf(err) != types.KindNotFound {
		t.Fatalf("expected NotFound for missing user, got %v", err)
	}
}

func TestPublicProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db)

	u := user.User{
		ProviderUID: "uid-p",
		Email:       "p@example.com",
		FirstName:   "Pia",
		LastName:    "Klein",
		Rating:      4.5,
		ReviewCount: 12,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	profile, err := svc.PublicProfile(u.ID)
	if err != nil {
		t.Fatalf("PublicProfile returned error: %v", err)
	}
	if profile.ID != u.ID || profile.FirstName != "Pia" || profile.Rating != 4.5 || profile.ReviewCount != 12 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := svc.PublicProfile(9999); types.KindOf(err) != types.KindNotFound {
		t.Fatalf("expected NotFound for missing user, got %v", err)
	}
}
