package review

import (
	"math"
	"testing"
	"time"

	deliveryModel "luggage-link/models/delivery"
	packageModel "luggage-link/models/packages"
	reviewModel "luggage-link/models/review"
	tripModel "luggage-link/models/trip"
	"luggage-link/models/user"
	"luggage-link/types"

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

	err = db.AutoMigrate(
		&user.User{},
		&tripModel.Trip{},
		&packageModel.Package{},
		&deliveryModel.Delivery{},
		&reviewModel.Review{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := user.User{
		ProviderUID: "uid-" + name,
		Email:       name + "@example.com",
		FirstName:   name,
		LastName:    "Test",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return &u
}

func seedDelivery(t *testing.T, db *gorm.DB, travelerID, senderID uint) *deliveryModel.Delivery {
	t.Helper()

	tr := tripModel.Trip{
		UserID:           travelerID,
		DepartureAirport: "JFK",
		DestinationCity:  "London",
		DepartureDate:    time.Now().Add(24 * time.Hour),
		ArrivalDate:      time.Now().Add(30 * time.Hour),
		FlightNumber:     "BA112",
		AvailableWeight:  10,
		PricePerKg:       8,
		IsActive:         true,
	}
	if err := db.Create(&tr).Error; err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}

	pkg := packageModel.Package{
		UserID:         senderID,
		SenderCity:     "New York",
		ReceiverCity:   "London",
		PackageType:    "documents",
		Weight:         1,
		OfferedPayment: 25,
		Status:         packageModel.StatusMatched,
		IsActive:       true,
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("failed to seed package: %v", err)
	}

	d := deliveryModel.Delivery{
		TripID:        tr.ID,
		PackageID:     pkg.ID,
		TravelerID:    travelerID,
		SenderID:      senderID,
		Status:        deliveryModel.StatusDelivered,
		PaymentStatus: deliveryModel.PaymentReleased,
	}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("failed to seed delivery: %v", err)
	}
	return &d
}

func TestCreateReviewValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := svc.Create(alice.ID, alice.ID, 5, nil, nil); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for self-review, got %v", err)
	}
	if _, err := svc.Create(alice.ID, bob.ID, 0, nil, nil); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for rating 0, got %v", err)
	}
	if _, err := svc.Create(alice.ID, bob.ID, 6, nil, nil); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for rating 6, got %v", err)
	}
	if _, err := svc.Create(alice.ID, 9999, 4, nil, nil); types.KindOf(err) != types.KindNotFound {
		t.Fatalf("expected NotFound for missing reviewee, got %v", err)
	}
}

func TestCreateReviewDeliveryChecks(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)

	traveler := seedUser(t, db, "traveler")
	sender := seedUser(t, db, "sender")
	outsider := seedUser(t, db, "outsider")
	d := seedDelivery(t, db, traveler.ID, sender.ID)

	missingID := uint(9999)
	if _, err := svc.Create(sender.ID, traveler.ID, 5, nil, &missingID); types.KindOf(err) != types.KindNotFound {
		t.Fatalf("expected NotFound for missing delivery, got %v", err)
	}
	if _, err := svc.Create(outsider.ID, traveler.ID, 5, nil, &d.ID); types.KindOf(err) != types.KindForbidden {
		t.Fatalf("expected Forbidden for non-party reviewer, got %v", err)
	}
	if _, err := svc.Create(sender.ID, outsider.ID, 5, nil, &d.ID); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for non-party reviewee, got %v", err)
	}

	if _, err := svc.Create(sender.ID, traveler.ID, 5, nil, &d.ID); err != nil {
		t.Fatalf("valid delivery review returned error: %v", err)
	}
}

func TestCreateReviewRecomputesAggregate(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)

	reviewee := seedUser(t, db, "reviewee")
	reviewers := []*user.User{
		seedUser(t, db, "r1"),
		seedUser(t, db, "r2"),
		seedUser(t, db, "r3"),
		seedUser(t, db, "r4"),
	}

	for i, rating := range []int{4, 5, 3} {
		if _, err := svc.Create(reviewers[i].ID, reviewee.ID, rating, nil, nil); err != nil {
			t.Fatalf("review %d returned error: %v", i, err)
		}
	}

	var u user.User
	if err := db.First(&u, reviewee.ID).Error; err != nil {
		t.Fatalf("failed to reload reviewee: %v", err)
	}
	if u.ReviewCount != 3 {
		t.Fatalf("expected review count 3, got %d", u.ReviewCount)
	}
	if math.Abs(u.Rating-4.0) > 1e-9 {
		t.Fatalf("expected rating 4.0, got %v", u.Rating)
	}

	if _, err := svc.Create(reviewers[3].ID, reviewee.ID, 5, nil, nil); err != nil {
		t.Fatalf("fourth review returned error: %v", err)
	}
	if err := db.First(&u, reviewee.ID).Error; err != nil {
		t.Fatalf("failed to reload reviewee: %v", err)
	}
	if u.ReviewCount != 4 {
		t.Fatalf("expected review count 4, got %d", u.ReviewCount)
	}
	if math.Abs(u.Rating-4.25) > 1e-9 {
		t.Fatalf("expected rating 4.25, got %v", u.Rating)
	}
}

func TestListForUser(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)

	reviewee := seedUser(t, db, "reviewee")
	r1 := seedUser(t, db, "r1")
	r2 := seedUser(t, db, "r2")

	comment := "great to work with"
	if _, err := svc.Create(r1.ID, reviewee.ID, 5, &comment, nil); err != nil {
		t.Fatalf("first review returned error: %v", err)
	}
	if _, err := svc.Create(r2.ID, reviewee.ID, 3, nil, nil); err != nil {
		t.Fatalf("second review returned error: %v", err)
	}

	entries, err := svc.ListForUser(reviewee.ID)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Reviewer.ID != r1.ID && entry.Reviewer.ID != r2.ID {
			t.Fatalf("unexpected reviewer profile: %+v", entry.Reviewer)
		}
	}
}
