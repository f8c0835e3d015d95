package review

import (
	"errors"

	deliveryModel "luggage-link/models/delivery"
	reviewModel "luggage-link/models/review"
	"luggage-link/models/user"
	"luggage-link/types"

	"gorm.io/gorm"
)

// Service handles reviews and the reviewee's aggregate rating.
type Service struct {
	DB *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Entry is a review paired with the reviewer's public profile.
type Entry struct {
	Review   reviewModel.Review `json:"review"`
	Reviewer user.PublicProfile `json:"reviewer"`
}

// Create stores a review and recomputes the reviewee's rating and review
// count from all of their reviews in the same transaction.
func (s *Service) Create(reviewerID, revieweeID uint, rating int, comment *string, deliveryID *uint) (*reviewModel.Review, error) {
	if reviewerID == revieweeID {
		return nil, types.InvalidArgument("cannot review yourself")
	}

	if rating < 1 || rating > 5 {
		return nil, types.InvalidArgument("rating must be between 1 and 5")
	}

	if deliveryID != nil {
		var delivery deliveryModel.Delivery
		if err := s.DB.First(&delivery, *deliveryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.NotFound("delivery not found")
			}
			return nil, types.Internal("failed to load delivery", err)
		}

		if reviewerID != delivery.SenderID && reviewerID != delivery.TravelerID {
			return nil, types.Forbidden("reviewer is not a party to this delivery")
		}

		if revieweeID != delivery.SenderID && revieweeID != delivery.TravelerID {
			return nil, types.InvalidArgument("reviewee is not a party to this delivery")
		}
	}

	var reviewee user.User
	if err := s.DB.First(&reviewee, revieweeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("reviewee not found")
		}
		return nil, types.Internal("failed to load reviewee", err)
	}

	review := reviewModel.Review{
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		DeliveryID: deliveryID,
		Rating:     rating,
		Comment:    comment,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// Recompute the aggregate from all reviews rather than adjusting
		// incrementally, so the stored values can never drift.
		return tx.Exec(`
			UPDATE users SET
				rating = (SELECT AVG(rating) FROM reviews WHERE reviewee_id = ?),
				review_count = (SELECT COUNT(*) FROM reviews WHERE reviewee_id = ?)
			WHERE id = ?`,
			revieweeID, revieweeID, revieweeID).Error
	})
	if err != nil {
		return nil, types.Internal("failed to create review", err)
	}

	return &review, nil
}

// ListForUser returns the reviews written about a user, newest first,
// with each reviewer's public profile.
func (s *Service) ListForUser(userID uint) ([]Entry, error) {
	var reviews []reviewModel.Review
	err := s.DB.Preload("Reviewer").
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, types.Internal("failed to list reviews", err)
	}

	entries := make([]Entry, 0, len(reviews))
	for i := range reviews {
		entries = append(entries, Entry{
			Review:   reviews[i],
			Reviewer: reviews[i].Reviewer.Public(),
		})
	}
	return entries, nil
}
