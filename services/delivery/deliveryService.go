package delivery

import (
	"errors"
	"fmt"

	deliveryModel "luggage-link/models/delivery"
	packageModel "luggage-link/models/packages"
	tripModel "luggage-link/models/trip"
	"luggage-link/models/user"
	"luggage-link/types"

	"gorm.io/gorm"
)

// Service handles the delivery lifecycle and its audit trail.
type Service struct {
	DB *gorm.DB
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Detail is a delivery enriched with its trip, package and the public
// profiles of both parties.
type Detail struct {
	Delivery deliveryModel.Delivery `json:"delivery"`
	Trip     tripModel.Trip         `json:"trip"`
	Package  packageModel.Package   `json:"package"`
	Traveler user.PublicProfile     `json:"traveler"`
	Sender   user.PublicProfile     `json:"sender"`
}

// Create matches a package to a trip. The traveler must own the trip and
// the sender must own the package; a package can have at most one
// non-cancelled delivery. The new delivery starts as pending/pending and
// the package is marked matched, all in one transaction.
func (s *Service) Create(tripID, packageID, travelerID, senderID uint) (*Detail, error) {
	var trip tripModel.Trip
	if err := s.DB.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("trip not found")
		}
		return nil, types.Internal("failed to load trip", err)
	}

	var pkg packageModel.Package
	if err := s.DB.First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("package not found")
		}
		return nil, types.Internal("failed to load package", err)
	}

	if travelerID != trip.UserID {
		return nil, types.InvalidArgument("traveler must own the trip")
	}

	if senderID != pkg.UserID {
		return nil, types.InvalidArgument("sender must own the package")
	}

	var existing int64
	err := s.DB.Model(&deliveryModel.Delivery{}).
		Where("package_id = ? AND status <> ?", packageID, deliveryModel.StatusCancelled).
		Count(&existing).Error
	if err != nil {
		return nil, types.Internal("failed to check existing deliveries", err)
	}
	if existing > 0 {
		return nil, types.Conflict("package already has an active delivery")
	}

	delivery := deliveryModel.Delivery{
		TripID:        tripID,
		PackageID:     packageID,
		TravelerID:    travelerID,
		SenderID:      senderID,
		Status:        deliveryModel.StatusPending,
		PaymentStatus: deliveryModel.PaymentPending,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}

		if err := tx.Model(&packageModel.Package{}).
			Where("id = ?", packageID).
			Update("status", packageModel.StatusMatched).Error; err != nil {
			return err
		}

		return appendEvent(tx, &delivery, deliveryModel.EventCreated, senderID)
	})
	if err != nil {
		return nil, types.Internal("failed to create delivery", err)
	}

	return s.Get(delivery.ID)
}

// UpdateStatus advances the custody status. Either party may act, but
// only transitions from the explicit table are allowed. Reaching
// delivered also marks the package delivered.
func (s *Service) UpdateStatus(deliveryID, actorID uint, newStatus deliveryModel.Status) (*Detail, error) {
	var delivery deliveryModel.Delivery
	if err := s.DB.First(&delivery, deliveryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("delivery not found")
		}
		return nil, types.Internal("failed to load delivery", err)
	}

	if actorID != delivery.SenderID && actorID != delivery.TravelerID {
		return nil, types.Forbidden("only the sender or traveler may update this delivery")
	}

	if !delivery.Status.CanTransitionTo(newStatus) {
		return nil, types.InvalidArgument(fmt.Sprintf("cannot transition delivery from %q to %q", delivery.Status, newStatus))
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&delivery).Update("status", newStatus).Error; err != nil {
			return err
		}
		delivery.Status = newStatus

		if newStatus == deliveryModel.StatusDelivered {
			if err := tx.Model(&packageModel.Package{}).
				Where("id = ?", delivery.PackageID).
				Update("status", packageModel.StatusDelivered).Error; err != nil {
				return err
			}
		}

		return appendEvent(tx, &delivery, deliveryModel.EventStatusChanged, actorID)
	})
	if err != nil {
		return nil, types.Internal("failed to update delivery status", err)
	}

	return s.Get(delivery.ID)
}

// UpdatePaymentStatus moves funds through the escrow states. Only the
// sender controls payment.
func (s *Service) UpdatePaymentStatus(deliveryID, actorID uint, newPS deliveryModel.PaymentStatus) (*Detail, error) {
	var delivery deliveryModel.Delivery
	if err := s.DB.First(&delivery, deliveryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("delivery not found")
		}
		return nil, types.Internal("failed to load delivery", err)
	}

	if actorID != delivery.SenderID {
		return nil, types.Forbidden("only the sender may update payment status")
	}

	if !delivery.PaymentStatus.CanTransitionTo(newPS) {
		return nil, types.InvalidArgument(fmt.Sprintf("cannot transition payment from %q to %q", delivery.PaymentStatus, newPS))
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&delivery).Update("payment_status", newPS).Error; err != nil {
			return err
		}
		delivery.PaymentStatus = newPS

		return appendEvent(tx, &delivery, deliveryModel.EventPaymentChanged, actorID)
	})
	if err != nil {
		return nil, types.Internal("failed to update payment status", err)
	}

	return s.Get(delivery.ID)
}

// Get returns one delivery enriched with trip, package and party profiles.
func (s *Service) Get(deliveryID uint) (*Detail, error) {
	var delivery deliveryModel.Delivery
	err := s.DB.Preload("Trip").Preload("Package").Preload("Traveler").Preload("Sender").
		First(&delivery, deliveryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("delivery not found")
		}
		return nil, types.Internal("failed to load delivery", err)
	}

	return toDetail(&delivery), nil
}

// ListForUser returns every delivery the user participates in, newest first.
func (s *Service) ListForUser(userID uint) ([]Detail, error) {
	var deliveries []deliveryModel.Delivery
	err := s.DB.Preload("Trip").Preload("Package").Preload("Traveler").Preload("Sender").
		Where("sender_id = ? OR traveler_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&deliveries).Error
	if err != nil {
		return nil, types.Internal("failed to list deliveries", err)
	}

	details := make([]Detail, 0, len(deliveries))
	for i := range deliveries {
		details = append(details, *toDetail(&deliveries[i]))
	}
	return details, nil
}

// Events returns the audit trail of a delivery, oldest first.
func (s *Service) Events(deliveryID uint) ([]deliveryModel.StatusEvent, error) {
	var count int64
	if err := s.DB.Model(&deliveryModel.Delivery{}).Where("id = ?", deliveryID).Count(&count).Error; err != nil {
		return nil, types.Internal("failed to load delivery", err)
	}
	if count == 0 {
		return nil, types.NotFound("delivery not found")
	}

	var events []deliveryModel.StatusEvent
	err := s.DB.Where("delivery_id = ?", deliveryID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, types.Internal("failed to list delivery events", err)
	}
	return events, nil
}

func appendEvent(tx *gorm.DB, d *deliveryModel.Delivery, eventType string, actorID uint) error {
	event := deliveryModel.StatusEvent{
		DeliveryID:    d.ID,
		EventType:     eventType,
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		CreatedBy:     fmt.Sprintf("user:%d", actorID),
	}
	return tx.Create(&event).Error
}

func toDetail(d *deliveryModel.Delivery) *Detail {
	return &Detail{
		Delivery: *d,
		Trip:     d.Trip,
		Package:  d.Package,
		Traveler: d.Traveler.Public(),
		Sender:   d.Sender.Public(),
	}
}
