package delivery

import (
	"time"
)

// Event types recorded against a delivery.
const (
	EventCreated        = "created"
	EventStatusChanged  = "status_changed"
	EventPaymentChanged = "payment_changed"
)

// StatusEvent is an append-only audit row written for every delivery
// creation and every status or payment-status transition.
type StatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for delivery relationship
	DeliveryID uint     `gorm:"not null;index" json:"delivery_id"`
	Delivery   Delivery `gorm:"foreignKey:DeliveryID" json:"-"`

	EventType     string        `gorm:"type:varchar(50);not null;index" json:"event_type"`
	Status        Status        `gorm:"type:varchar(20);not null" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`

	// Numeric id of the acting user, stored as text like all audit actors.
	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the StatusEvent model
func (StatusEvent) TableName() string {
	return "delivery_status_events"
}
