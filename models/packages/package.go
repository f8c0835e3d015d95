package packages

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"luggage-link/models/user"
)

// Package represents a sender's request to move an item.
type Package struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	SenderCity       string      `gorm:"type:varchar(255);not null" json:"sender_city"`
	ReceiverCity     string      `gorm:"type:varchar(255);not null" json:"receiver_city"`
	PackageType      string      `gorm:"type:varchar(100);not null" json:"package_type"`
	Weight           float64     `gorm:"not null" json:"weight"`
	Dimensions       *Dimensions `gorm:"type:json" json:"dimensions,omitempty"`
	DeliveryDeadline *time.Time  `json:"delivery_deadline,omitempty"`
	OfferedPayment   float64     `gorm:"not null" json:"offered_payment"`
	Description      *string     `gorm:"type:text" json:"description,omitempty"`

	// Status is system-managed: only delivery lifecycle transitions advance it.
	Status Status `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	// Owner-toggleable visibility flag, independent of Status.
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Status of a package within the matching lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusMatched   Status = "matched"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Dimensions holds optional length/width/height in centimeters.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scan implements the Scanner interface for database deserialization
func (d *Dimensions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported source type for Dimensions")
	}
}

// Value implements the driver Valuer interface for database serialization
func (d Dimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}
