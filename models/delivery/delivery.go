package delivery

import (
	"time"

	"luggage-link/models/packages"
	"luggage-link/models/trip"
	"luggage-link/models/user"
)

// Delivery binds one Trip and one Package once the parties have agreed,
// tracking physical-custody status and payment status independently.
type Delivery struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	TripID    uint             `gorm:"not null;index" json:"trip_id"`
	Trip      trip.Trip        `gorm:"foreignKey:TripID" json:"-"`
	PackageID uint             `gorm:"not null;index" json:"package_id"`
	Package   packages.Package `gorm:"foreignKey:PackageID" json:"-"`

	// TravelerID must equal the trip owner and SenderID the package owner.
	// Enforced at creation, not re-checked afterwards.
	TravelerID uint      `gorm:"not null;index" json:"traveler_id"`
	Traveler   user.User `gorm:"foreignKey:TravelerID" json:"-"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     user.User `gorm:"foreignKey:SenderID" json:"-"`

	Status        Status        `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
