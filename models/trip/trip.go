package trip

import (
	"time"

	"luggage-link/models/user"
)

// Trip represents a traveler's offer of spare luggage capacity on a journey.
type Trip struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	DepartureAirport string    `gorm:"type:varchar(255);not null" json:"departure_airport"`
	DestinationCity  string    `gorm:"type:varchar(255);not null" json:"destination_city"`
	DepartureDate    time.Time `gorm:"not null" json:"departure_date"`
	ArrivalDate      time.Time `gorm:"not null" json:"arrival_date"`
	Airline          *string   `gorm:"type:varchar(255)" json:"airline,omitempty"`
	FlightNumber     string    `gorm:"type:varchar(50);not null" json:"flight_number"`
	AvailableWeight  float64   `gorm:"not null" json:"available_weight"`
	PricePerKg       float64   `gorm:"not null" json:"price_per_kg"`
	Notes            *string   `gorm:"type:text" json:"notes,omitempty"`

	// Owner-toggleable visibility flag. Trips are never deleted, only hidden.
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
