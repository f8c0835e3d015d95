package trip

import (
	"fmt"
	"time"

	"luggage-link/validation"

	"github.com/jinzhu/now"
)

type CreateTripRequest struct {
	DepartureAirport string    `json:"departure_airport" validate:"required"`
	DestinationCity  string    `json:"destination_city" validate:"required"`
	DepartureDate    time.Time `json:"departure_date" validate:"required"`
	ArrivalDate      time.Time `json:"arrival_date" validate:"required"`
	Airline          *string   `json:"airline,omitempty"`
	FlightNumber     string    `json:"flight_number" validate:"required"`
	AvailableWeight  float64   `json:"available_weight" validate:"required,gt=0"`
	PricePerKg       float64   `json:"price_per_kg" validate:"required,gt=0"`
	Notes            *string   `json:"notes,omitempty"`
}

// Validate validates the CreateTripRequest fields
func (r *CreateTripRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.DepartureDate.Before(now.BeginningOfDay()) {
		return fmt.Errorf("departure_date must not be in the past")
	}

	if r.ArrivalDate.Before(r.DepartureDate) {
		return fmt.Errorf("arrival_date must not be before departure_date")
	}

	return nil
}

// UpdateTripRequest carries a partial update; nil fields are left unchanged.
type UpdateTripRequest struct {
	DepartureAirport *string    `json:"departure_airport,omitempty"`
	DestinationCity  *string    `json:"destination_city,omitempty"`
	DepartureDate    *time.Time `json:"departure_date,omitempty"`
	ArrivalDate      *time.Time `json:"arrival_date,omitempty"`
	Airline          *string    `json:"airline,omitempty"`
	FlightNumber     *string    `json:"flight_number,omitempty"`
	AvailableWeight  *float64   `json:"available_weight,omitempty"`
	PricePerKg       *float64   `json:"price_per_kg,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

// Validate validates the UpdateTripRequest fields
func (r *UpdateTripRequest) Validate() error {
	if r.DepartureAirport != nil && *r.DepartureAirport == "" {
		return fmt.Errorf("departure_airport must not be empty")
	}

	if r.DestinationCity != nil && *r.DestinationCity == "" {
		return fmt.Errorf("destination_city must not be empty")
	}

	if r.FlightNumber != nil && *r.FlightNumber == "" {
		return fmt.Errorf("flight_number must not be empty")
	}

	if r.AvailableWeight != nil && *r.AvailableWeight <= 0 {
		return fmt.Errorf("available_weight must be greater than zero")
	}

	if r.PricePerKg != nil && *r.PricePerKg <= 0 {
		return fmt.Errorf("price_per_kg must be greater than zero")
	}

	if r.DepartureDate != nil && r.ArrivalDate != nil && r.ArrivalDate.Before(*r.DepartureDate) {
		return fmt.Errorf("arrival_date must not be before departure_date")
	}

	return nil
}

type SearchTripsQuery struct {
	DepartureAirport string    `query:"departure_airport"`
	DestinationCity  string    `query:"destination_city"`
	DepartureDate    time.Time `query:"departure_date"`
	MinWeight        float64   `query:"min_weight"`
}
