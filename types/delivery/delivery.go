package delivery

import (
	"fmt"

	deliveryModel "luggage-link/models/delivery"
	"luggage-link/validation"
)

type CreateDeliveryRequest struct {
	TripID     uint `json:"trip_id" validate:"required"`
	PackageID  uint `json:"package_id" validate:"required"`
	TravelerID uint `json:"traveler_id" validate:"required"`
	SenderID   uint `json:"sender_id" validate:"required"`
}

// Validate validates the CreateDeliveryRequest fields
func (r *CreateDeliveryRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateStatusRequest struct {
	Status deliveryModel.Status `json:"status" validate:"required"`
}

// Validate validates the UpdateStatusRequest fields
func (r *UpdateStatusRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if !r.Status.IsValid() {
		return fmt.Errorf("status must be one of 'pending', 'accepted', 'in_transit', 'delivered' or 'cancelled'")
	}

	return nil
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus deliveryModel.PaymentStatus `json:"payment_status" validate:"required"`
}

// Validate validates the UpdatePaymentStatusRequest fields
func (r *UpdatePaymentStatusRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if !r.PaymentStatus.IsValid() {
		return fmt.Errorf("payment_status must be one of 'pending', 'in_escrow', 'released' or 'refunded'")
	}

	return nil
}
