package packages

import (
	"fmt"
	"time"

	packageModel "luggage-link/models/packages"
	"luggage-link/validation"
)

type CreatePackageRequest struct {
	SenderCity       string                   `json:"sender_city" validate:"required"`
	ReceiverCity     string                   `json:"receiver_city" validate:"required"`
	PackageType      string                   `json:"package_type" validate:"required"`
	Weight           float64                  `json:"weight" validate:"required,gt=0"`
	Dimensions       *packageModel.Dimensions `json:"dimensions,omitempty"`
	DeliveryDeadline *time.Time               `json:"delivery_deadline,omitempty"`
	OfferedPayment   float64                  `json:"offered_payment" validate:"required,gt=0"`
	Description      *string                  `json:"description,omitempty"`
}

// Validate validates the CreatePackageRequest fields
func (r *CreatePackageRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.Dimensions != nil {
		if r.Dimensions.Length <= 0 || r.Dimensions.Width <= 0 || r.Dimensions.Height <= 0 {
			return fmt.Errorf("dimensions must all be greater than zero")
		}
	}

	return nil
}

// UpdatePackageRequest carries a partial update; nil fields are left unchanged.
type UpdatePackageRequest struct {
	SenderCity       *string                  `json:"sender_city,omitempty"`
	ReceiverCity     *string                  `json:"receiver_city,omitempty"`
	PackageType      *string                  `json:"package_type,omitempty"`
	Weight           *float64                 `json:"weight,omitempty"`
	Dimensions       *packageModel.Dimensions `json:"dimensions,omitempty"`
	DeliveryDeadline *time.Time               `json:"delivery_deadline,omitempty"`
	OfferedPayment   *float64                 `json:"offered_payment,omitempty"`
	Description      *string                  `json:"description,omitempty"`
	IsActive         *bool                    `json:"is_active,omitempty"`
}

// Validate validates the UpdatePackageRequest fields
func (r *UpdatePackageRequest) Validate() error {
	if r.SenderCity != nil && *r.SenderCity == "" {
		return fmt.Errorf("sender_city must not be empty")
	}

	if r.ReceiverCity != nil && *r.ReceiverCity == "" {
		return fmt.Errorf("receiver_city must not be empty")
	}

	if r.PackageType != nil && *r.PackageType == "" {
		return fmt.Errorf("package_type must not be empty")
	}

	if r.Weight != nil && *r.Weight <= 0 {
		return fmt.Errorf("weight must be greater than zero")
	}

	if r.OfferedPayment != nil && *r.OfferedPayment <= 0 {
		return fmt.Errorf("offered_payment must be greater than zero")
	}

	return nil
}

type SearchPackagesQuery struct {
	SenderCity     string  `query:"sender_city"`
	ReceiverCity   string  `query:"receiver_city"`
	PackageType    string  `query:"package_type"`
	MaxWeight      float64 `query:"max_weight"`
	Status         string  `query:"status"`
	DeadlineBefore string  `query:"deadline_before"`
}
