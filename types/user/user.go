package user

import (
	"fmt"

	"luggage-link/validation"
)

type UpdateVerificationRequest struct {
	Field string `json:"field" validate:"required,oneof=idVerified phoneVerified addressVerified"`
	Value bool   `json:"value"`
}

// Validate validates the UpdateVerificationRequest fields
func (r *UpdateVerificationRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// Validate validates the UpdateProfileRequest fields
func (r *UpdateProfileRequest) Validate() error {
	if r.FirstName != nil && *r.FirstName == "" {
		return fmt.Errorf("first_name must not be empty")
	}

	if r.LastName != nil && *r.LastName == "" {
		return fmt.Errorf("last_name must not be empty")
	}

	return nil
}
