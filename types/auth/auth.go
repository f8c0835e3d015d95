package auth

import "luggage-link/validation"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest fields
func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Validate validates the RegisterRequest fields
func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}
