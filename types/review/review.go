package review

import "luggage-link/validation"

type CreateReviewRequest struct {
	RevieweeID uint    `json:"reviewee_id" validate:"required"`
	DeliveryID *uint   `json:"delivery_id,omitempty"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment,omitempty"`
}

// Validate validates the CreateReviewRequest fields
func (r *CreateReviewRequest) Validate() error {
	return validation.Struct(r)
}
