package message

import "luggage-link/validation"

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Validate validates the SendMessageRequest fields
func (r *SendMessageRequest) Validate() error {
	return validation.Struct(r)
}
