package review

import (
	"time"

	"luggage-link/models/delivery"
	"luggage-link/models/user"
)

// Review is an append-only rating+comment left by one user about another,
// optionally tied to a completed delivery. Creating one triggers a
// recomputation of the reviewee's aggregate rating and review count.
type Review struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ReviewerID uint      `gorm:"not null;index" json:"reviewer_id"`
	Reviewer   user.User `gorm:"foreignKey:ReviewerID" json:"-"`
	RevieweeID uint      `gorm:"not null;index" json:"reviewee_id"`
	Reviewee   user.User `gorm:"foreignKey:RevieweeID" json:"-"`

	DeliveryID *uint              `gorm:"index" json:"delivery_id,omitempty"`
	Delivery   *delivery.Delivery `gorm:"foreignKey:DeliveryID" json:"-"`

	Rating  int     `gorm:"not null" json:"rating"`
	Comment *string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
