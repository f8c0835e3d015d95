package message

import (
	"time"

	"luggage-link/models/user"
)

// Message is a single directed text communication between two users.
// Rows are immutable once created except for IsRead, which only the
// receiver's read-path may flip. The auto-increment ID doubles as the
// monotonic tie-breaker when two messages share a creation timestamp.
type Message struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     user.User `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   user.User `gorm:"foreignKey:ReceiverID" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
