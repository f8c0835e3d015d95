package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User model synced from the external identity provider on first login.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderUID  string  `gorm:"type:varchar(255);not null;unique" json:"provider_uid"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	FirstName    string  `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName     string  `gorm:"type:varchar(255)" json:"last_name"`
	ProfileImage *string `gorm:"type:varchar(2048)" json:"profile_image,omitempty"`

	// IsVerified is derived: true only when every flag in VerificationStatus is true.
	// Never written directly outside the account service.
	IsVerified         bool               `gorm:"default:false" json:"is_verified"`
	VerificationStatus VerificationStatus `gorm:"type:json" json:"verification_status"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// VerificationStatus tracks the three independent trust attestations.
type VerificationStatus struct {
	IDVerified      bool `json:"idVerified"`
	PhoneVerified   bool `json:"phoneVerified"`
	AddressVerified bool `json:"addressVerified"`
}

// AllVerified reports whether every attestation has been completed.
func (vs VerificationStatus) AllVerified() bool {
	return vs.IDVerified && vs.PhoneVerified && vs.AddressVerified
}

// Scan implements the Scanner interface for database deserialization
func (vs *VerificationStatus) Scan(value interface{}) error {
	if value == nil {
		*vs = VerificationStatus{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, vs)
	case string:
		return json.Unmarshal([]byte(v), vs)
	default:
		return errors.New("unsupported source type for VerificationStatus")
	}
}

// Value implements the driver Valuer interface for database serialization
func (vs VerificationStatus) Value() (driver.Value, error) {
	return json.Marshal(vs)
}

// PublicProfile is the subset of user fields safe to embed in listings,
// deliveries and conversations.
type PublicProfile struct {
	ID                 uint               `json:"id"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	ProfileImage       *string            `json:"profile_image,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	IsVerified         bool               `json:"is_verified"`
	Rating             float64            `json:"rating"`
	ReviewCount        int                `json:"review_count"`
	CreatedAt          time.Time          `json:"created_at"`
}

// Public returns the user's public profile view.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		ProfileImage:       u.ProfileImage,
		VerificationStatus: u.VerificationStatus,
		IsVerified:         u.IsVerified,
		Rating:             u.Rating,
		ReviewCount:        u.ReviewCount,
		CreatedAt:          u.CreatedAt,
	}
}
