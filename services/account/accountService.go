package account

import (
	"errors"
	"strings"

	"luggage-link/models/user"
	"luggage-link/types"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Service maps identity-provider accounts to local users and manages
// verification state.
type Service struct {
	DB *gorm.DB
}

// NewAccountService creates a new account service
func NewAccountService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// FindOrCreateFromClaims resolves the provider UID in the verified claims
// to a local user, creating one on first authentication.
func (s *Service) FindOrCreateFromClaims(claims jwt.MapClaims) (*user.User, error) {
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil, types.InvalidArgument("token is missing the uid claim")
	}

	var existing user.User
	err := s.DB.Where("provider_uid = ?", uid).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.Internal("failed to look up user", err)
	}

	email, _ := claims["email"].(string)
	firstName, _ := claims["first_name"].(string)
	lastName, _ := claims["last_name"].(string)

	created := user.User{
		ProviderUID: uid,
		Email:       strings.ToLower(email),
		FirstName:   firstName,
		LastName:    lastName,
	}
	if err := s.DB.Create(&created).Error; err != nil {
		return nil, types.Internal("failed to create user", err)
	}

	return &created, nil
}

// UpdateVerification flips one verification flag and recomputes the
// overall IsVerified conjunction.
func (s *Service) UpdateVerification(userID uint, field string, value bool) (*user.User, error) {
	var u user.User
	if err := s.DB.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, types.Internal("failed to load user", err)
	}

	switch field {
	case "idVerified":
		u.VerificationStatus.IDVerified = value
	case "phoneVerified":
		u.VerificationStatus.PhoneVerified = value
	case "addressVerified":
		u.VerificationStatus.AddressVerified = value
	default:
		return nil, types.InvalidArgument("unknown verification field")
	}

	u.IsVerified = u.VerificationStatus.AllVerified()

	err := s.DB.Model(&u).Updates(map[string]interface{}{
		"verification_status": u.VerificationStatus,
		"is_verified":         u.IsVerified,
	}).Error
	if err != nil {
		return nil, types.Internal("failed to update verification", err)
	}

	return &u, nil
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(userID uint, firstName, lastName, profileImage *string) (*user.User, error) {
	var u user.User
	if err := s.DB.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, types.Internal("failed to load user", err)
	}

	updates := map[string]interface{}{}
	if firstName != nil {
		updates["first_name"] = *firstName
	}
	if lastName != nil {
		updates["last_name"] = *lastName
	}
	if profileImage != nil {
		updates["profile_image"] = *profileImage
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&u).Updates(updates).Error; err != nil {
			return nil, types.Internal("failed to update profile", err)
		}
	}

	if err := s.DB.First(&u, userID).Error; err != nil {
		return nil, types.Internal("failed to reload user", err)
	}
	return &u, nil
}

// PublicProfile returns the public view of a user.
func (s *Service) PublicProfile(userID uint) (*user.PublicProfile, error) {
	var u user.User
	if err := s.DB.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, types.Internal("failed to load user", err)
	}

	profile := u.Public()
	return &profile, nil
}
