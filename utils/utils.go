package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"luggage-link/database"
	"luggage-link/models/user"
	"luggage-link/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// GetUserByProviderUID retrieves a user by their identity provider UID
func GetUserByProviderUID(uid string) (*user.User, error) {
	if uid == "" {
		return nil, errors.New("provider UID cannot be empty")
	}

	var userModel user.User
	if err := database.DB.Where("provider_uid = ?", uid).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}

// ClaimsFromContext returns the verified JWT claims attached by the
// authentication middleware.
func ClaimsFromContext(c *fiber.Ctx) (jwt.MapClaims, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	return claims, nil
}

// ProviderUIDFromContext returns the identity provider UID of the
// authenticated request.
func ProviderUIDFromContext(c *fiber.Ctx) (string, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return "", err
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", errors.New("uid not found in token")
	}
	return uid, nil
}

// CurrentUser resolves the authenticated request to its local user row.
func CurrentUser(c *fiber.Ctx) (*user.User, error) {
	uid, err := ProviderUIDFromContext(c)
	if err != nil {
		return nil, err
	}
	return GetUserByProviderUID(uid)
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	userUID := ""
	if uid, err := ProviderUIDFromContext(c); err == nil {
		userUID = uid
	}

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		UserUID:         userUID,
		CreatedAt:       time.Now(),
	}
}

// sanitizeRequestBody sanitizes request body for file uploads and sensitive fields
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") || strings.Contains(body, "base64")) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	// Mask credential fields before the body reaches the log table.
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil {
		masked := false
		for _, field := range []string{"password", "access", "refresh", "token"} {
			if _, ok := parsed[field]; ok {
				parsed[field] = "[REDACTED]"
				masked = true
			}
		}
		if masked {
			if jsonBytes, err := json.Marshal(parsed); err == nil {
				return string(jsonBytes)
			}
		}
	}

	return body
}
