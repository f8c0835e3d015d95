package auth

import (
	"os"
	"strings"
	"time"

	httpServices "luggage-link/httpServices/identity"
	"luggage-link/logger"
	accountService "luggage-link/services/account"
	"luggage-link/types"
	authTypes "luggage-link/types/auth"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	httpService    *httpServices.IdentityClient
	accounts       *accountService.Service
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(service *httpServices.IdentityClient, db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{
		httpService:    service,
		db:             db,
		accounts:       accountService.NewAccountService(db),
		loggerInstance: asyncLogger,
	}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Login validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	loginResponse, err := h.httpService.Login(req)
	if err != nil {
		logger.Error("Failed to login user", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Failed to login user",
			Status:  fiber.StatusBadGateway,
		})
	}

	h.setSecureCookie(c, "access", loginResponse.Access, 60*60*24)
	h.setSecureCookie(c, "refresh", loginResponse.Refresh, 60*60*24*7)

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("User logged in successfully at " + currentTime)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   loginResponse.Access,
		Data:    loginResponse.User,
	})
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Register validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	registerResponse, err := h.httpService.Register(req)
	if err != nil {
		logger.Error("Failed to register user", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusBadGateway,
		})
	}

	// Mirror the provider account locally so profiles resolve immediately.
	if registerResponse.User.UID != "" {
		if _, err := h.accounts.FindOrCreateFromClaims(jwt.MapClaims{
			"uid":        registerResponse.User.UID,
			"email":      registerResponse.User.Email,
			"first_name": registerResponse.User.FirstName,
			"last_name":  registerResponse.User.LastName,
		}); err != nil {
			logger.Error("Failed to create user in local database", err)
			// External registration succeeded; local sync retries on first login.
		} else {
			logger.Success("User created in local database successfully. UID: " + registerResponse.User.UID)
		}
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Registration successful",
		Status:  fiber.StatusOK,
		Token:   registerResponse.Access,
		Data:    registerResponse.User,
	})
}

func (h *AuthController) LogOut(c *fiber.Ctx) error {
	token := c.Cookies("access")
	if token == "" {
		authHeader := c.Get("Authorization")
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			token = tokenParts[1]
		}
	}

	if token != "" {
		if err := h.httpService.Logout(token); err != nil {
			logger.Error("Identity provider logout failed", err)
		}
	}

	h.setSecureCookie(c, "access", "", -1)
	h.setSecureCookie(c, "refresh", "", -1)

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logged out",
		Status:  fiber.StatusOK,
	})
}

// Profile resolves the authenticated token to the local user, creating
// the local row on first authentication.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	userInfo, err := h.accounts.FindOrCreateFromClaims(claims)
	if err != nil {
		logger.Error("Failed to resolve user from claims", err)
		status := types.HTTPStatus(err)
		return c.Status(status).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  status,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    userInfo,
	})
}
