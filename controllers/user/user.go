package user

import (
	"strconv"

	"luggage-link/logger"
	accountService "luggage-link/services/account"
	"luggage-link/types"
	userTypes "luggage-link/types/user"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController handles user profile and verification HTTP requests
type UserController struct {
	Service *accountService.Service
	Logger  *logger.AsyncLogger
}

// NewUserController creates a new user controller
func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		Service: accountService.NewAccountService(db),
		Logger:  asyncLogger,
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	status := types.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("User operation failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Show returns the public profile of any user
func (uc *UserController) Show(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
		})
	}

	profile, err := uc.Service.PublicProfile(uint(userID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "User fetched successfully",
		Status:  fiber.StatusOK,
		Data:    profile,
	})
}

// UpdateVerification flips one verification flag for the authenticated
// user. Provider checks are simulated as always succeeding.
func (uc *UserController) UpdateVerification(c *fiber.Ctx) error {
	var req userTypes.UpdateVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	userInfo, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	updated, err := uc.Service.UpdateVerification(userInfo.ID, req.Field, req.Value)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	uc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Verification updated successfully",
		Status:  fiber.StatusOK,
		Data:    updated,
	})
}

// UpdateProfile applies a partial profile update for the authenticated user
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var req userTypes.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	userInfo, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	updated, err := uc.Service.UpdateProfile(userInfo.ID, req.FirstName, req.LastName, req.ProfileImage)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	uc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile updated successfully",
		Status:  fiber.StatusOK,
		Data:    updated,
	})
}
