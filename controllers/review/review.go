package review

import (
	"strconv"

	"luggage-link/logger"
	reviewService "luggage-link/services/review"
	"luggage-link/types"
	reviewTypes "luggage-link/types/review"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReviewController handles review-related HTTP requests
type ReviewController struct {
	Service *reviewService.Service
	Logger  *logger.AsyncLogger
}

// NewReviewController creates a new review controller
func NewReviewController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReviewController {
	return &ReviewController{
		Service: reviewService.NewReviewService(db),
		Logger:  asyncLogger,
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	status := types.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Review operation failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Store creates a review written by the authenticated user
func (rc *ReviewController) Store(c *fiber.Ctx) error {
	var req reviewTypes.CreateReviewRequest
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

	review, err := rc.Service.Create(userInfo.ID, req.RevieweeID, req.Rating, req.Comment, req.DeliveryID)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	rc.Logger.Log(logEntry)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Review created successfully",
		Status:  fiber.StatusCreated,
		Data:    review,
	})
}

// ListForUser lists reviews written about a user
func (rc *ReviewController) ListForUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
		})
	}

	entries, err := rc.Service.ListForUser(uint(userID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Reviews fetched successfully",
		Status:  fiber.StatusOK,
		Data:    entries,
	})
}
