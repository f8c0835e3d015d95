package message

import (
	"strconv"

	"luggage-link/logger"
	conversationService "luggage-link/services/conversation"
	"luggage-link/types"
	messageTypes "luggage-link/types/message"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MessageController handles direct-messaging HTTP requests
type MessageController struct {
	Service *conversationService.Service
	Logger  *logger.AsyncLogger
}

// NewMessageController creates a new message controller
func NewMessageController(db *gorm.DB, notifier conversationService.Notifier, asyncLogger *logger.AsyncLogger) *MessageController {
	return &MessageController{
		Service: conversationService.NewConversationService(db, notifier),
		Logger:  asyncLogger,
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	status := types.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Message operation failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Conversations lists the authenticated user's conversations, most
// recent first
func (mc *MessageController) Conversations(c *fiber.Ctx) error {
	userInfo, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	summaries, err := mc.Service.List(userInfo.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Conversations fetched successfully",
		Status:  fiber.StatusOK,
		Data:    summaries,
	})
}

// Thread returns the full exchange with one counterpart and marks
// incoming messages read
func (mc *MessageController) Thread(c *fiber.Ctx) error {
	otherID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid user id",
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

	thread, err := mc.Service.Thread(userInfo.ID, uint(otherID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Thread fetched successfully",
		Status:  fiber.StatusOK,
		Data:    thread,
	})
}

// Send stores a message and notifies both participants over the realtime hub
func (mc *MessageController) Send(c *fiber.Ctx) error {
	var req messageTypes.SendMessageRequest
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

	message, err := mc.Service.Send(userInfo.ID, req.ReceiverID, req.Content)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	mc.Logger.Log(logEntry)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Message sent successfully",
		Status:  fiber.StatusCreated,
		Data:    message,
	})
}
