package delivery

import (
	"strconv"

	"luggage-link/logger"
	deliveryService "luggage-link/services/delivery"
	"luggage-link/types"
	deliveryTypes "luggage-link/types/delivery"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DeliveryController handles delivery-related HTTP requests
type DeliveryController struct {
	Service *deliveryService.Service
	Logger  *logger.AsyncLogger
}

// NewDeliveryController creates a new delivery controller
func NewDeliveryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *DeliveryController {
	return &DeliveryController{
		Service: deliveryService.NewDeliveryService(db),
		Logger:  asyncLogger,
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	status := types.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Delivery operation failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Index lists the authenticated user's deliveries
func (dc *DeliveryController) Index(c *fiber.Ctx) error {
	userInfo, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	details, err := dc.Service.ListForUser(userInfo.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Deliveries fetched successfully",
		Status:  fiber.StatusOK,
		Data:    details,
	})
}

// Show returns one delivery; only its parties may see it
func (dc *DeliveryController) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid delivery id",
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

	detail, err := dc.Service.Get(uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	if detail.Delivery.SenderID != userInfo.ID && detail.Delivery.TravelerID != userInfo.ID {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the delivery parties may view it",
			Status:  fiber.StatusForbidden,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Delivery fetched successfully",
		Status:  fiber.StatusOK,
		Data:    detail,
	})
}

// Events returns the audit trail of a delivery
func (dc *DeliveryController) Events(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid delivery id",
			Status:  fiber.StatusBadRequest,
		})
	}

	events, err := dc.Service.Events(uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Delivery events fetched successfully",
		Status:  fiber.StatusOK,
		Data:    events,
	})
}

// Store matches a package to a trip
func (dc *DeliveryController) Store(c *fiber.Ctx) error {
	var req deliveryTypes.CreateDeliveryRequest
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

	detail, err := dc.Service.Create(req.TripID, req.PackageID, req.TravelerID, req.SenderID)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	dc.Logger.Log(logEntry)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Delivery created successfully",
		Status:  fiber.StatusCreated,
		Data:    detail,
	})
}

// UpdateStatus advances the custody status of a delivery
func (dc *DeliveryController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid delivery id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req deliveryTypes.UpdateStatusRequest
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

	detail, err := dc.Service.UpdateStatus(uint(id), userInfo.ID, req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	dc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Delivery status updated successfully",
		Status:  fiber.StatusOK,
		Data:    detail,
	})
}

// UpdatePayment moves the payment through the escrow states
func (dc *DeliveryController) UpdatePayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid delivery id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req deliveryTypes.UpdatePaymentStatusRequest
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

	detail, err := dc.Service.UpdatePaymentStatus(uint(id), userInfo.ID, req.PaymentStatus)
	if err != nil {
		return serviceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	dc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Payment status updated successfully",
		Status:  fiber.StatusOK,
		Data:    detail,
	})
}
