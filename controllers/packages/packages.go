package packages

import (
	"errors"
	"strconv"
	"time"

	"luggage-link/logger"
	packageModel "luggage-link/models/packages"
	"luggage-link/types"
	packageTypes "luggage-link/types/packages"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// PackageController handles package-related HTTP requests
type PackageController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewPackageController creates a new package controller
func NewPackageController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PackageController {
	return &PackageController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists active packages, optionally filtered by route, weight and status
func (pc *PackageController) Index(c *fiber.Ctx) error {
	var query packageTypes.SearchPackagesQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid query parameters",
			Status:  fiber.StatusBadRequest,
		})
	}

	q := pc.DB.Preload("User").Where("is_active = ?", true)

	if query.SenderCity != "" {
		q = q.Where("sender_city = ?", query.SenderCity)
	}
	if query.ReceiverCity != "" {
		q = q.Where("receiver_city = ?", query.ReceiverCity)
	}
	if query.PackageType != "" {
		q = q.Where("package_type = ?", query.PackageType)
	}
	if query.MaxWeight > 0 {
		q = q.Where("weight <= ?", query.MaxWeight)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.DeadlineBefore != "" {
		deadline, err := time.Parse("2006-01-02", query.DeadlineBefore)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "deadline_before must be a YYYY-MM-DD date",
				Status:  fiber.StatusBadRequest,
			})
		}
		q = q.Where("delivery_deadline <= ?", now.With(deadline).EndOfDay())
	}

	var pkgs []packageModel.Package
	if err := q.Order("created_at DESC").Find(&pkgs).Error; err != nil {
		logger.Error("Failed to list packages", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list packages",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Packages fetched successfully",
		Status:  fiber.StatusOK,
		Data:    pkgs,
	})
}

// Show returns one package with its owner's public profile
func (pc *PackageController) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid package id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var pkg packageModel.Package
	if err := pc.DB.Preload("User").First(&pkg, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Package not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load package", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to load package",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Package fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"package": pkg,
			"owner":   pkg.User.Public(),
		},
	})
}

// Mine lists the authenticated user's packages, newest first
func (pc *PackageController) Mine(c *fiber.Ctx) error {
	userInfo, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var pkgs []packageModel.Package
	if err := pc.DB.Where("user_id = ?", userInfo.ID).Order("created_at DESC").Find(&pkgs).Error; err != nil {
		logger.Error("Failed to list user packages", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list packages",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Packages fetched successfully",
		Status:  fiber.StatusOK,
		Data:    pkgs,
	})
}

// Store creates a new package. Status always starts as pending; only
// delivery transitions may advance it later.
func (pc *PackageController) Store(c *fiber.Ctx) error {
	var req packageTypes.CreatePackageRequest
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

	pkg := packageModel.Package{
		UserID:           userInfo.ID,
		SenderCity:       req.SenderCity,
		ReceiverCity:     req.ReceiverCity,
		PackageType:      req.PackageType,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
		DeliveryDeadline: req.DeliveryDeadline,
		OfferedPayment:   req.OfferedPayment,
		Description:      req.Description,
		Status:           packageModel.StatusPending,
		IsActive:         true,
	}

	if err := pc.DB.Create(&pkg).Error; err != nil {
		logger.Error("Failed to create package", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create package",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	pc.Logger.Log(logEntry)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Package created successfully",
		Status:  fiber.StatusCreated,
		Data:    pkg,
	})
}

// Update applies a partial update to a package owned by the authenticated
// user. The delivery status column is never writable from here.
func (pc *PackageController) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid package id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req packageTypes.UpdatePackageRequest
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

	var pkg packageModel.Package
	if err := pc.DB.First(&pkg, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Package not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load package", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to load package",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if pkg.UserID != userInfo.ID {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the package owner may update it",
			Status:  fiber.StatusForbidden,
		})
	}

	updates := map[string]interface{}{}
	if req.SenderCity != nil {
		updates["sender_city"] = *req.SenderCity
	}
	if req.ReceiverCity != nil {
		updates["receiver_city"] = *req.ReceiverCity
	}
	if req.PackageType != nil {
		updates["package_type"] = *req.PackageType
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Dimensions != nil {
		updates["dimensions"] = req.Dimensions
	}
	if req.DeliveryDeadline != nil {
		updates["delivery_deadline"] = *req.DeliveryDeadline
	}
	if req.OfferedPayment != nil {
		updates["offered_payment"] = *req.OfferedPayment
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(&pkg).Updates(updates).Error; err != nil {
			logger.Error("Failed to update package", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to update package",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	pc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Package updated successfully",
		Status:  fiber.StatusOK,
		Data:    pkg,
	})
}
