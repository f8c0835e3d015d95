package trip

import (
	"errors"
	"strconv"

	"luggage-link/logger"
	tripModel "luggage-link/models/trip"
	"luggage-link/types"
	tripTypes "luggage-link/types/trip"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// TripController handles trip-related HTTP requests
type TripController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewTripController creates a new trip controller
func NewTripController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TripController {
	return &TripController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists active trips, optionally filtered by route, date and capacity
func (tc *TripController) Index(c *fiber.Ctx) error {
	var query tripTypes.SearchTripsQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid query parameters",
			Status:  fiber.StatusBadRequest,
		})
	}

	q := tc.DB.Preload("User").Where("is_active = ?", true)

	if query.DepartureAirport != "" {
		q = q.Where("departure_airport = ?", query.DepartureAirport)
	}
	if query.DestinationCity != "" {
		q = q.Where("destination_city = ?", query.DestinationCity)
	}
	if !query.DepartureDate.IsZero() {
		dayStart := now.With(query.DepartureDate).BeginningOfDay()
		dayEnd := now.With(query.DepartureDate).EndOfDay()
		q = q.Where("departure_date BETWEEN ? AND ?", dayStart, dayEnd)
	}
	if query.MinWeight > 0 {
		q = q.Where("available_weight >= ?", query.MinWeight)
	}

	var trips []tripModel.Trip
	if err := q.Order("departure_date ASC").Find(&trips).Error; err != nil {
		logger.Error("Failed to list trips", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list trips",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Trips fetched successfully",
		Status:  fiber.StatusOK,
		Data:    trips,
	})
}

// Show returns one trip with its owner's public profile
func (tc *TripController) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid trip id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var trip tripModel.Trip
	if err := tc.DB.Preload("User").First(&trip, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Trip not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load trip", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to load trip",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Trip fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"trip":  trip,
			"owner": trip.User.Public(),
		},
	})
}

// Mine lists the authenticated user's trips, newest first
func (tc *TripController) Mine(c *fiber.Ctx) error {
	userInfo, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var trips []tripModel.Trip
	if err := tc.DB.Where("user_id = ?", userInfo.ID).Order("created_at DESC").Find(&trips).Error; err != nil {
		logger.Error("Failed to list user trips", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list trips",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Trips fetched successfully",
		Status:  fiber.StatusOK,
		Data:    trips,
	})
}

// Store creates a new trip owned by the authenticated user
func (tc *TripController) Store(c *fiber.Ctx) error {
	var req tripTypes.CreateTripRequest
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

	trip := tripModel.Trip{
		UserID:           userInfo.ID,
		DepartureAirport: req.DepartureAirport,
		DestinationCity:  req.DestinationCity,
		DepartureDate:    req.DepartureDate,
		ArrivalDate:      req.ArrivalDate,
		Airline:          req.Airline,
		FlightNumber:     req.FlightNumber,
		AvailableWeight:  req.AvailableWeight,
		PricePerKg:       req.PricePerKg,
		Notes:            req.Notes,
		IsActive:         true,
	}

	if err := tc.DB.Create(&trip).Error; err != nil {
		logger.Error("Failed to create trip", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create trip",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	tc.Logger.Log(logEntry)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Trip created successfully",
		Status:  fiber.StatusCreated,
		Data:    trip,
	})
}

// Update applies a partial update to a trip owned by the authenticated user
func (tc *TripController) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid trip id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req tripTypes.UpdateTripRequest
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

	var trip tripModel.Trip
	if err := tc.DB.First(&trip, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Trip not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load trip", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to load trip",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if trip.UserID != userInfo.ID {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the trip owner may update it",
			Status:  fiber.StatusForbidden,
		})
	}

	updates := map[string]interface{}{}
	if req.DepartureAirport != nil {
		updates["departure_airport"] = *req.DepartureAirport
	}
	if req.DestinationCity != nil {
		updates["destination_city"] = *req.DestinationCity
	}
	if req.DepartureDate != nil {
		updates["departure_date"] = *req.DepartureDate
	}
	if req.ArrivalDate != nil {
		updates["arrival_date"] = *req.ArrivalDate
	}
	if req.Airline != nil {
		updates["airline"] = *req.Airline
	}
	if req.FlightNumber != nil {
		updates["flight_number"] = *req.FlightNumber
	}
	if req.AvailableWeight != nil {
		updates["available_weight"] = *req.AvailableWeight
	}
	if req.PricePerKg != nil {
		updates["price_per_kg"] = *req.PricePerKg
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := tc.DB.Model(&trip).Updates(updates).Error; err != nil {
			logger.Error("Failed to update trip", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to update trip",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	tc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Trip updated successfully",
		Status:  fiber.StatusOK,
		Data:    trip,
	})
}
