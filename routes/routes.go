package routes

import (
	"os"

	"luggage-link/constants"
	authController "luggage-link/controllers/auth"
	deliveryController "luggage-link/controllers/delivery"
	messageController "luggage-link/controllers/message"
	packageController "luggage-link/controllers/packages"
	reviewController "luggage-link/controllers/review"
	tripController "luggage-link/controllers/trip"
	userController "luggage-link/controllers/user"
	httpServices "luggage-link/httpServices/identity"
	"luggage-link/logger"
	"luggage-link/middleware"
	"luggage-link/realtime"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub) {
	identityClient := httpServices.NewClient(os.Getenv("SSO_BASE_URL"))
	asyncLogger := logger.NewAsyncLogger(db)

	auth := authController.NewAuthController(identityClient, db, asyncLogger)
	trips := tripController.NewTripController(db, asyncLogger)
	pkgs := packageController.NewPackageController(db, asyncLogger)
	deliveries := deliveryController.NewDeliveryController(db, asyncLogger)
	messages := messageController.NewMessageController(db, hub, asyncLogger)
	reviews := reviewController.NewReviewController(db, asyncLogger)
	users := userController.NewUserController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", auth.Login)
	api.Post("/register", auth.Register)

	api.Get("/trips", trips.Index)
	api.Get("/trips/:id", trips.Show)
	api.Get("/packages", pkgs.Index)
	api.Get("/packages/:id", pkgs.Show)
	api.Get("/reviews/user/:userId", reviews.ListForUser)
	api.Get("/user/:id", users.Show)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAnyPermission())
	authGroup.Get("/profile", auth.Profile)
	authGroup.Post("/logout", auth.LogOut)

	tripGroup := api.Group("/my").Use(middleware.RequireAnyPermission(constants.PermTripManage))
	tripGroup.Get("/trips", trips.Mine)
	tripGroup.Get("/packages", pkgs.Mine)

	api.Post("/trips", middleware.RequireAnyPermission(constants.PermTripManage), trips.Store)
	api.Put("/trips/:id", middleware.RequireAnyPermission(constants.PermTripManage), trips.Update)

	api.Post("/packages", middleware.RequireAnyPermission(constants.PermPackageManage), pkgs.Store)
	api.Put("/packages/:id", middleware.RequireAnyPermission(constants.PermPackageManage), pkgs.Update)

	deliveryGroup := api.Group("/deliveries").Use(middleware.RequireAnyPermission(constants.PermDeliveryManage))
	deliveryGroup.Get("/", deliveries.Index)
	deliveryGroup.Get("/:id", deliveries.Show)
	deliveryGroup.Get("/:id/events", deliveries.Events)
	deliveryGroup.Post("/", deliveries.Store)
	deliveryGroup.Put("/:id/status", deliveries.UpdateStatus)
	deliveryGroup.Put("/:id/payment", deliveries.UpdatePayment)

	messageGroup := api.Group("/messages").Use(middleware.RequireAnyPermission(constants.PermMessageSend))
	messageGroup.Get("/conversations", messages.Conversations)
	messageGroup.Get("/thread/:userId", messages.Thread)
	messageGroup.Post("/", messages.Send)

	api.Post("/reviews", middleware.RequireAnyPermission(constants.PermReviewWrite), reviews.Store)

	api.Post("/user/verification", middleware.RequireAnyPermission(), users.UpdateVerification)
	api.Put("/user/profile", middleware.RequireAnyPermission(), users.UpdateProfile)
}
