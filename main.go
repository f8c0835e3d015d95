package main

import (
	"fmt"
	"os"
	"time"

	"luggage-link/database"
	"luggage-link/logger"
	"luggage-link/middleware"
	"luggage-link/realtime"
	"luggage-link/routes"
	"luggage-link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024, // 10MB body limit
	})
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
		fmt.Println("Error loading .env file", env)
	}
	logger.Success("Server is running on ip: " + os.Getenv("APP_HOST") + " port: " + os.Getenv("APP_PORT") +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Realtime hub on its own listener; clients authenticate over the socket.
	hub := realtime.NewHub()
	verify := func(token string) (uint, error) {
		claims, err := middleware.VerifyJWT(token)
		if err != nil {
			return 0, err
		}
		uid, _ := claims["uid"].(string)
		userInfo, err := utils.GetUserByProviderUID(uid)
		if err != nil {
			return 0, err
		}
		return userInfo.ID, nil
	}
	go func() {
		wsPort := os.Getenv("WS_PORT")
		if wsPort == "" {
			wsPort = "8081"
		}
		if err := realtime.ListenAndServe(os.Getenv("APP_HOST")+":"+wsPort, hub, verify); err != nil {
			logger.Error("Realtime server stopped", err)
		}
	}()

	routes.SetupRoutes(app, db, hub)

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	app.Listen(appHost + ":" + appPort)
}
