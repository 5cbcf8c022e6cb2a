package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/juniorcleaning/cleaning-app/controllers"
	"github.com/juniorcleaning/cleaning-app/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Get("/google/url", controllers.GoogleLoginURL)
	auth.Post("/google", controllers.GoogleLogin)

	// Protected routes
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Put("/name", middleware.Protected(), controllers.UpdateDisplayName)
}
