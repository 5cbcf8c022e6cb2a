package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/juniorcleaning/cleaning-app/controllers"
	"github.com/juniorcleaning/cleaning-app/middleware"
)

// SetupAppRoutes configures the app shell, booking, news and settings routes
func SetupAppRoutes(app *fiber.App) {
	app.Get("/app/i18n", controllers.GetI18n)

	appGroup := app.Group("/app", middleware.Protected())
	appGroup.Get("/state", controllers.GetState)
	appGroup.Put("/view", controllers.SetView)

	booking := app.Group("/booking", middleware.Protected())
	booking.Get("/", controllers.GetBooking)
	booking.Post("/setup", controllers.SubmitBookingSetup)
	booking.Put("/schedule", controllers.UpdateBookingSchedule)
	booking.Post("/send", controllers.SendBooking)

	app.Get("/news", middleware.Protected(), controllers.GetNews)

	settings := app.Group("/settings", middleware.Protected())
	settings.Put("/", controllers.UpdateSettings)
	settings.Post("/avatar", controllers.UploadAvatar)
}
