package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	appcore "github.com/juniorcleaning/cleaning-app/app"
	"github.com/juniorcleaning/cleaning-app/auth"
	"github.com/juniorcleaning/cleaning-app/controllers"
	"github.com/juniorcleaning/cleaning-app/cron"
	"github.com/juniorcleaning/cleaning-app/db"
	"github.com/juniorcleaning/cleaning-app/redis"
	"github.com/juniorcleaning/cleaning-app/routes"
	"github.com/juniorcleaning/cleaning-app/store"
	"github.com/juniorcleaning/cleaning-app/utils"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()

	authService := auth.NewService(store.NewAccounts(db.DB))
	authService.Google = auth.NewGoogleProvider()

	registry := appcore.NewRegistry(appcore.Deps{
		Docs:       store.NewDocuments(db.DB),
		Blobs:      utils.AvatarUploader{},
		WebhookURL: os.Getenv("BOOKING_WEBHOOK_URL"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	})

	// Auth identity changes drive the per-user shells
	authService.Subscribe(func(ev auth.Event) {
		if ev.Identity == nil {
			registry.Drop(ev.UserID)
			return
		}
		sh := registry.Get(ev.Identity)
		sh.Session.Publish(ev.Identity)
	})

	controllers.Setup(authService, registry)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Junior Cleaning API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupAppRoutes(app)

	cron.StartCronJobs(registry)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
