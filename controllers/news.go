package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// GetNews fetches a fresh snapshot of the news collection. An empty
// collection is a normal response, never an error.
func GetNews(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	sh.News.Refresh(c.Context())
	items := sh.News.Items()

	return c.JSON(fiber.Map{
		"items": items,
		"empty": len(items) == 0,
	})
}
