package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// UpdateSettings applies the submitted field edits to the draft, commits
// it and closes the overlay.
func UpdateSettings(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	sh.Settings.Edit(updates)
	sh.Settings.Confirm(c.Context())
	sh.View.CloseSettings()

	profile, _ := sh.Profile.Profile()
	return c.JSON(profile)
}

// UploadAvatar stores a new avatar image and commits its URL right away.
func UploadAvatar(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get avatar image",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open avatar image",
		})
	}
	defer f.Close()

	sh.Settings.UploadAvatar(c.Context(), f)

	profile, _ := sh.Profile.Profile()
	return c.JSON(fiber.Map{
		"photoURL": profile.PhotoURL,
	})
}
