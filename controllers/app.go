package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/juniorcleaning/cleaning-app/app"
	"github.com/juniorcleaning/cleaning-app/i18n"
)

// GetState returns everything the client needs to render: the profile
// (or null while loading), the persistence warning if any, and the view
// state.
func GetState(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	state := fiber.Map{
		"resolving": sh.Session.Resolving(),
		"loading":   sh.Profile.Loading(),
		"warning":   sh.Profile.Warning(),
		"profile":   nil,
		"view": fiber.Map{
			"tab":          sh.View.Tab(),
			"settingsOpen": sh.View.SettingsOpen(),
		},
	}
	if profile, ok := sh.Profile.Profile(); ok {
		state["profile"] = profile
	}
	return c.JSON(state)
}

// SetView switches the active tab and/or the settings overlay.
func SetView(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	type viewInput struct {
		Tab          string `json:"tab"`
		SettingsOpen *bool  `json:"settingsOpen"`
	}
	input := new(viewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Tab != "" && !sh.View.SetTab(app.Tab(input.Tab)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown tab: " + input.Tab,
		})
	}
	if input.SettingsOpen != nil {
		if *input.SettingsOpen {
			// Opening the overlay starts the draft from the live profile.
			sh.Settings.Sync()
			sh.View.OpenSettings()
		} else {
			sh.View.CloseSettings()
		}
	}

	return c.JSON(fiber.Map{
		"tab":          sh.View.Tab(),
		"settingsOpen": sh.View.SettingsOpen(),
	})
}

// GetI18n serves the client's string table.
func GetI18n(c *fiber.Ctx) error {
	return c.JSON(i18n.T)
}
