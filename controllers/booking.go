package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// GetBooking returns the booking flow state for rendering.
func GetBooking(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	name, address, phone := sh.Booking.SetupFields()
	return c.JSON(fiber.Map{
		"phase":     sh.Booking.Phase(),
		"name":      name,
		"address":   address,
		"phone":     phone,
		"date":      sh.Booking.Date(),
		"hours":     sh.Booking.Hours(),
		"sending":   sh.Booking.Sending(),
		"done":      sh.Booking.Done(),
		"canSubmit": sh.Booking.CanSubmit(),
	})
}

// SubmitBookingSetup saves the contact details and advances to scheduling.
func SubmitBookingSetup(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	type setupInput struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	input := new(setupInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" || input.Address == "" || input.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	sh.Booking.SubmitSetup(c.Context(), input.Name, input.Address, input.Phone)

	return c.JSON(fiber.Map{
		"phase": sh.Booking.Phase(),
	})
}

// UpdateBookingSchedule adjusts the date and hours of the scheduling form.
func UpdateBookingSchedule(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	type scheduleInput struct {
		Date  *string `json:"date"`
		Hours *int    `json:"hours"`
	}
	input := new(scheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Date != nil {
		sh.Booking.SetDate(*input.Date)
	}
	if input.Hours != nil {
		sh.Booking.SetHours(*input.Hours)
	}

	return c.JSON(fiber.Map{
		"date":      sh.Booking.Date(),
		"hours":     sh.Booking.Hours(),
		"canSubmit": sh.Booking.CanSubmit(),
	})
}

// SendBooking submits the booking request to the webhook.
func SendBooking(c *fiber.Ctx) error {
	sh, err := shellFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := sh.Booking.Submit(c.Context()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"done": sh.Booking.Done(),
	})
}
