package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/juniorcleaning/cleaning-app/auth"
	"github.com/juniorcleaning/cleaning-app/redis"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func Register(c *fiber.Ctx) error {
	input := new(credentialsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	identity, token, err := Auth.Register(c.Context(), input.Email, input.Password)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, auth.ErrEmailTaken) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  identity,
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	input := new(credentialsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	identity, token, err := Auth.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		status := fiber.StatusUnauthorized
		if errors.Is(err, auth.ErrMissingFields) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  identity,
	})
}

// GoogleLoginURL returns the consent page URL for federated sign-in.
func GoogleLoginURL(c *fiber.Ctx) error {
	if Auth.Google == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Google sign-in is not configured",
		})
	}
	return c.JSON(fiber.Map{
		"url": Auth.Google.LoginURL(c.Query("state")),
	})
}

// GoogleLogin exchanges the authorization code for a signed-in session.
func GoogleLogin(c *fiber.Ctx) error {
	type googleInput struct {
		Code string `json:"code"`
	}
	input := new(googleInput)
	if err := c.BodyParser(input); err != nil || input.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing authorization code",
		})
	}

	identity, token, err := Auth.GoogleSignIn(c.Context(), input.Code)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  identity,
	})
}

// Logout revokes the presented token and tears the user's shell down.
func Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	if token, ok := c.Locals("user").(*jwt.Token); ok {
		_, jti, exp, err := Auth.ParseToken(token.Raw)
		if err == nil && jti != "" {
			if rerr := redis.RevokeToken(jti, time.Until(exp)); rerr != nil {
				// Shell teardown still happens; the token just lives out its TTL.
				log.Printf("Failed to revoke token for %s: %v", userID, rerr)
			}
		}
	}

	Auth.SignOut(userID)

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// UpdateDisplayName changes the caller's display name at the auth provider.
func UpdateDisplayName(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	type nameInput struct {
		Name string `json:"name"`
	}
	input := new(nameInput)
	if err := c.BodyParser(input); err != nil || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing name",
		})
	}

	if err := Auth.UpdateDisplayName(c.Context(), userID, input.Name); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update display name",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Display name updated",
	})
}
