package middleware

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/juniorcleaning/cleaning-app/redis"
	"github.com/juniorcleaning/cleaning-app/utils"
)

func Protected() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			if userToken == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "No authentication token",
				})
			}

			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			userID, ok := claims["id"].(string)
			if !ok || userID == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}

			// Reject tokens that were revoked on logout
			if jti, ok := claims["jti"].(string); ok && redis.IsRevoked(jti) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}

			c.Locals("userID", userID)
			if email, ok := claims["email"].(string); ok {
				c.Locals("email", email)
			}

			return c.Next()
		},
	})
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	fmt.Println("JWT Error:", err)
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Message: "Invalid or expired token",
		Error:   "Unauthorized",
	})
}
