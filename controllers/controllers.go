package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/juniorcleaning/cleaning-app/app"
	"github.com/juniorcleaning/cleaning-app/auth"
)

var (
	Auth     *auth.Service
	Registry *app.Registry
)

// Setup hands the controllers their collaborators. Called once from main.
func Setup(a *auth.Service, r *app.Registry) {
	Auth = a
	Registry = r
}

// shellFor resolves the caller's app shell, building it on first request
// after a restart.
func shellFor(c *fiber.Ctx) (*app.Shell, error) {
	userID := c.Locals("userID").(string)
	if sh := Registry.Lookup(userID); sh != nil {
		sh.Touch()
		return sh, nil
	}
	identity, err := Auth.IdentityByID(c.Context(), userID)
	if err != nil {
		return nil, err
	}
	return Registry.Get(identity), nil
}
