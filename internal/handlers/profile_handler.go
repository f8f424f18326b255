package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hserranome/drawaday-api/internal/repositories"
	"github.com/hserranome/drawaday-api/internal/services"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	authService *services.AuthService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the profile routes. The router passed in is
// expected to already carry the bearer-token middleware.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleGetProfile)
}

// HandleGetProfile returns the profile of the token's subject. The
// token is re-resolved against the store so a structurally valid token
// for an account that no longer exists is still rejected.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		// The middleware sets this for every authenticated request;
		// keep the response identical to its rejection anyway.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	user, err := h.authService.ValidateUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
		log.Printf("Error loading profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
		})
	}

	return c.JSON(user)
}
