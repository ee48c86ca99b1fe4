package server

import (
	"feedsvc/internal/models"
	"feedsvc/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ListInterests handles GET /posts/interests, the read-only catalog used by
// clients to discover valid interest ids.
func (s *Server) ListInterests(c *fiber.Ctx) error {
	interests, err := s.interestRepo.List(c.Context())
	if err != nil {
		observability.StoreErrors.WithLabelValues("list_interests").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	return c.JSON(interests)
}
