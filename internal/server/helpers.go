package server

import (
	"strconv"

	"feedline/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parsePostID reads the :postId route parameter. On a malformed id the
// not-found response is written and ok is false; callers return nil.
func (s *Server) parsePostID(c *fiber.Ctx) (uint, bool) {
	raw := c.Params("postId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, models.NewNotFoundError("Could not find post"))
		return 0, false
	}
	return uint(id), true
}
