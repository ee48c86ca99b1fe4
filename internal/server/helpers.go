package server

import (
	"errors"
	"strconv"

	"feedsvc/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the helper already wrote the error response
// and the handler should return nil.
var errResponseWritten = errors.New("response written")

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// parseID extracts and validates a positive integer route parameter. On
// failure it writes the 400 response itself and returns errResponseWritten.
func parseID(c *fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+name+" parameter"))
		return 0, errResponseWritten
	}
	return id, nil
}

// pagination is a validated page window.
type pagination struct {
	Skip  int
	Limit int
}

// parsePagination reads skip/limit query parameters, applying defaults and
// clamping out-of-range values instead of rejecting them.
func parsePagination(c *fiber.Ctx) pagination {
	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return pagination{Skip: skip, Limit: limit}
}

// queryIntPtr returns a pointer to the named positive integer query parameter,
// or nil when it is absent or invalid.
func queryIntPtr(c *fiber.Ctx, name string) *int {
	v := c.QueryInt(name, 0)
	if v <= 0 {
		return nil
	}
	return &v
}
