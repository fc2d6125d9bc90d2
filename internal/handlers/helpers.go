package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryID parses an optional numeric query filter; 0 means unset.
func queryID(c *fiber.Ctx, name string) uint {
	return uint(c.QueryInt(name, 0))
}

// formUint parses a numeric multipart form field; 0 means absent or
// malformed.
func formUint(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.FormValue(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// pagination clamps skip/limit query values.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 100)
	offset = c.QueryInt("skip", 0)
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
