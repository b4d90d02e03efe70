package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already committed the HTTP
// response. Handlers seeing it must return nil.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint. A
// malformed or non-positive id can never match a row, so it responds
// 404 itself, the same contract as a well-formed id with no post.
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params("id")))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps an AppError from the service layer to its
// HTTP status. Unknown errors become 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeValidation:
		status = fiber.StatusUnprocessableEntity
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	case models.CodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.CodeCapacity, models.CodeStorage, models.CodeInternal:
		status = fiber.StatusInternalServerError
	}
	return models.RespondWithError(c, status, appErr)
}
