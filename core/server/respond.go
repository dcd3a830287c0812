package server

import (
	"errors"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/validate"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a module error onto an HTTP status.
func StatusFor(err error) int {
	var (
		verr        *validate.Error
		precond     *reconcile.PreconditionError
		ambiguous   *reconcile.AmbiguousMatchError
		unsupported *reconcile.UnsupportedError
		failed      *reconcile.TaskFailedError
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &precond), errors.As(err, &ambiguous), errors.As(err, &unsupported):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrTaskTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, pulp.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &failed), errors.Is(err, pulp.ErrTransport), errors.Is(err, pulp.ErrUnauthorized):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes a module result, or the failure payload for err.
func Respond(c *fiber.Ctx, result reconcile.Result, err error) error {
	if err != nil {
		return c.Status(StatusFor(err)).JSON(reconcile.Failure(err))
	}
	return c.JSON(result.Map())
}

// CheckMode reports whether the request asked for a dry run.
func CheckMode(c *fiber.Ctx) bool {
	switch c.Query("check_mode") {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// ParseParams decodes the JSON request body into out.
// An empty body leaves out untouched.
func ParseParams(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return validate.Errorf("invalid request body: %v", err)
	}
	return nil
}
