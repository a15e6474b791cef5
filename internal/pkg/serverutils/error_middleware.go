package serverutils

import (
	"errors"
	"log"

	"clinic-assist-be/pkg/flow"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts downstream errors into the response
// envelope. Provider outages map to 503 so callers can distinguish them from
// bad requests; everything unexpected stays a generic 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		if errors.Is(err, flow.ErrProviderUnavailable) {
			log.Printf("[ERROR] provider unavailable: %v", err)
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(ErrorResponse("The assistant is temporarily unavailable. Please try again shortly."))
		}

		log.Printf("[ERROR] unhandled: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("Internal server error"))
	}
}
