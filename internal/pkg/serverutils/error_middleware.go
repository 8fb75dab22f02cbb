package serverutils

import (
	"errors"

	"pepper-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service-layer errors onto HTTP statuses so
// controllers can just return them. Ledger rejections keep their numeric
// context (cost, balance); provider detail stays in the logs.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var insufficient *service.InsufficientCreditsError
		if errors.As(err, &insufficient) {
			return ctx.Status(fiber.StatusPaymentRequired).JSON(ErrorResponseWithDetails(
				fiber.StatusPaymentRequired,
				"Insufficient credits",
				map[string]interface{}{
					"cost":    insufficient.Cost,
					"balance": insufficient.Balance,
				},
			))
		}

		var generationFailed *service.GenerationFailedError
		if errors.As(err, &generationFailed) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(
				fiber.StatusBadGateway,
				"Generation failed, credits were not charged",
			))
		}

		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Unauthenticated"))
		case errors.Is(err, service.ErrUserNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, "User not found"))
		case errors.Is(err, service.ErrGenerationNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, "Generation not found"))
		case errors.Is(err, service.ErrPackageNotFound):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, "Invalid package"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
