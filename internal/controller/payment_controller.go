package controller

import (
	"errors"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/pkg/serverutils"
	"pepper-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	CreateCheckout(ctx *fiber.Ctx) error
	StripeWebhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")
	h.Get("packages", c.GetPackages)
	// Stripe calls this, no JWT.
	h.Post("webhook/stripe", c.StripeWebhook)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post("checkout", c.CreateCheckout)
}

func (c *paymentController) GetPackages(ctx *fiber.Ctx) error {
	res, err := c.paymentService.GetPackages(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get packages", res))
}

func (c *paymentController) CreateCheckout(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.CreateCheckout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create checkout session", res))
}

// StripeWebhook speaks raw status codes to Stripe: 400 tells it the
// delivery is unverifiable, 200 acknowledges, anything else is retried.
func (c *paymentController) StripeWebhook(ctx *fiber.Ctx) error {
	payload := ctx.Body()
	sigHeader := ctx.Get("Stripe-Signature")

	err := c.paymentService.HandleStripeEvent(ctx.Context(), payload, sigHeader)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "settlement failed"})
	}

	return ctx.SendStatus(fiber.StatusOK)
}
