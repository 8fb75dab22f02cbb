package controller

import (
	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/pkg/serverutils"
	"pepper-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGalleryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type galleryController struct {
	galleryService service.IGalleryService
}

func NewGalleryController(galleryService service.IGalleryService) IGalleryController {
	return &galleryController{
		galleryService: galleryService,
	}
}

func (c *galleryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gallery/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *galleryController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	req := dto.ListGenerationsRequest{
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("page_size", 20),
		Kind:     ctx.Query("kind"),
	}

	res, err := c.galleryService.List(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list generations", res))
}

func (c *galleryController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid generation id")
	}

	res, err := c.galleryService.Get(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show generation", res))
}

func (c *galleryController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid generation id")
	}

	if err := c.galleryService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete generation", struct{}{}))
}
