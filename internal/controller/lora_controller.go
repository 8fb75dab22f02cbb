package controller

import (
	"strconv"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/pkg/serverutils"
	"pepper-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILoraController interface {
	RegisterRoutes(r fiber.Router)
	Train(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type loraController struct {
	loraService service.ILoraService
}

func NewLoraController(loraService service.ILoraService) ILoraController {
	return &loraController{
		loraService: loraService,
	}
}

func (c *loraController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lora/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("train", c.Train)
	h.Get("", c.List)
}

func (c *loraController) Train(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	name := ctx.FormValue("name")
	triggerWord := ctx.FormValue("trigger_word")
	if name == "" || triggerWord == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and trigger_word are required")
	}

	fileHeader, err := ctx.FormFile("images")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "training images archive is required")
	}
	archiveDataURL, err := fileToDataURL(fileHeader)
	if err != nil {
		return err
	}

	req := dto.TrainLoraRequest{
		Name:           name,
		TriggerWord:    triggerWord,
		ArchiveDataURL: archiveDataURL,
	}
	if raw := ctx.FormValue("steps"); raw != "" {
		steps, err := strconv.Atoi(raw)
		if err != nil || steps < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "steps must be a positive number")
		}
		req.Steps = &steps
	}

	res, err := c.loraService.Train(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Training started", res))
}

func (c *loraController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.loraService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list lora models", res))
}
