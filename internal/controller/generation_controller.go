package controller

import (
	"strconv"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/pkg/serverutils"
	"pepper-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	TextToImage(ctx *fiber.Ctx) error
	ImageToImage(ctx *fiber.Ctx) error
	ImageToVideo(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("text-to-image", c.TextToImage)
	h.Post("image-to-image", c.ImageToImage)
	h.Post("image-to-video", c.ImageToVideo)
}

func (c *generationController) TextToImage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.TextToImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.TextToImage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate image", res))
}

func (c *generationController) ImageToImage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	prompt := ctx.FormValue("prompt")
	if prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	imageDataURL, err := fileToDataURL(fileHeader)
	if err != nil {
		return err
	}

	req := dto.ImageToImageRequest{
		Prompt:       prompt,
		ImageDataURL: imageDataURL,
	}
	if raw := ctx.FormValue("strength"); raw != "" {
		strength, err := strconv.ParseFloat(raw, 64)
		if err != nil || strength <= 0 || strength > 1 {
			return fiber.NewError(fiber.StatusBadRequest, "strength must be between 0 and 1")
		}
		req.Strength = &strength
	}
	if loraId := ctx.FormValue("lora_model_id"); loraId != "" {
		req.LoraModelId = &loraId
	}

	res, err := c.generationService.ImageToImage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success transform image", res))
}

func (c *generationController) ImageToVideo(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	prompt := ctx.FormValue("prompt")
	if prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	imageDataURL, err := fileToDataURL(fileHeader)
	if err != nil {
		return err
	}

	req := dto.ImageToVideoRequest{
		Prompt:       prompt,
		ImageDataURL: imageDataURL,
		Resolution:   ctx.FormValue("resolution"),
	}
	if raw := ctx.FormValue("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "duration must be a number of seconds")
		}
		req.Duration = duration
	}

	res, err := c.generationService.ImageToVideo(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate video", res))
}
