package controller

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"

	"pepper-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, service.ErrUnauthenticated
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, service.ErrUnauthenticated
	}
	return userId, nil
}

// fileToDataURL inlines an uploaded file as a data URL so it can be handed
// to the provider without an intermediate upload step.
func fileToDataURL(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw)), nil
}
