package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"vehiql/internal/usecase"
	"vehiql/pkg/errors"
	"vehiql/pkg/response"
)

type ImageSearchHandler struct {
	imageSearchUseCase *usecase.ImageSearchUseCase
}

func NewImageSearchHandler(imageSearchUseCase *usecase.ImageSearchUseCase) *ImageSearchHandler {
	return &ImageSearchHandler{
		imageSearchUseCase: imageSearchUseCase,
	}
}

// SearchByImage expects a multipart upload in the "image" field.
func (h *ImageSearchHandler) SearchByImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image is required", err))
	}
	if file.Size > usecase.MaxImageBytes {
		return response.Error(c, errors.BadRequest("Image must be 5MB or smaller", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read image", err))
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, usecase.MaxImageBytes+1))
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read image", err))
	}

	mimeType := file.Header.Get(echo.HeaderContentType)
	if mimeType == "" || mimeType == echo.MIMEOctetStream {
		mimeType = http.DetectContentType(data)
	}

	// Signed in shoppers get their own budget; everyone else shares the IP's.
	key := "ip:" + c.RealIP()
	if uid := currentUID(c); uid != "" {
		key = "user:" + uid
	}

	result, err := h.imageSearchUseCase.ProcessImageSearch(c.Request().Context(), key, usecase.ImageInput{
		Data:     data,
		MimeType: mimeType,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
