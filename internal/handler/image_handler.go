package handler

import (
	"io"

	"textquiz/internal/domain"
	"textquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ImageFormField is the multipart field carrying the page image.
const ImageFormField = "image"

// ImageHandler handles image upload requests
type ImageHandler struct {
	service service.ImageService
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(service service.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// ProcessImage godoc
// @Summary Extract text from a page image
// @Description Cleans the photographed page and runs OCR on it
// @Tags image
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Page image"
// @Param debug query bool false "Report the detected skew angle"
// @Success 200 {object} dto.ProcessImageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /process_image [post]
func (h *ImageHandler) ProcessImage(c *fiber.Ctx) error {
	raw, err := readUpload(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ProcessImage(c.UserContext(), raw, c.QueryBool("debug", false))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PreprocessImage godoc
// @Summary Preprocess a page image
// @Description Returns the cleaned binary image that OCR would see
// @Tags image
// @Accept multipart/form-data
// @Produce png
// @Param image formData file true "Page image"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ErrorResponse
// @Router /preprocess_image [post]
func (h *ImageHandler) PreprocessImage(c *fiber.Ctx) error {
	raw, err := readUpload(c)
	if err != nil {
		return err
	}

	png, err := h.service.PreprocessImage(c.UserContext(), raw)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func readUpload(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile(ImageFormField)
	if err != nil {
		return nil, domain.NewInvalidInputError("No image file provided")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, domain.NewInvalidInputError("Failed to read the uploaded image")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.NewInvalidInputError("Failed to read the uploaded image")
	}
	if len(raw) == 0 {
		return nil, domain.NewInvalidInputError("Uploaded image is empty")
	}
	return raw, nil
}
