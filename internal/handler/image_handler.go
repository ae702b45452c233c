package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rendix/internal/service"
)

// ImageHandler handles image upload endpoints.
type ImageHandler struct {
	imageService service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload handles POST /api/v1/images
// @Summary      Upload a document photo
// @Description  Upload a JPG, PNG, or WEBP image and receive a presigned URL usable as image_url in analyze requests
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file (JPG, PNG, or WEBP)"
// @Success      201 {object} APIResponse{data=service.UploadedImage} "Image uploaded"
// @Failure      400 {object} APIResponse "Missing file or unsupported type"
// @Failure      413 {object} APIResponse "File too large"
// @Failure      500 {object} APIResponse "Upload failed"
// @Router       /images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	img, err := h.imageService.Upload(c.Request.Context(), service.ImageUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, img)
}

// Delete handles DELETE /api/v1/images/*key
// @Summary      Delete an uploaded image
// @Description  Remove an uploaded image from object storage by its key
// @Tags         images
// @Produce      json
// @Param        key path string true "Object key returned by the upload endpoint"
// @Success      200 {object} APIResponse{data=MessageResponse} "Image deleted"
// @Failure      400 {object} APIResponse "Missing key"
// @Failure      500 {object} APIResponse "Delete failed"
// @Router       /images/{key} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_KEY", "image key is required")
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), key); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "image deleted"})
}
