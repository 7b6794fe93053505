package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type ImageController struct {
	Svc *services.ImageService
}

func NewImageController(svc *services.ImageService) *ImageController {
	return &ImageController{Svc: svc}
}

// GET /api/images?destinationId=&packageId=
func (c *ImageController) List(ctx *gin.Context) {
	destinationID, ok := queryID(ctx, "destinationId")
	if !ok {
		return
	}
	packageID, ok := queryID(ctx, "packageId")
	if !ok {
		return
	}
	images, err := c.Svc.List(ctx.Request.Context(), services.ImageFilter{
		DestinationID: destinationID,
		PackageID:     packageID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to fetch images")
		return
	}
	ctx.JSON(http.StatusOK, images)
}

func (c *ImageController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	image, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch image")
		return
	}
	ctx.JSON(http.StatusOK, image)
}

// POST /api/images (multipart: file, destinationId?, packageId?)
func (c *ImageController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// One byte past the ceiling is enough to reject an oversized file.
	data, err := io.ReadAll(io.LimitReader(file, c.Svc.MaxBytes+1))
	if err != nil {
		respondError(ctx, err, "Failed to upload image")
		return
	}

	destinationID, ok := formID(ctx, "destinationId")
	if !ok {
		return
	}
	packageID, ok := formID(ctx, "packageId")
	if !ok {
		return
	}

	image, err := c.Svc.Upload(ctx.Request.Context(), services.UploadInput{
		Data:          data,
		Size:          header.Size,
		DestinationID: destinationID,
		PackageID:     packageID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to upload image")
		return
	}
	ctx.JSON(http.StatusCreated, image)
}

// PATCH|PUT /api/images/:id relinks the image.
func (c *ImageController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var patch services.ImagePatch
	if !bindBody(ctx, &patch) {
		return
	}
	image, err := c.Svc.Relink(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, "Failed to update image")
		return
	}
	ctx.JSON(http.StatusOK, image)
}

func (c *ImageController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Failed to delete image")
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK)
}

// formID reads an optional multipart id; blank and "0" mean no link.
func formID(ctx *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(ctx.PostForm(key))
	if raw == "" || raw == "null" || raw == "undefined" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid "+key)
		return nil, false
	}
	if id == 0 {
		return nil, true
	}
	v := uint(id)
	return &v, true
}
