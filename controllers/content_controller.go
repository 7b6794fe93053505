package controllers

import (
	"net/http"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Svc *services.ContentService
}

func NewContentController(svc *services.ContentService) *ContentController {
	return &ContentController{Svc: svc}
}

// GET /api/contents?destinationId=
func (c *ContentController) List(ctx *gin.Context) {
	destinationID, ok := queryID(ctx, "destinationId")
	if !ok {
		return
	}
	contents, err := c.Svc.List(ctx.Request.Context(), destinationID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch contents")
		return
	}
	ctx.JSON(http.StatusOK, contents)
}

func (c *ContentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	content, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch content")
		return
	}
	ctx.JSON(http.StatusOK, content)
}

func (c *ContentController) Create(ctx *gin.Context) {
	var in services.ContentInput
	if !bindBody(ctx, &in) {
		return
	}
	content, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err, "Failed to create content")
		return
	}
	ctx.JSON(http.StatusCreated, content)
}

func (c *ContentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var patch services.ContentPatch
	if !bindBody(ctx, &patch) {
		return
	}
	content, err := c.Svc.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, "Failed to update content")
		return
	}
	ctx.JSON(http.StatusOK, content)
}

func (c *ContentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Failed to delete content")
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK)
}
