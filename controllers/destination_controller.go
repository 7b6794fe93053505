package controllers

import (
	"net/http"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type DestinationController struct {
	Svc *services.DestinationService
}

func NewDestinationController(svc *services.DestinationService) *DestinationController {
	return &DestinationController{Svc: svc}
}

// GET /api/destinations?categoryId=
func (c *DestinationController) List(ctx *gin.Context) {
	categoryID, ok := queryID(ctx, "categoryId")
	if !ok {
		return
	}
	destinations, err := c.Svc.List(ctx.Request.Context(), services.DestinationFilter{CategoryID: categoryID})
	if err != nil {
		respondError(ctx, err, "Failed to fetch destinations")
		return
	}
	ctx.JSON(http.StatusOK, destinations)
}

func (c *DestinationController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	destination, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch destination")
		return
	}
	ctx.JSON(http.StatusOK, destination)
}

func (c *DestinationController) Create(ctx *gin.Context) {
	var in services.DestinationInput
	if !bindBody(ctx, &in) {
		return
	}
	destination, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err, "Failed to create destination")
		return
	}
	ctx.JSON(http.StatusCreated, destination)
}

func (c *DestinationController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var patch services.DestinationPatch
	if !bindBody(ctx, &patch) {
		return
	}
	destination, err := c.Svc.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, "Failed to update destination")
		return
	}
	ctx.JSON(http.StatusOK, destination)
}

func (c *DestinationController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Failed to delete destination")
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK)
}
