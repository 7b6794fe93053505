package controllers

import (
	"net/http"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type LocationController struct {
	Svc *services.LocationService
}

func NewLocationController(svc *services.LocationService) *LocationController {
	return &LocationController{Svc: svc}
}

// GET /api/locations?destinationId=
func (c *LocationController) List(ctx *gin.Context) {
	destinationID, ok := queryID(ctx, "destinationId")
	if !ok {
		return
	}
	locations, err := c.Svc.List(ctx.Request.Context(), destinationID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch locations")
		return
	}
	ctx.JSON(http.StatusOK, locations)
}

func (c *LocationController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	location, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch location")
		return
	}
	ctx.JSON(http.StatusOK, location)
}

func (c *LocationController) Create(ctx *gin.Context) {
	var in services.LocationInput
	if !bindBody(ctx, &in) {
		return
	}
	location, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err, "Failed to create location")
		return
	}
	ctx.JSON(http.StatusCreated, location)
}

func (c *LocationController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var patch services.LocationPatch
	if !bindBody(ctx, &patch) {
		return
	}
	location, err := c.Svc.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, "Failed to update location")
		return
	}
	ctx.JSON(http.StatusOK, location)
}

func (c *LocationController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Failed to delete location")
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK)
}
