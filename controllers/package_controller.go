package controllers

import (
	"net/http"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type PackageController struct {
	Svc *services.PackageService
}

func NewPackageController(svc *services.PackageService) *PackageController {
	return &PackageController{Svc: svc}
}

// GET /api/packages?categoryId=&destinationId=
func (c *PackageController) List(ctx *gin.Context) {
	categoryID, ok := queryID(ctx, "categoryId")
	if !ok {
		return
	}
	destinationID, ok := queryID(ctx, "destinationId")
	if !ok {
		return
	}
	packages, err := c.Svc.List(ctx.Request.Context(), services.PackageFilter{
		CategoryID:    categoryID,
		DestinationID: destinationID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to fetch packages")
		return
	}
	ctx.JSON(http.StatusOK, packages)
}

func (c *PackageController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	pkg, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch package")
		return
	}
	ctx.JSON(http.StatusOK, pkg)
}

func (c *PackageController) Create(ctx *gin.Context) {
	var in services.PackageInput
	if !bindBody(ctx, &in) {
		return
	}
	pkg, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err, "Failed to create package")
		return
	}
	ctx.JSON(http.StatusCreated, pkg)
}

func (c *PackageController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var patch services.PackagePatch
	if !bindBody(ctx, &patch) {
		return
	}
	pkg, err := c.Svc.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, "Failed to update package")
		return
	}
	ctx.JSON(http.StatusOK, pkg)
}

func (c *PackageController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Failed to delete package")
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK)
}
