package controllers

import (
	"net/http"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Svc *services.CategoryService
}

func NewCategoryController(svc *services.CategoryService) *CategoryController {
	return &CategoryController{Svc: svc}
}

// GET /api/categories
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.Svc.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Failed to fetch categories")
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// GET /api/categories/:id
func (c *CategoryController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	category, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch category")
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// POST /api/categories
func (c *CategoryController) Create(ctx *gin.Context) {
	var in services.CategoryInput
	if !bindBody(ctx, &in) {
		return
	}
	category, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err, "Failed to create category")
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// PATCH|PUT /api/categories/:id
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var patch services.CategoryPatch
	if !bindBody(ctx, &patch) {
		return
	}
	category, err := c.Svc.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, "Failed to update category")
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// DELETE /api/categories/:id
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Failed to delete category")
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK)
}
