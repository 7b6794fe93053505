package controllers

import (
	"net/http"
	"strconv"

	"github.com/AriJaya07/voyra-tour-bali/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Svc *services.ActivityService
}

func NewActivityController(svc *services.ActivityService) *ActivityController {
	return &ActivityController{Svc: svc}
}

// GET /api/activity?limit=
func (c *ActivityController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	logs, err := c.Svc.Recent(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err, "Failed to fetch activity")
		return
	}
	ctx.JSON(http.StatusOK, logs)
}
