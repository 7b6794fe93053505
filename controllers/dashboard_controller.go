package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardController struct {
	Stats  *services.DashboardService
	Export *services.ExportService
}

func NewDashboardController(stats *services.DashboardService, export *services.ExportService) *DashboardController {
	return &DashboardController{Stats: stats, Export: export}
}

// GET /api/dashboard/stats
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.Stats.Stats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Failed to fetch dashboard stats")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GET /api/dashboard/export
func (c *DashboardController) ExportCatalog(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.Export.WriteCatalog(ctx.Request.Context(), &buf); err != nil {
		respondError(ctx, err, "Failed to export catalogue")
		return
	}
	filename := fmt.Sprintf("catalogue-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
