package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

const invalidBodyMessage = "Invalid request body"

// respondError maps the service error taxonomy onto HTTP. Anything unexpected is
// logged and answered with the handler's fixed message.
func respondError(ctx *gin.Context, err error, fallback string) {
	var validation *services.ValidationError
	var conflict *services.ConflictError
	var notFound *services.NotFoundError

	switch {
	case errors.As(err, &validation):
		utils.JSONError(ctx, http.StatusBadRequest, validation.Message)
	case errors.As(err, &conflict):
		utils.JSONError(ctx, http.StatusConflict, conflict.Message)
	case errors.As(err, &notFound):
		utils.JSONError(ctx, http.StatusNotFound, notFound.Error())
	default:
		log.Printf("❌ %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		utils.JSONError(ctx, http.StatusInternalServerError, fallback)
	}
}

// parseID reads the :id path parameter; it writes the 400 itself on failure.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(ctx.Param("id")), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional numeric filter such as ?destinationId=3.
func queryID(ctx *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid "+key)
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func bindBody(ctx *gin.Context, dst any) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, invalidBodyMessage)
		return false
	}
	return true
}
