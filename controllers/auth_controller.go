package controllers

import (
	"errors"
	"net/http"

	"github.com/AriJaya07/voyra-tour-bali/middleware"
	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc          *services.AuthService
	SecureCookie bool
}

func NewAuthController(svc *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{Svc: svc, SecureCookie: secureCookie}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var payload loginPayload
	if !bindBody(ctx, &payload) {
		return
	}

	user, token, err := c.Svc.Login(ctx.Request.Context(), payload.Email, payload.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.JSONError(ctx, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondError(ctx, err, "Failed to sign in")
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, token, int(c.Svc.TTL.Seconds()), "/", "", c.SecureCookie, true)
	ctx.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// POST /api/auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.SecureCookie, true)
	utils.JSONSuccess(ctx, http.StatusOK)
}

// GET /api/auth/session
func (c *AuthController) Session(ctx *gin.Context) {
	raw := middleware.TokenFromRequest(ctx)
	if raw == "" {
		utils.JSONError(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}
	claims, err := c.Svc.ParseToken(raw)
	if err != nil {
		utils.JSONError(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := c.Svc.CurrentUser(ctx.Request.Context(), claims)
	if errors.Is(err, services.ErrNotFound) {
		utils.JSONError(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		respondError(ctx, err, "Failed to load session")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}
