package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AriJaya07/voyra-tour-bali/controllers"
	"github.com/AriJaya07/voyra-tour-bali/middleware"
	"github.com/AriJaya07/voyra-tour-bali/services"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Categories   *controllers.CategoryController
	Destinations *controllers.DestinationController
	Packages     *controllers.PackageController
	Locations    *controllers.LocationController
	Contents     *controllers.ContentController
	Images       *controllers.ImageController
	Dashboard    *controllers.DashboardController
	Activity     *controllers.ActivityController
	Auth         *controllers.AuthController
}

type Options struct {
	CORSOrigins     []string
	AuthSvc         *services.AuthService
	APIAuthRequired bool
	DashboardDir    string
	LoginURL        string
	MaxUploadBytes  int64
}

// crud mounts the five resource routes; PUT shares the PATCH handler.
type crud interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func mount(g *gin.RouterGroup, h crud) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func SetupRouter(h Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes + 1<<20
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.DashboardDir != "" && opts.AuthSvc != nil {
		dashboard := r.Group("/dashboard", middleware.RedirectToLogin(opts.AuthSvc, opts.LoginURL))
		dashboard.Static("/", opts.DashboardDir)
	}

	api := r.Group("/api")
	if opts.APIAuthRequired && opts.AuthSvc != nil {
		api.Use(middleware.RequireAPIAuth(opts.AuthSvc, "/api/auth/login", "/api/auth/logout"))
	}
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/session", h.Auth.Session)
		}

		mount(api.Group("/categories"), h.Categories)
		mount(api.Group("/destinations"), h.Destinations)
		mount(api.Group("/packages"), h.Packages)
		mount(api.Group("/locations"), h.Locations)
		mount(api.Group("/contents"), h.Contents)

		images := api.Group("/images")
		{
			images.GET("", h.Images.List)
			images.POST("", h.Images.Upload)
			images.GET("/:id", h.Images.Get)
			images.PATCH("/:id", h.Images.Update)
			images.PUT("/:id", h.Images.Update)
			images.DELETE("/:id", h.Images.Delete)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.GetStats)
			dashboard.GET("/export", h.Dashboard.ExportCatalog)
		}
		api.GET("/stats", h.Dashboard.GetStats)

		api.GET("/activity", h.Activity.List)
	}

	return r
}
