package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/config"
	"github.com/AriJaya07/voyra-tour-bali/controllers"
	"github.com/AriJaya07/voyra-tour-bali/routes"
	"github.com/AriJaya07/voyra-tour-bali/services"
	"github.com/AriJaya07/voyra-tour-bali/utils"
)

func main() {
	cfg := config.Load()
	if err := cfg.EnsureJWTSecret(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Printf("✅ Database connection established (%s) and migrations applied.", cfg.DBDriver)

	// Uploads fail with 500 until CLOUDINARY_URL is set; everything else keeps working.
	var host services.ImageHost
	if cfg.CloudinaryURL != "" {
		cld, err := utils.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("❌ Cloudinary init failed: %v", err)
		}
		host = cld
		log.Println("✅ Cloudinary configured.")
	} else {
		log.Println("⚠️  CLOUDINARY_URL not set; image upload and delete are disabled")
	}

	activity := services.NewActivityService(db)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	imageSvc := services.NewImageService(db, host, cfg.CloudinaryFolder, cfg.UploadMaxBytes, activity)

	handlers := routes.Controllers{
		Categories:   controllers.NewCategoryController(services.NewCategoryService(db, activity)),
		Destinations: controllers.NewDestinationController(services.NewDestinationService(db, activity)),
		Packages:     controllers.NewPackageController(services.NewPackageService(db, activity)),
		Locations:    controllers.NewLocationController(services.NewLocationService(db, activity)),
		Contents:     controllers.NewContentController(services.NewContentService(db, activity)),
		Images:       controllers.NewImageController(imageSvc),
		Dashboard: controllers.NewDashboardController(
			services.NewDashboardService(db),
			services.NewExportService(db),
		),
		Activity: controllers.NewActivityController(activity),
		Auth:     controllers.NewAuthController(authSvc, cfg.Release()),
	}

	router := routes.SetupRouter(handlers, routes.Options{
		CORSOrigins:     cfg.CORSOriginList(),
		AuthSvc:         authSvc,
		APIAuthRequired: cfg.APIAuthRequired,
		DashboardDir:    cfg.DashboardDir,
		LoginURL:        cfg.LoginURL,
		MaxUploadBytes:  imageSvc.MaxBytes,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("✅ Server stopped gracefully")
}
