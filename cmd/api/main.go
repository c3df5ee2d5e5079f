//	@title			MemoryLane API
//	@version		1.0
//	@description	Media ingestion and export pipeline behind the MemoryLane shared photo gallery.
//
//	@host		localhost:4173
//	@BasePath	/api

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/memorylane/service/internal/config"
	"github.com/memorylane/service/internal/export"
	"github.com/memorylane/service/internal/gallery"
	"github.com/memorylane/service/internal/imaging"
	"github.com/memorylane/service/internal/metadata"
	appMiddleware "github.com/memorylane/service/internal/middleware"

	_ "github.com/memorylane/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	for _, dir := range []string{cfg.ImageDir, cfg.ExportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create directory %s: %v", dir, err)
		}
	}

	store, err := metadata.Open(filepath.Join(cfg.ImageDir, "metadata.json"))
	if err != nil {
		log.Fatalf("metadata store init failed: %v", err)
	}

	// Wire dependencies: processor → service → handler
	processor := imaging.NewProcessor()

	gallerySvc := gallery.NewService(cfg.ImageDir, store, processor)
	galleryHandler := gallery.NewHandler(gallerySvc, cfg.MaxUploadBytes())

	exportSvc := export.NewService(cfg.ImageDir, cfg.ExportDir)
	exportHandler := export.NewHandler(exportSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:4173/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Uploaded originals and thumbnails
	r.Handle("/images/*", http.StripPrefix("/images/",
		http.FileServer(http.Dir(cfg.ImageDir))))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", galleryHandler.Upload)
		r.Get("/images", galleryHandler.List)
		r.Post("/images/{filename}/rotate", galleryHandler.Rotate)
		r.Delete("/images/{filename}", galleryHandler.Delete)

		r.Route("/export", func(r chi.Router) {
			r.Post("/create", exportHandler.Create)
			r.Get("/status", exportHandler.Status)
			r.Get("/download/{filename}", exportHandler.Download)
			r.Delete("/{filename}", exportHandler.Delete)
		})
	})

	// Uploads, HEIC conversion, and archive creation can all run for minutes;
	// the timeouts match rather than the usual seconds.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("images stored in %s, exports in %s", cfg.ImageDir, cfg.ExportDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
