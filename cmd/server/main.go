package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/caawiye/applink/internal/analytics"
	"github.com/caawiye/applink/internal/cache"
	"github.com/caawiye/applink/internal/config"
	"github.com/caawiye/applink/internal/db"
	"github.com/caawiye/applink/internal/geo"
	"github.com/caawiye/applink/internal/handlers"
	"github.com/caawiye/applink/internal/storage"
	"github.com/caawiye/applink/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	database, err := db.Open(cfg.StoreURL, cfg.StoreToken)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	resolver, err := geo.New(cfg.GeoEndpoint, cfg.GeoIPPath, cfg.GeoTimeout)
	if err != nil {
		log.Printf("geo: %v (local geo lookups disabled)", err)
		resolver, _ = geo.New(cfg.GeoEndpoint, "", cfg.GeoTimeout)
	}
	defer resolver.Close()

	linkCache, err := cache.New(cfg.CacheSize)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}

	blobStore, err := storage.NewDisk(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	recorder := analytics.NewRecorder(database, resolver, cfg.BufferSize, cfg.FlushInterval)

	linkHandler := &handlers.LinkHandler{
		DB:    database,
		Cache: linkCache,
	}

	redirectHandler := &handlers.RedirectHandler{
		DB:       database,
		Cache:    linkCache,
		Recorder: recorder,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Visitor-facing landing + redirect pages
	redirectHandler.RegisterRoutes(r)

	// Uploaded logos and screenshots
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(blobStore.Root()))))

	// API routes (authenticated)
	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(cfg.Password))
		r.Post("/links", linkHandler.Create)
		r.Get("/links", linkHandler.List)
		r.Get("/links/{id}", linkHandler.Get)
		r.Patch("/links/{id}", linkHandler.Update)
		r.Delete("/links/{id}", linkHandler.Delete)
	})

	// Admin UI
	adminHandler, err := web.NewAdminHandler(database, cfg, linkCache, blobStore)
	if err != nil {
		log.Fatalf("admin: %v", err)
	}
	adminHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("applink listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-stop
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	recorder.Shutdown()
	log.Println("goodbye")
}
