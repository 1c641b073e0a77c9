package main

import (
	"context"
	"errors"
	"fmt"
	"go-blog-app/internal/cache"
	"go-blog-app/internal/config"
	"go-blog-app/internal/content"
	"go-blog-app/internal/data"
	"go-blog-app/internal/handler"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/render"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
	"go-blog-app/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stderr)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.Driver, cfg.DB.DSN); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	templates, err := view.NewTemplates(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Page Cache Initialization ---
	var pageCache *cache.Cache
	if cfg.Cache.Enabled {
		log.Info("Initializing SQLite page cache...")
		pageCache, err = cache.New(cfg.Cache.Path)
		if err != nil {
			log.Fatal(err, "Failed to initialize page cache")
		}
		defer pageCache.Close()
		log.Info("Page cache initialized.")
	}

	// --- Render Context ---
	// Built once from configuration and handed explicitly to every view.
	nav := make([]view.NavLink, 0, len(cfg.Site.Nav))
	for _, link := range cfg.Site.Nav {
		nav = append(nav, view.NavLink{Label: link.Label, Href: link.Href})
	}
	rc := view.Context{
		Name:        cfg.Site.Name,
		BaseURL:     cfg.Site.URL,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
		Nav:         nav,
	}

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	entryRepository := data.NewSQLEntryRepository(db)
	resolver := service.NewResolver(entryRepository, templates, render.New())

	// --- Content Import ---
	// rootCtx ends when the server shuts down; it bounds the content watcher.
	rootCtx, stopImport := context.WithCancel(context.Background())
	defer stopImport()

	flushCache := func() {
		if pageCache == nil {
			return
		}
		if err := pageCache.Flush(); err != nil {
			log.Error(err, "Failed to flush page cache")
		}
	}

	if cfg.Content.Dir != "" {
		importer := content.NewImporter(entryRepository, log)
		count, err := importer.Sync(rootCtx, cfg.Content.Dir)
		if err != nil {
			log.Fatal(err, "Failed to import content")
		}
		log.With(map[string]interface{}{"entries": count}).Info("Content imported")
		flushCache()

		if cfg.Content.Watch {
			go func() {
				if err := importer.Watch(rootCtx, cfg.Content.Dir, flushCache); err != nil {
					log.Error(err, "Content watcher stopped")
				}
			}()
		}
	}

	pageHandler := handler.NewPageHandler(resolver, templates, rc, pageCache, cfg.Cache.TTL, log)
	feedHandler := handler.NewFeedHandler(entryRepository, rc)
	seoHandler := handler.NewSeoHandler(entryRepository, resolver.StaticNames(), cfg.Site.URL)
	errorMiddleware := middleware.Error(log, templates, rc)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(pageHandler, feedHandler, seoHandler, resolver.StaticNames(), errorMiddleware, web.StaticFS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	stopImport()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
