package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"moviebuddy/api"
	"moviebuddy/config"
	"moviebuddy/handlers"
	"moviebuddy/services/catalog"
	"moviebuddy/services/suggest"
	"moviebuddy/services/watchlist"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("🎬 moviebuddy starting...")

	// Determine config path (env or default)
	configPath := os.Getenv("MOVIEBUDDY_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	if settings.Catalog.TMDBAPIKey == "" {
		log.Printf("warning: no TMDB API key configured; serving the built-in fixture catalog")
	}

	catalogService := catalog.NewService(
		settings.Catalog.TMDBAPIKey,
		settings.Catalog.Language,
		settings.Cache.Directory,
		settings.Cache.CatalogTTLHours,
	)
	watchlistStore := watchlist.NewStore(afero.NewOsFs(), settings.Watchlist.Directory)
	suggestController := suggest.NewController(
		catalogService,
		time.Duration(settings.Suggest.DebounceMillis)*time.Millisecond,
		nil,
	)

	r := mux.NewRouter()
	api.Register(
		r,
		handlers.NewCatalogHandler(catalogService),
		handlers.NewBrowseHandler(catalogService),
		handlers.NewSuggestHandler(suggestController),
		handlers.NewWatchlistHandler(watchlistStore),
		handlers.NewPosterHandler(settings.Cache.Directory),
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("shutdown signal received, cleaning up...")

	suggestController.Cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("shutdown complete")
}
