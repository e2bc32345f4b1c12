package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/rajeshbyreddy95/server/internal/auth"
	"github.com/rajeshbyreddy95/server/internal/cache"
	"github.com/rajeshbyreddy95/server/internal/common/logging"
	"github.com/rajeshbyreddy95/server/internal/config"
	"github.com/rajeshbyreddy95/server/internal/enrich"
	"github.com/rajeshbyreddy95/server/internal/handlers"
	"github.com/rajeshbyreddy95/server/internal/middleware"
	"github.com/rajeshbyreddy95/server/internal/storage/mongodb"
	"github.com/rajeshbyreddy95/server/internal/tmdb"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logging.InitGlobalLogger()
	defer logging.MustSync()
	logger := logging.GetGlobalLogger()

	// Initialize document store
	store, err := mongodb.Connect(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close(context.Background())

	// Upstream client and enrichment engine
	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL:        cfg.TMDBBaseURL,
		APIKey:         cfg.TMDBAPIKey,
		RequestTimeout: cfg.SubRequestTimeoutDuration(),
	})
	enricher := enrich.New(client, cfg.ImageBaseURL, cfg.PageSize(), logger)

	// Response cache: local by default, Redis-backed when configured
	var responseCache cache.Cache
	if cfg.RedisAddress != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
		})
		responseCache = cache.NewRedisCache(redisClient, "movie-server:")
		logger.Info("Using Redis response cache", logging.String("address", cfg.RedisAddress))
	} else {
		responseCache = cache.NewLocalCache(cfg.TrendingTTL(), 10*time.Minute)
	}
	trending := cache.NewTrendingCache(responseCache, cfg.TrendingTTL())

	authService := auth.New(store, cfg.JWTSecret, cfg.TokenExpiryDuration())

	// Initialize handlers
	h := handlers.New(store, client, enricher, trending, authService, cfg)

	// Set up routes
	router := mux.NewRouter()
	router.Use(middleware.CORS(cfg.AllowedOrigin))
	router.Use(middleware.Logging)

	router.HandleFunc("/", h.Home).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	router.HandleFunc("/movies", h.Movies).Methods("GET")
	router.HandleFunc("/movieDetails/{id}", h.MovieDetails).Methods("GET")
	router.HandleFunc("/trending", h.Trending).Methods("GET")
	router.HandleFunc("/cast/{id}", h.Cast).Methods("GET")
	router.HandleFunc("/series", h.Series).Methods("GET")
	router.HandleFunc("/upcoming", h.Upcoming).Methods("GET")
	router.HandleFunc("/top-rated", h.TopRated).Methods("GET")
	router.HandleFunc("/genre/{genreId}", h.Genre).Methods("GET")
	router.HandleFunc("/genres", h.Genres).Methods("GET")

	router.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/me", h.Me).Methods("GET")

	router.HandleFunc("/favourites", h.AddFavourite).Methods("POST")
	router.HandleFunc("/favourites", h.GetFavourites).Methods("GET")
	router.HandleFunc("/favourites/{movieId}", h.RemoveFavourite).Methods("DELETE")

	// Set up HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", logging.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
