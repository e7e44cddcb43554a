package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"aiinterviewer-backend/internal/api"
	"aiinterviewer-backend/internal/auth"
	"aiinterviewer-backend/internal/config"
	"aiinterviewer-backend/internal/database"
	"aiinterviewer-backend/internal/interview"
	"aiinterviewer-backend/internal/llm"
	"aiinterviewer-backend/internal/search"
	"aiinterviewer-backend/internal/support"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Printf("Initializing database at %s", cfg.DBPath)
	if err := database.Open(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize services
	authSvc := auth.NewService(cfg.JWTSecret)
	completer := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel)
	searcher := search.NewClient(cfg.SerpAPIKey)
	interviews := interview.NewService(completer, searcher)
	assistant := support.NewAssistant(completer, interviews)

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	api.RegisterRoutes(e, authSvc, interviews, assistant)

	log.Printf("Starting AI interviewer backend on %s", cfg.ListenAddr)
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
