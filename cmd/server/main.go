package main

import (
	"log"
	"os"
	"path/filepath"

	"backend/internal/api"
	"backend/internal/config"
	"backend/internal/engine"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log.Println("Starting Lok Sabha Elections backend...")

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// The dataset is built once, synchronously, before any route is served.
	// A catastrophic load failure means the process must not come up at all
	// rather than answer queries against a half-built dataset.
	data, err := engine.Load(cfg.Data.Dirs, cfg.Data.Years)
	if err != nil {
		log.Fatalf("Error loading election data: %v", err)
	}

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	h := api.NewHandler(data)
	h.RegisterRoutes(e, cfg.Data.StaticDir, filepath.Join("static", "data"))

	log.Printf("Server ready on port %s", cfg.Server.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}
