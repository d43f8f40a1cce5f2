package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"terrenos/internal/api"
	"terrenos/internal/geostore"
	"terrenos/internal/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "data/renda_setores_vix.parquet"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The API goes live immediately with a nil store; endpoints answer 503
	// until the dataset load below finishes.
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	go func() {
		t0 := time.Now()
		store, err := geostore.Load(dataPath)
		if err != nil {
			// Degraded but running: the API keeps reporting "not loaded".
			slog.Error("dataset load failed, serving in degraded mode", "path", dataPath, "err", err)
			return
		}
		h.SetStore(store)
		slog.Info("store published", "parcels", store.Count(), "took", time.Since(t0))
	}()

	slog.Info("server ready", "port", port)
	e.Logger.Fatal(e.Start(":" + port))
}
