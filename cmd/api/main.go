package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentiscan/config"
	"github.com/spacesedan/sentiscan/internal/analysis"
	"github.com/spacesedan/sentiscan/internal/logging"
	"github.com/spacesedan/sentiscan/internal/scraper"
	"github.com/spacesedan/sentiscan/internal/sentiment"
	"github.com/spacesedan/sentiscan/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	// The classifier comes up before the listener so the first request never
	// pays the model-loading cost.
	classifier, err := sentiment.Init()
	if err != nil {
		slog.Error("[Main] Failed to initialize classifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sentiment.Close()

	pipeline := analysis.New(classifier, scraper.GetClient())

	opts := server.Options{
		CORSOrigins:    strings.Split(config.GetEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ","),
		RequestTimeout: requestTimeout(),
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(pipeline, opts)

	addr := server.Addr(os.Getenv("PORT"))
	slog.Info("[Main] Listening", slog.String("addr", addr), slog.String("env", env))
	if err := router.Run(addr); err != nil {
		slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func requestTimeout() time.Duration {
	raw := os.Getenv("ANALYZE_TIMEOUT")
	if raw == "" {
		return 0
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("[Main] Invalid ANALYZE_TIMEOUT, running without request deadline",
			slog.String("value", raw))
		return 0
	}
	return timeout
}
