package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fintrack-app/backend/internal/aggregate"
	v1 "github.com/fintrack-app/backend/internal/controllers/v1"
	"github.com/fintrack-app/backend/internal/dashboard"
	"github.com/fintrack-app/backend/internal/fx"
	"github.com/fintrack-app/backend/internal/holdings"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/router"
	"github.com/fintrack-app/backend/internal/split"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, variables from the environment win
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dataDir := filepath.Join(".", "data")
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			log.Fatal().Msg(err.Error())
		}
		dsn = filepath.Join(dataDir, "fintrack.db")
	}

	if err := models.Connect(dsn); err != nil {
		log.Fatal().Msg(err.Error())
	}

	rateURL, ok := os.LookupEnv("FX_API_URL")
	if !ok {
		rateURL = "https://api.frankfurter.app"
	}
	fxService := fx.New(models.DB, fx.NewHTTPProvider(rateURL))

	quoteURL, ok := os.LookupEnv("QUOTE_API_URL")
	if !ok {
		quoteURL = "https://quotes.fintrack.app"
	}
	quotes := holdings.Throttled(holdings.NewHTTPProvider(quoteURL), 200*time.Millisecond)
	valuator := holdings.New(fxService, quotes)

	aggregator := aggregate.New(models.DB, fxService, valuator)
	cache := dashboard.New(models.DB, aggregator)

	if err := dashboard.RegisterPrometheusMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Router(v1.Controller{
		Cache:       cache,
		Settlements: split.NewEngine(models.DB),
	})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
