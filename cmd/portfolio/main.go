package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/avelis/portfolio"
)

func main() {
	// A missing .env is fine; production configures the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := portfolio.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	app := portfolio.New(cfg, log)
	defer app.Close()

	log.Info().Str("addr", cfg.Addr).Msg("starting portfolio site")
	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
