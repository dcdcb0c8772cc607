package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"chesscore/internal/chess"
	"chesscore/internal/config"
	"chesscore/internal/server/game"
	httpserver "chesscore/internal/server/http"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	cfg.SetupLogging(os.Stderr)

	keys := chess.DefaultKeys()
	if cfg.KeyPath != "" {
		k, err := chess.LoadOrCreateKeys(cfg.KeyPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.KeyPath).Msg("position keys")
		}
		keys = k
	}

	games := game.NewManager(keys, cfg.EngineOptions(), cfg.Depth)
	h := httpserver.NewHandler(games)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", cfg.Addr).Int("depth", cfg.Depth).Str("eval", cfg.Eval).Bool("tt", cfg.UseTT).Msg("listening")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
