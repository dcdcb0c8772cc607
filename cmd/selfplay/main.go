package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/rs/zerolog/log"

	"chesscore/internal/chess"
	"chesscore/internal/config"
	"chesscore/internal/engine"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	games := flag.Int("games", 2, "number of games to play")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	rival := flag.String("rival-eval", "positional", "evaluator of the second player")
	pprof := flag.String("pprof", "", "pprof listen address, empty = off")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	cfg.SetupLogging(os.Stderr)
	rivalMode, err := engine.ParseEvalMode(*rival)
	if err != nil {
		log.Fatal().Err(err).Msg("rival eval")
	}

	if *pprof != "" {
		go func() {
			log.Info().Str("addr", *pprof).Msg("pprof listening")
			if err := http.ListenAndServe(*pprof, nil); err != nil {
				log.Warn().Err(err).Msg("pprof failed")
			}
		}()
	}

	keys := chess.DefaultKeys()
	if cfg.KeyPath != "" {
		if keys, err = chess.LoadOrCreateKeys(cfg.KeyPath); err != nil {
			log.Fatal().Err(err).Msg("position keys")
		}
	}

	first := Player{Name: "A (" + cfg.Eval + ")", Opts: cfg.EngineOptions(), Depth: cfg.Depth}
	secondOpts := cfg.EngineOptions()
	secondOpts.Eval = rivalMode
	second := Player{Name: "B (" + rivalMode.String() + ")", Opts: secondOpts, Depth: cfg.Depth}

	score := map[string]int{}
	for g := 0; g < *games; g++ {
		// 轮流执白
		white, black := first, second
		if g%2 == 1 {
			white, black = second, first
		}
		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		out := PlayGame(keys, white, black, *maxMoves)
		fmt.Printf("Result: %s after %d plies\nFEN: %s\n", out.Reason, out.Plies, out.FEN)
		switch out.Winner {
		case chess.White:
			score[white.Name]++
		case chess.Black:
			score[black.Name]++
		default:
			score["draw"]++
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", first.Name, score[first.Name])
	fmt.Printf("%s: %d\n", second.Name, score[second.Name])
	fmt.Printf("Draws: %d\n", score["draw"])
}
