package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"

	"chesscore/internal/chess"
	"chesscore/internal/config"
)

// referencePerft 用 dragontoothmg 数同一局面的叶子，过滤掉低升变
func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var n uint64
	for _, m := range b.GenerateLegalMoves() {
		if p := m.Promote(); p != 0 && p != dragontoothmg.Queen {
			continue
		}
		unapply := b.Apply(m)
		n += referencePerft(b, depth-1)
		unapply()
	}
	return n
}

func main() {
	cfg := config.Default()
	cfg.KeyPath = ""
	cfg.RegisterFlags(flag.CommandLine)
	fen := flag.String("fen", chess.StartFEN, "position to count")
	divide := flag.Bool("divide", false, "print per-move counts")
	verify := flag.Bool("verify", false, "cross-check the total against dragontoothmg")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	cfg.SetupLogging(os.Stderr)

	b, side, err := chess.DecodeFEN(*fen, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("fen")
	}
	fmt.Println(b)

	start := time.Now()
	var total uint64
	if *divide {
		counts := chess.Divide(b, side, cfg.Depth)
		moves := maps.Keys(counts)
		slices.Sort(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			total += counts[m]
		}
	} else {
		total = chess.Perft(b, side, cfg.Depth)
	}
	took := time.Since(start)
	fmt.Printf("depth %d: %d nodes in %v\n", cfg.Depth, total, took)

	if *verify {
		ref := dragontoothmg.ParseFen(*fen)
		want := referencePerft(&ref, cfg.Depth)
		if want != total {
			log.Error().Uint64("got", total).Uint64("want", want).Msg("perft mismatch")
			os.Exit(1)
		}
		log.Info().Uint64("nodes", total).Msg("perft matches dragontoothmg")
	}
}
