package main

import (
	"github.com/rs/zerolog/log"

	"chesscore/internal/chess"
	"chesscore/internal/engine"
)

type Player struct {
	Name  string
	Opts  engine.Options
	Depth int
}

type Outcome struct {
	Winner chess.Side // NoSide 为和棋或达到步数上限
	Reason string
	Plies  int
	FEN    string
}

// PlayGame 两个引擎对下，直到将死、逼和或达到 maxPlies
func PlayGame(keys *chess.Keys, white, black Player, maxPlies int) Outcome {
	b := chess.NewBoard(keys)
	players := [2]Player{chess.White: white, chess.Black: black}
	engines := [2]*engine.Engine{
		chess.White: engine.New(chess.White, white.Opts),
		chess.Black: engine.New(chess.Black, black.Opts),
	}
	side := chess.White

	for ply := 0; ply < maxPlies; ply++ {
		b.CalcTeamValidMoves(chess.White)
		b.CalcTeamValidMoves(chess.Black)
		switch b.Status(side) {
		case chess.Checkmate:
			return Outcome{Winner: side.Other(), Reason: side.Other().String() + " mates", Plies: ply, FEN: b.FEN(side)}
		case chess.Stalemate:
			return Outcome{Winner: chess.NoSide, Reason: "stalemate", Plies: ply, FEN: b.FEN(side)}
		}

		res := engines[side].Search(b, players[side].Depth)
		if !res.Found {
			return Outcome{Winner: chess.NoSide, Reason: "no move", Plies: ply, FEN: b.FEN(side)}
		}
		m, ok := b.Lookup(res.Move.From.Coord, res.Move.To.Coord)
		if !ok || !b.ExecuteMove(m, chess.ExecFlags{}) {
			log.Error().Str("move", res.Move.String()).Str("fen", b.FEN(side)).Msg("engine returned an illegal move")
			return Outcome{Winner: side.Other(), Reason: "illegal move", Plies: ply, FEN: b.FEN(side)}
		}
		b.SetEnPassant(m)
		log.Debug().Int("ply", ply+1).Str("side", side.String()).Str("move", m.String()).Int("score", res.Score).
			Int64("evaluated", res.Evaluated).Dur("took", res.TimeUsed).Msg("selfplay-move")
		side = side.Other()
	}
	return Outcome{Winner: chess.NoSide, Reason: "move limit", Plies: maxPlies, FEN: b.FEN(side)}
}
