package main

import (
	"testing"

	"chesscore/internal/chess"
	"chesscore/internal/engine"
	"chesscore/internal/testutil"
)

func TestPlayGameStopsAtMoveLimit(t *testing.T) {
	p := Player{Name: "p", Opts: engine.Options{Threads: 2}, Depth: 1}
	out := PlayGame(chess.GenerateKeys(), p, p, 4)
	testutil.AssertEqual(t, out.Reason, "move limit")
	testutil.AssertEqual(t, out.Plies, 4)
	testutil.AssertEqual(t, out.Winner, chess.NoSide)

	_, side, err := chess.DecodeFEN(out.FEN, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, side, chess.White)
}
