package engine

import (
	"testing"

	"chesscore/internal/chess"
	"chesscore/internal/testutil"
)

func decode(t *testing.T, fen string) (*chess.Board, chess.Side) {
	t.Helper()
	b, side, err := chess.DecodeFEN(fen, nil)
	testutil.AssertNoError(t, err, fen)
	return b, side
}

// negamax 不剪枝的全宽搜索，作为对照
func negamax(e *Engine, b *chess.Board, depth, sign int) int {
	b.CalcTeamValidMoves(chess.White)
	b.CalcTeamValidMoves(chess.Black)
	if depth == 0 || b.IsTerminal() {
		return sign * e.evaluate(b)
	}
	best := -scoreInf
	for _, m := range b.TeamMoves(e.sideFor(sign)) {
		child := b.Clone()
		child.ExecuteMove(m, chess.ExecFlags{})
		child.SetEnPassant(m)
		best = max(best, -negamax(e, child, depth-1, -sign))
	}
	return best
}

func TestAlphaBetaBaseCase(t *testing.T) {
	b, side := decode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for _, mode := range []EvalMode{EvalMaterial, EvalPositional} {
		e := New(side, Options{Eval: mode})
		want := e.evaluate(b)
		for _, sign := range []int{1, -1} {
			for _, w := range [][2]int{{-scoreInf, scoreInf}, {0, 1}, {-5, -4}, {100, 50}} {
				got, mv, ok := e.AlphaBeta(b.Clone(), 0, sign, w[0], w[1])
				if ok || mv != (chess.Move{}) {
					t.Fatalf("depth 0 should return no move, got %v", mv)
				}
				if got != sign*want {
					t.Fatalf("%v sign=%d window=%v: got=%d want=%d", mode, sign, w, got, sign*want)
				}
			}
		}
	}
}

func TestPruningSoundness(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
	}{
		{"4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1", 3},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 2},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
	}
	for _, tc := range cases {
		for _, mode := range []EvalMode{EvalMaterial, EvalPositional} {
			for _, useTT := range []bool{false, true} {
				b, side := decode(t, tc.fen)
				e := New(side, Options{Eval: mode, UseTT: useTT})
				want := negamax(New(side, Options{Eval: mode}), b.Clone(), tc.depth, 1)
				got, _, ok := e.AlphaBeta(b, tc.depth, 1, -scoreInf, scoreInf)
				if !ok {
					t.Fatalf("%s: expected a move", tc.fen)
				}
				if got != want {
					t.Fatalf("%s %v tt=%v: alphabeta=%d negamax=%d", tc.fen, mode, useTT, got, want)
				}
			}
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	fens := []string{
		chess.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		for _, threads := range []int{1, 3, 8} {
			b, side := decode(t, fen)
			seq := New(side, Options{Eval: EvalPositional})
			wantScore, wantMove, _ := seq.AlphaBeta(b.Clone(), 2, 1, -scoreInf, scoreInf)

			par := New(side, Options{Eval: EvalPositional, Threads: threads})
			res := par.Search(b, 2)
			if !res.Found {
				t.Fatalf("%s: search found no move", fen)
			}
			if res.Score != wantScore || !res.Move.Equal(wantMove) {
				t.Fatalf("%s threads=%d: got %v/%d want %v/%d", fen, threads, res.Move, res.Score, wantMove, wantScore)
			}
			if res.Lanes > threads {
				t.Fatalf("lanes: got=%d max=%d", res.Lanes, threads)
			}
			if par.Evaluated() != res.Evaluated || res.Evaluated == 0 {
				t.Fatalf("evaluated counter not merged: engine=%d result=%d", par.Evaluated(), res.Evaluated)
			}
		}
	}
}

func TestSearchNoMoves(t *testing.T) {
	b, side := decode(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	e := New(side, Options{Threads: 2})
	res := e.Search(b, 3)
	if res.Found {
		t.Fatalf("mated side should have no move, got %v", res.Move)
	}
	if want := b.Evaluate(side); res.Score != want {
		t.Fatalf("score: got=%d want=%d", res.Score, want)
	}
}

func TestSearchTakesHangingRook(t *testing.T) {
	b, side := decode(t, "4k3/8/8/3r4/8/8/3Q4/4K3 w - - 0 1")
	for _, depth := range []int{1, 2} {
		e := New(side, Options{Eval: EvalPositional, Threads: 2})
		res := e.Search(b, depth)
		if res.Move.String() != "d2d5" {
			t.Fatalf("depth %d: got=%v want=d2d5", depth, res.Move)
		}
	}
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	b, side := decode(t, chess.StartFEN)
	before := b.FEN(side)
	New(side, Options{Threads: 4}).Search(b, 2)
	testutil.AssertEqual(t, b.FEN(side), before)
	if b.Ply() != 0 {
		t.Fatalf("search left %d log entries on the input board", b.Ply())
	}
}

func TestDepthBelowOneIsClamped(t *testing.T) {
	b, side := decode(t, chess.StartFEN)
	res := New(side, Options{Threads: 2}).Search(b, 0)
	if res.Depth != 1 || !res.Found {
		t.Fatalf("got depth=%d found=%v", res.Depth, res.Found)
	}
}

func TestTranspositionTableKeepsScore(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"
	b, side := decode(t, fen)
	plain := New(side, Options{Threads: 1, Eval: EvalPositional})
	withTT := New(side, Options{Threads: 1, Eval: EvalPositional, UseTT: true})

	want := plain.Search(b, 4)
	got := withTT.Search(b, 4)
	if got.Score != want.Score {
		t.Fatalf("tt changed the score: got=%d want=%d", got.Score, want.Score)
	}
	if got.Transpositions == 0 {
		t.Fatalf("expected transposition hits at depth 4")
	}
	if want.Transpositions != 0 {
		t.Fatalf("tt disabled but counted %d hits", want.Transpositions)
	}
}

func TestParseEvalMode(t *testing.T) {
	m, err := ParseEvalMode("Positional")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m, EvalPositional)
	m, err = ParseEvalMode("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m, EvalMaterial)
	_, err = ParseEvalMode("nnue")
	testutil.AssertErrorIs(t, err, ErrUnknownEval)
}
