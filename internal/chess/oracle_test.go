package chess_test

import (
	"sort"
	"testing"

	nchess "github.com/corentings/chess/v2"
	"github.com/dylhunn/dragontoothmg"

	"chesscore/internal/chess"
	"chesscore/internal/testutil"
)

// 标准 perft 局面，覆盖易位、过路兵、升变和牵制
var oracleFENs = []string{
	chess.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
}

func ourMoves(b *chess.Board, side chess.Side) []string {
	b.CalcTeamValidMoves(side)
	var out []string
	for _, m := range b.TeamMoves(side) {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// 参照库的合法着法，只保留升后
func referenceMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := nchess.FEN(fen)
	if err != nil {
		t.Fatalf("reference FEN %q: %v", fen, err)
	}
	g := nchess.NewGame(opt)
	moves := g.ValidMoves()
	var out []string
	for i := range moves {
		mv := &moves[i]
		s := mv.S1().String() + mv.S2().String()
		switch mv.Promo() {
		case nchess.NoPieceType:
		case nchess.Queen:
			s += "q"
		default:
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func TestLegalMovesMatchReference(t *testing.T) {
	for _, fen := range oracleFENs {
		b, side, err := chess.DecodeFEN(fen, nil)
		testutil.AssertNoError(t, err, "decode "+fen)

		for ply := 0; ply < 8; ply++ {
			cur := b.FEN(side)
			got := ourMoves(b, side)
			testutil.AssertEqual(t, got, referenceMoves(t, cur), "moves for "+cur)
			if len(got) == 0 {
				break
			}
			moves := b.TeamMoves(side)
			m := moves[(ply*5+3)%len(moves)]
			b.ExecuteMove(m, chess.ExecFlags{})
			b.SetEnPassant(m)
			side = side.Other()
		}
	}
}

// dragontooth 上的 perft，同样只计升后
func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		if p := m.Promote(); p != 0 && p != dragontoothmg.Queen {
			continue
		}
		unapply := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestPerftMatchesReference(t *testing.T) {
	depths := []int{3, 2, 3, 2, 2, 3}
	for i, fen := range oracleFENs {
		b, side, err := chess.DecodeFEN(fen, nil)
		testutil.AssertNoError(t, err)
		ref := dragontoothmg.ParseFen(fen)
		want := referencePerft(&ref, depths[i])
		if got := chess.Perft(b, side, depths[i]); got != want {
			t.Errorf("perft(%d) %s: got=%d want=%d", depths[i], fen, got, want)
		}
	}
}

func TestPerftStartPosition(t *testing.T) {
	want := []uint64{1, 20, 400, 8902}
	for depth, n := range want {
		b := chess.NewBoard(nil)
		if got := chess.Perft(b, chess.White, depth); got != n {
			t.Fatalf("perft(%d): got=%d want=%d", depth, got, n)
		}
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	b, side, err := chess.DecodeFEN(oracleFENs[1], nil)
	testutil.AssertNoError(t, err)
	var sum uint64
	for _, n := range chess.Divide(b, side, 2) {
		sum += n
	}
	if want := chess.Perft(b, side, 2); sum != want {
		t.Fatalf("divide sum: got=%d want=%d", sum, want)
	}
}
