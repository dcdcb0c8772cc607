package game

import (
	"slices"
	"testing"

	"chesscore/internal/chess"
	"chesscore/internal/engine"
	"chesscore/internal/testutil"
)

func newTestManager() *Manager {
	return NewManager(chess.GenerateKeys(), engine.Options{Threads: 1}, 1)
}

func coord(t *testing.T, s string) chess.Coord {
	t.Helper()
	c, err := chess.ParseCoord(s)
	testutil.AssertNoError(t, err, s)
	return c
}

func playAll(t *testing.T, m *Manager, id string, moves ...string) View {
	t.Helper()
	var v View
	for _, mv := range moves {
		var err error
		v, err = m.Play(id, coord(t, mv[:2]), coord(t, mv[2:]))
		testutil.AssertNoError(t, err, mv)
	}
	return v
}

func TestNewGameView(t *testing.T) {
	m := newTestManager()
	g := m.NewGame(chess.NoSide)
	v := g.View()
	testutil.AssertEqual(t, v.FEN, chess.StartFEN)
	testutil.AssertEqual(t, v.ToMove, chess.White)
	testutil.AssertEqual(t, v.Status, chess.Ongoing)
	testutil.AssertEqual(t, len(v.Legal), 20)
	testutil.AssertEqual(t, v.Ply, 0)
}

func TestFoolsMate(t *testing.T) {
	m := newTestManager()
	id := m.NewGame(chess.NoSide).ID
	v := playAll(t, m, id, "f2f3", "e7e5", "g2g4", "d8h4")

	testutil.AssertEqual(t, v.Status, chess.Checkmate)
	testutil.AssertEqual(t, v.Winner, chess.Black)
	testutil.AssertTrue(t, v.InCheck)
	testutil.AssertEqual(t, len(v.Legal), 0)
	testutil.AssertEqual(t, v.LastMove, "d8h4")

	_, err := m.Play(id, coord(t, "a2"), coord(t, "a3"))
	testutil.AssertErrorIs(t, err, ErrGameOver)
	_, _, err = m.AIMove(id, 1)
	testutil.AssertErrorIs(t, err, ErrGameOver)
}

func TestIllegalMoves(t *testing.T) {
	m := newTestManager()
	id := m.NewGame(chess.NoSide).ID

	for _, mv := range []string{"e2e5", "e7e5", "e1e2", "d4d5"} {
		_, err := m.Play(id, coord(t, mv[:2]), coord(t, mv[2:]))
		testutil.AssertErrorIs(t, err, ErrIllegalMove, mv)
	}
	v, err := m.Get(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.View().Ply, 0)
}

func TestUndoRestoresEnPassant(t *testing.T) {
	m := newTestManager()
	id := m.NewGame(chess.NoSide).ID
	afterPush := playAll(t, m, id, "e2e4")
	testutil.AssertEqual(t, afterPush.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")

	playAll(t, m, id, "g8f6")
	v, err := m.Undo(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.FEN, afterPush.FEN)
	testutil.AssertEqual(t, v.ToMove, chess.Black)

	v, err = m.Undo(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.FEN, chess.StartFEN)

	_, err = m.Undo(id)
	testutil.AssertErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoCastlingIsOnePly(t *testing.T) {
	m := newTestManager()
	id := m.NewGame(chess.NoSide).ID
	before := playAll(t, m, id, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")
	v := playAll(t, m, id, "e1g1")
	testutil.AssertEqual(t, v.FEN, "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 0 1")

	v, err := m.Undo(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.FEN, before.FEN)
	testutil.AssertEqual(t, v.Ply, 6)
}

func TestAITurnOrder(t *testing.T) {
	m := newTestManager()
	g := m.NewGame(chess.White)
	testutil.AssertTrue(t, g.AITurn())

	_, err := m.Play(g.ID, coord(t, "e2"), coord(t, "e4"))
	testutil.AssertErrorIs(t, err, ErrNotYourTurn)

	v, res, err := m.AIMove(g.ID, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, res.Found)
	testutil.AssertEqual(t, res.Depth, 1)
	testutil.AssertEqual(t, v.ToMove, chess.Black)
	testutil.AssertEqual(t, v.LastMove, res.Move.String())
	testutil.AssertFalse(t, g.AITurn())
}

func TestResetAndDelete(t *testing.T) {
	m := newTestManager()
	a := m.NewGame(chess.NoSide).ID
	b := m.NewGame(chess.Black).ID
	playAll(t, m, a, "d2d4", "d7d5")

	v, err := m.Reset(a)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.FEN, chess.StartFEN)
	testutil.AssertEqual(t, v.Ply, 0)

	want := []string{a, b}
	slices.Sort(want)
	testutil.AssertEqual(t, m.List(), want)

	testutil.AssertNoError(t, m.Delete(a))
	testutil.AssertErrorIs(t, m.Delete(a), ErrNotFound)
	_, err = m.Get(a)
	testutil.AssertErrorIs(t, err, ErrNotFound)
	_, err = m.Play(a, coord(t, "e2"), coord(t, "e4"))
	testutil.AssertErrorIs(t, err, ErrNotFound)
	testutil.AssertEqual(t, m.List(), []string{b})
}

func TestFindMateDoesNotPlay(t *testing.T) {
	m := newTestManager()
	id := m.NewGame(chess.NoSide).ID
	before := playAll(t, m, id, "e2e4", "f7f6", "d2d4", "g7g5")

	res, err := m.FindMate(id, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, res.Found)
	testutil.AssertEqual(t, res.Move.String(), "d1h5")

	g, _ := m.Get(id)
	testutil.AssertEqual(t, g.View().FEN, before.FEN)
}

func TestUndoAgainstAIReturnsToHumanTurn(t *testing.T) {
	m := newTestManager()
	id := m.NewGame(chess.Black).ID

	playAll(t, m, id, "e2e4")
	_, _, err := m.AIMove(id, 1)
	testutil.AssertNoError(t, err)

	v, err := m.Undo(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.Ply, 0)
	testutil.AssertEqual(t, v.FEN, chess.StartFEN)
	testutil.AssertEqual(t, v.ToMove, chess.White)

	v = playAll(t, m, id, "d2d4")
	testutil.AssertEqual(t, v.Ply, 1)

	// AI 还没应着时只退人类这一步
	v, err = m.Undo(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.Ply, 0)
	_, err = m.Undo(id)
	testutil.AssertErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoKeepsAIOpening(t *testing.T) {
	m := newTestManager()
	g := m.NewGame(chess.White)
	opened, _, err := m.AIMove(g.ID, 1)
	testutil.AssertNoError(t, err)

	_, err = m.Undo(g.ID)
	testutil.AssertErrorIs(t, err, ErrNothingToUndo)

	move := opened.Legal[0]
	playAll(t, m, g.ID, move[:4])
	_, _, err = m.AIMove(g.ID, 1)
	testutil.AssertNoError(t, err)

	v, err := m.Undo(g.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.Ply, 1)
	testutil.AssertEqual(t, v.FEN, opened.FEN)
	testutil.AssertEqual(t, v.ToMove, chess.Black)
	testutil.AssertFalse(t, g.AITurn())
}
