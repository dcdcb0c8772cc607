package engine

import (
	"sort"

	"chesscore/internal/chess"
)

// scoreMove 吃子、升变加分；落点能被对方走到时扣掉“送子”分
func scoreMove(m chess.Move, theirs []chess.Move) int {
	mover := m.Mover().Type.ValueMG()
	score := 0
	if m.IsCapture() && !m.IsEnPassant() {
		score += 10*m.To.Piece.Type.ValueMG() - mover
	}
	if m.IsPromotion() {
		score += chess.PieceQueen.ValueMG()
	}
	for _, t := range theirs {
		if t.To.Coord == m.To.Coord {
			score -= max(mover-t.Mover().Type.ValueMG(), 100)
			break
		}
	}
	return score
}

// OrderedMoves 返回 side 的合法着法，按启发分从高到低稳定排序
func (e *Engine) OrderedMoves(b *chess.Board, side chess.Side) []chess.Move {
	for _, s := range [2]chess.Side{side, side.Other()} {
		if !b.Computed(s) {
			b.CalcTeamValidMoves(s)
		}
	}
	moves := b.TeamMoves(side)
	theirs := b.TeamMoves(side.Other())

	type scored struct {
		move  chess.Move
		score int
	}
	list := make([]scored, len(moves))
	for i, m := range moves {
		list[i] = scored{move: m, score: scoreMove(m, theirs)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})
	for i := range list {
		moves[i] = list[i].move
	}
	return moves
}
