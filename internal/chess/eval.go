package chess

// Evaluate 只数 side 自己的中局子力，不减对方
func (b *Board) Evaluate(side Side) int {
	score := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.tiles[r][c].Piece
			if !p.Empty() && p.Side == side {
				score += p.Type.ValueMG()
			}
		}
	}
	return score
}

// EvaluatePositional 子力加位置分，己方减对方
func (b *Board) EvaluatePositional(side Side) int {
	score := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			t := b.tiles[r][c]
			if t.Empty() {
				continue
			}
			v := t.Piece.Type.ValueMG() + t.Bonus(t.Piece.Type, t.Piece.Side)
			if t.Piece.Side == side {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}
