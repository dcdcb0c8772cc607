package chess

// Move 保存生成时的起点/终点快照：From.Piece 是走子，To.Piece 是被吃的子
// （吃过路兵时是被移走的那个兵，它并不在 To 上）
type Move struct {
	From Tile
	To   Tile
}

// Equal 只比较起终点坐标
func (m Move) Equal(o Move) bool {
	return m.From.Coord == o.From.Coord && m.To.Coord == o.To.Coord
}

func (m Move) Mover() Piece { return m.From.Piece }

func (m Move) IsCapture() bool { return !m.To.Piece.Empty() }

// IsEnPassant 被吃的兵不在终点格上
func (m Move) IsEnPassant() bool {
	taken := m.To.Piece
	return m.From.Piece.Type == PiecePawn && !taken.Empty() &&
		(taken.Row != m.To.Row || taken.Col != m.To.Col)
}

func (m Move) IsCastle() bool {
	d := m.To.Col - m.From.Col
	return m.From.Piece.Type == PieceKing && m.From.Row == m.To.Row && (d == 2 || d == -2)
}

func (m Move) IsPromotion() bool {
	return m.From.Piece.Type == PiecePawn && (m.To.Row == 0 || m.To.Row == Rows-1)
}

// String 输出 UCI 形式，升变固定为后
func (m Move) String() string {
	s := m.From.Coord.String() + m.To.Coord.String()
	if m.IsPromotion() {
		s += "q"
	}
	return s
}
