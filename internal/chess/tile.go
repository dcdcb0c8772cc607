package chess

// Tile 是棋盘上的一个格子；相等性只看坐标
type Tile struct {
	Coord
	Piece Piece
}

func (t Tile) Empty() bool { return t.Piece.Empty() }

// At 只比较坐标，不比较格子上的棋子
func (t Tile) At(o Tile) bool { return t.Coord == o.Coord }

func (t Tile) hasRival(side Side) bool {
	return !t.Piece.Empty() && t.Piece.Side == side.Other()
}

func (t Tile) hasTeam(side Side) bool {
	return !t.Piece.Empty() && t.Piece.Side == side
}

// Bonus 位置分，黑方表是白方表上下翻转
func (t Tile) Bonus(pt PieceType, side Side) int {
	if pt == PieceNone || (side != White && side != Black) {
		return 0
	}
	return psqt[side][pt][t.Row][t.Col]
}
