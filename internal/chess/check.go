package chess

// 前 4 个是直线方向，后 4 个是斜线方向
var kingRays = [8]Coord{
	{-1, 0}, {0, -1}, {1, 0}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

var knightOffsets = [8]Coord{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Pin 被牵制的格子以及从王出发的射线方向
type Pin struct {
	At  Coord
	Dir Coord
}

// Check 将军的格子以及从王指向它的方向（马将时是马的偏移）
type Check struct {
	At  Coord
	Dir Coord
}

// PinsAndChecks 从 side 的王出发沿 8 个方向扫描，找出牵制和将军。
// 找不到王属于程序错误，直接 panic。
func (b *Board) PinsAndChecks(side Side) (bool, []Pin, []Check) {
	king := b.kingSquare(side)
	enemy := side.Other()

	var (
		pins    []Pin
		checks  []Check
		inCheck bool
	)

	for j, d := range kingRays {
		var candidate *Pin
		for i := 1; i < Rows; i++ {
			at := Coord{king.Row + d.Row*i, king.Col + d.Col*i}
			if !at.Valid() {
				break
			}
			p := b.tiles[at.Row][at.Col].Piece
			if p.Empty() {
				continue
			}
			if p.Side == side {
				if candidate != nil {
					break // 两个己方子挡住
				}
				candidate = &Pin{At: at, Dir: d}
				continue
			}
			if threatens(p.Type, enemy, j, i) {
				if candidate == nil {
					inCheck = true
					checks = append(checks, Check{At: at, Dir: d})
				} else {
					pins = append(pins, *candidate)
				}
			}
			break
		}
	}

	for _, d := range knightOffsets {
		at := king.Add(d)
		if !at.Valid() {
			continue
		}
		p := b.tiles[at.Row][at.Col].Piece
		if p.Type == PieceKnight && p.Side == enemy {
			inCheck = true
			checks = append(checks, Check{At: at, Dir: d})
		}
	}
	return inCheck, pins, checks
}

// threatens 判断 attacker 方的 pt 能否沿第 j 条射线、距离 dist 攻击到王
func threatens(pt PieceType, attacker Side, j, dist int) bool {
	orthogonal := j <= 3
	switch pt {
	case PieceQueen:
		return true
	case PieceRook:
		return orthogonal
	case PieceBishop:
		return !orthogonal
	case PieceKing:
		return dist == 1
	case PiecePawn:
		if dist != 1 {
			return false
		}
		// 黑兵从上方斜着攻击白王，白兵从下方攻击黑王
		if attacker == Black {
			return j == 4 || j == 5
		}
		return j == 6 || j == 7
	}
	return false
}

// InCheck 当前 side 是否被将军
func (b *Board) InCheck(side Side) bool {
	inCheck, _, _ := b.PinsAndChecks(side)
	return inCheck
}

// kingSafeAfter 在只拷贝了格子的临时棋盘上执行 apply，再看 side 是否被将
func (b *Board) kingSafeAfter(apply func(*Board), side Side) bool {
	s := b.scratch()
	apply(s)
	inCheck, _, _ := s.PinsAndChecks(side)
	return !inCheck
}
