package chess

type Status int8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// CalcTeamValidMoves 重建 side 的合法着法表：
// 不被将时按牵制生成；单将时非王子只能挡或吃将军子；双将时只有王能动。
func (b *Board) CalcTeamValidMoves(side Side) {
	_, pins, checks := b.PinsAndChecks(side)

	b.legal[side] = [NumSquares][]Move{}
	for idx := 0; idx < NumSquares; idx++ {
		at := coordOf(idx)
		p := b.PieceAt(at)
		if p.Empty() || p.Side != side {
			continue
		}
		b.legal[side][idx] = b.calcValidMoves(at, &pins)
	}

	if len(checks) > 0 {
		var block map[Coord]bool
		if len(checks) == 1 {
			block = b.blockSquares(side, checks[0])
		}
		for idx, moves := range b.legal[side] {
			if len(moves) == 0 || moves[0].From.Piece.Type == PieceKing {
				continue
			}
			kept := make([]Move, 0, len(moves))
			for _, m := range moves {
				// 吃过路兵已经模拟验证过
				if m.IsEnPassant() || block[m.To.Coord] {
					kept = append(kept, m)
				}
			}
			b.legal[side][idx] = kept
		}
	}
	b.computed[side] = true
}

// blockSquares 挡将或吃将军子的格子集合
func (b *Board) blockSquares(side Side, c Check) map[Coord]bool {
	set := map[Coord]bool{c.At: true}
	if !b.PieceAt(c.At).Type.sliding() {
		return set
	}
	for at := b.kingSquare(side).Add(c.Dir); at != c.At; at = at.Add(c.Dir) {
		set[at] = true
	}
	return set
}

// Computed 表示 side 的合法着法表当前是否有效
func (b *Board) Computed(side Side) bool { return b.computed[side] }

// ValidMoves 返回 at 上棋子的合法着法；没有条目时视为不能动
func (b *Board) ValidMoves(at Coord) []Move {
	p := b.PieceAt(at)
	if p.Empty() {
		return nil
	}
	return b.legal[p.Side][at.Index()]
}

// TeamMoves 按格子顺序拼接 side 的所有合法着法
func (b *Board) TeamMoves(side Side) []Move {
	var out []Move
	for _, moves := range b.legal[side] {
		out = append(out, moves...)
	}
	return out
}

// IsValid 判断 m 是否在走子方当前的合法着法表里
func (b *Board) IsValid(m Move) bool {
	if !m.From.Coord.Valid() || !m.To.Coord.Valid() {
		return false
	}
	for _, v := range b.ValidMoves(m.From.Coord) {
		if v.Equal(m) {
			return true
		}
	}
	return false
}

// Lookup 按坐标找到对应的合法着法（带完整快照）
func (b *Board) Lookup(from, to Coord) (Move, bool) {
	if !from.Valid() || !to.Valid() {
		return Move{}, false
	}
	for _, v := range b.ValidMoves(from) {
		if v.To.Coord == to {
			return v, true
		}
	}
	return Move{}, false
}

// InCheckmate 需要先为 side 计算合法着法；所有子都不能动时返回 true（含逼和）
func (b *Board) InCheckmate(side Side) bool {
	for idx, moves := range b.legal[side] {
		p := b.tiles[idx/Cols][idx%Cols].Piece
		if p.Empty() || p.Side != side {
			continue
		}
		if len(moves) > 0 {
			return false
		}
	}
	return true
}

// Status 区分将死与逼和
func (b *Board) Status(side Side) Status {
	if !b.computed[side] {
		b.CalcTeamValidMoves(side)
	}
	if !b.InCheckmate(side) {
		return Ongoing
	}
	if b.InCheck(side) {
		return Checkmate
	}
	return Stalemate
}

// IsTerminal 任一方无子可动即为终局；没算过的一方会先补算
func (b *Board) IsTerminal() bool {
	for _, side := range [2]Side{White, Black} {
		if !b.computed[side] {
			b.CalcTeamValidMoves(side)
		}
		if b.InCheckmate(side) {
			return true
		}
	}
	return false
}
