package chess

var (
	rookDirs   = []Coord{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	bishopDirs = []Coord{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs  = append(append([]Coord{}, rookDirs...), bishopDirs...)
)

// takePin 找到 at 上的牵制并从列表里移除
func takePin(pins *[]Pin, at Coord) (Pin, bool) {
	if pins == nil {
		return Pin{}, false
	}
	for i, p := range *pins {
		if p.At == at {
			*pins = append((*pins)[:i], (*pins)[i+1:]...)
			return p, true
		}
	}
	return Pin{}, false
}

// 方向 d 是否与牵制射线共线（同向或反向）
func alongPin(pin Pin, d Coord) bool {
	return d == pin.Dir || d == (Coord{-pin.Dir.Row, -pin.Dir.Col})
}

func (b *Board) newMove(from, to Coord) Move {
	return Move{From: b.Tile(from), To: b.Tile(to)}
}

// calcValidMoves 生成 at 上棋子的着法，牵制信息会从 pins 中消耗掉
func (b *Board) calcValidMoves(at Coord, pins *[]Pin) []Move {
	p := b.PieceAt(at)
	if p.Empty() {
		return nil
	}
	pin, pinned := takePin(pins, at)

	var moves []Move
	switch p.Type {
	case PiecePawn:
		b.genPawnMoves(p, at, pinned, pin, &moves)
	case PieceKnight:
		if !pinned {
			b.genKnightMoves(p, at, &moves)
		}
	case PieceBishop:
		b.genSlidingMoves(p, at, pinned, pin, bishopDirs, &moves)
	case PieceRook:
		b.genSlidingMoves(p, at, pinned, pin, rookDirs, &moves)
	case PieceQueen:
		b.genSlidingMoves(p, at, pinned, pin, queenDirs, &moves)
	case PieceKing:
		b.genKingMoves(p, at, &moves)
	}
	return moves
}

func (b *Board) genPawnMoves(p Piece, at Coord, pinned bool, pin Pin, moves *[]Move) {
	dir := p.Dir

	// 前进
	fwd := Coord{dir, 0}
	if !pinned || alongPin(pin, fwd) {
		steps := 1
		if !p.HasMoved {
			steps = 2
		}
		for i := 1; i <= steps; i++ {
			to := Coord{at.Row + dir*i, at.Col}
			if !to.Valid() || !b.Tile(to).Empty() {
				break
			}
			*moves = append(*moves, b.newMove(at, to))
		}
	}

	// 斜吃
	for _, dc := range [2]int{-1, 1} {
		d := Coord{dir, dc}
		to := at.Add(d)
		if !to.Valid() || !b.Tile(to).hasRival(p.Side) {
			continue
		}
		if pinned && !alongPin(pin, d) {
			continue
		}
		*moves = append(*moves, b.newMove(at, to))
	}

	// 吃过路兵：被吃的兵不在终点，直接模拟验证，横向牵制也能覆盖
	epRow := 3
	if p.Side == Black {
		epRow = 4
	}
	if at.Row != epRow {
		return
	}
	for _, dc := range [2]int{-1, 1} {
		side := Coord{at.Row, at.Col + dc}
		if !side.Valid() {
			continue
		}
		victim := b.PieceAt(side)
		if victim.Type != PiecePawn || victim.Side == p.Side || !victim.EnPassant {
			continue
		}
		to := Coord{at.Row + dir, at.Col + dc}
		if !to.Valid() || !b.Tile(to).Empty() {
			continue
		}
		safe := b.kingSafeAfter(func(s *Board) {
			s.clear(side)
			s.move(at, to)
		}, p.Side)
		if !safe {
			continue
		}
		*moves = append(*moves, Move{
			From: b.Tile(at),
			To:   Tile{Coord: to, Piece: victim},
		})
	}
}

func (b *Board) genKnightMoves(p Piece, at Coord, moves *[]Move) {
	for _, d := range knightOffsets {
		to := at.Add(d)
		if !to.Valid() || b.Tile(to).hasTeam(p.Side) {
			continue
		}
		*moves = append(*moves, b.newMove(at, to))
	}
}

func (b *Board) genSlidingMoves(p Piece, at Coord, pinned bool, pin Pin, dirs []Coord, moves *[]Move) {
	for _, d := range dirs {
		if pinned && !alongPin(pin, d) {
			continue
		}
		for to := at.Add(d); to.Valid(); to = to.Add(d) {
			t := b.Tile(to)
			if t.hasTeam(p.Side) {
				break
			}
			*moves = append(*moves, b.newMove(at, to))
			if t.hasRival(p.Side) {
				break
			}
		}
	}
}

// genKingMoves 王的每一步都在临时棋盘上验证，易位同样如此
func (b *Board) genKingMoves(p Piece, at Coord, moves *[]Move) {
	for _, d := range kingRays {
		to := at.Add(d)
		if !to.Valid() || b.Tile(to).hasTeam(p.Side) {
			continue
		}
		if b.kingSafeAfter(func(s *Board) { s.move(at, to) }, p.Side) {
			*moves = append(*moves, b.newMove(at, to))
		}
	}
	b.genCastles(p, at, moves)
}

func (b *Board) genCastles(p Piece, at Coord, moves *[]Move) {
	b.castles[p.Side] = [2]castleLink{}
	if p.HasMoved || at.Col != 4 {
		return
	}
	if b.InCheck(p.Side) {
		return
	}

	type plan struct {
		kind    int
		rookCol int
		rookTo  int
		empty   []int
		transit int
		dest    int
	}
	plans := [2]plan{
		{kind: queenSide, rookCol: 0, rookTo: 3, empty: []int{1, 2, 3}, transit: 3, dest: 2},
		{kind: kingSide, rookCol: 7, rookTo: 5, empty: []int{5, 6}, transit: 5, dest: 6},
	}

	row := at.Row
	for _, pl := range plans {
		rook := b.PieceAt(Coord{row, pl.rookCol})
		if rook.Type != PieceRook || rook.Side != p.Side || rook.HasMoved {
			continue
		}
		blocked := false
		for _, c := range pl.empty {
			if !b.Tile(Coord{row, c}).Empty() {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		transit, dest := Coord{row, pl.transit}, Coord{row, pl.dest}
		if !b.kingSafeAfter(func(s *Board) { s.move(at, transit) }, p.Side) {
			continue
		}
		if !b.kingSafeAfter(func(s *Board) { s.move(at, dest) }, p.Side) {
			continue
		}
		*moves = append(*moves, b.newMove(at, dest))
		b.castles[p.Side][pl.kind] = castleLink{
			ok:   true,
			rook: b.newMove(Coord{row, pl.rookCol}, Coord{row, pl.rookTo}),
		}
	}
}
