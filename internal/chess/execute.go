package chess

// ExecFlags 控制 ExecuteMove 的附加行为
type ExecFlags struct {
	// Simulation 为 true 时不带动易位的车
	Simulation bool
	// IgnoreCastle 显式禁止易位联动
	IgnoreCastle bool
}

// ExecuteMove 执行 m 并写入日志。调用方需要先用 IsValid 校验。
// 起点没有棋子时返回 false。
func (b *Board) ExecuteMove(m Move, flags ExecFlags) bool {
	from, to := m.From.Coord, m.To.Coord
	if !from.Valid() || !to.Valid() {
		return false
	}
	mover := b.PieceAt(from)
	if mover.Empty() {
		return false
	}

	if mover.Type == PieceKing && isCastleShape(from, to) && !flags.Simulation && !flags.IgnoreCastle {
		// 先车后王：车一条 NoCastle，王一条 Castle
		rook := b.castleRook(mover.Side, from, to)
		b.apply(rook, NoCastle)
		b.apply(Move{From: b.Tile(from), To: b.Tile(to)}, Castle)
	} else {
		b.apply(Move{From: b.Tile(from), To: m.To}, NoCastle)
	}
	b.invalidate()
	return true
}

func isCastleShape(from, to Coord) bool {
	d := to.Col - from.Col
	return from.Row == to.Row && (d == 2 || d == -2)
}

// castleRook 优先用生成时缓存的车步，没有时按几何位置推出
func (b *Board) castleRook(side Side, from, to Coord) Move {
	kind, rookCol, rookTo := kingSide, Cols-1, to.Col-1
	if to.Col < from.Col {
		kind, rookCol, rookTo = queenSide, 0, to.Col+1
	}
	if link := b.castles[side][kind]; link.ok {
		return link.rook
	}
	return b.newMove(Coord{from.Row, rookCol}, Coord{from.Row, rookTo})
}

// apply 移动一个子并追加一条日志，处理吃子、吃过路兵和升变
func (b *Board) apply(m Move, kind castleKind) {
	from, to := m.From.Coord, m.To.Coord
	mover := b.PieceAt(from)

	entry := logEntry{
		move:       Move{From: b.Tile(from), To: b.Tile(to)},
		mover:      mover,
		priorMoved: mover.HasMoved,
		kind:       kind,
	}

	switch {
	case !b.Tile(to).Empty():
		entry.captured = b.PieceAt(to)
		entry.capturedAt = to
	case mover.Type == PiecePawn && from.Col != to.Col:
		// 斜走到空格只能是吃过路兵
		at := Coord{from.Row, to.Col}
		entry.captured = b.PieceAt(at)
		entry.capturedAt = at
		b.clear(at)
	}
	if !entry.captured.Empty() {
		entry.move.To.Piece = entry.captured
	}

	b.move(from, to)
	moved := b.PieceAt(to)
	moved.HasMoved = true

	if moved.Type == PiecePawn && (to.Row == 0 || to.Row == Rows-1) {
		// 只升变为后，分配新的 ID
		moved = newPiece(PieceQueen, moved.Side, b.nextID, to.Row, to.Col)
		moved.HasMoved = true
		b.nextID++
	}
	b.tiles[to.Row][to.Col].Piece = moved
	b.log = append(b.log, entry)
}

// UndoLastMove 撤销最近一步；遇到易位条目时连同车一起撤销。日志为空返回 false。
func (b *Board) UndoLastMove() bool {
	if len(b.log) == 0 {
		return false
	}
	entry := b.log[len(b.log)-1]
	b.log = b.log[:len(b.log)-1]
	b.revert(entry)

	if entry.kind == Castle && len(b.log) > 0 {
		rook := b.log[len(b.log)-1]
		b.log = b.log[:len(b.log)-1]
		b.revert(rook)
	}
	b.invalidate()
	return true
}

func (b *Board) revert(e logEntry) {
	from, to := e.move.From.Coord, e.move.To.Coord
	b.clear(to)
	mover := e.mover
	mover.HasMoved = e.priorMoved
	b.put(from, mover)
	if !e.captured.Empty() {
		b.put(e.capturedAt, e.captured)
	}
}

// SetEnPassant 每步落定后调用一次：清掉全盘过路兵标记，再给刚走两格的兵打上
func (b *Board) SetEnPassant(m Move) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			b.tiles[r][c].Piece.EnPassant = false
		}
	}
	p := b.PieceAt(m.To.Coord)
	d := m.To.Row - m.From.Row
	if p.Type == PiecePawn && m.From.Col == m.To.Col && (d == 2 || d == -2) {
		b.tiles[m.To.Row][m.To.Col].Piece.EnPassant = true
	}
	b.invalidate()
}

// EnPassantTarget 返回可被吃过路兵的兵所在格
func (b *Board) EnPassantTarget() (Coord, bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.tiles[r][c].Piece
			if p.Type == PiecePawn && p.EnPassant {
				return Coord{r, c}, true
			}
		}
	}
	return Coord{}, false
}

// MarkEnPassant 撤销后恢复过路兵标记用；ok 为 false 时只清除
func (b *Board) MarkEnPassant(at Coord, ok bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			b.tiles[r][c].Piece.EnPassant = false
		}
	}
	if ok && at.Valid() && b.PieceAt(at).Type == PiecePawn {
		b.tiles[at.Row][at.Col].Piece.EnPassant = true
	}
	b.invalidate()
}
