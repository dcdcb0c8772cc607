package chess

import (
	"fmt"
	"strings"
)

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols
)

type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

// Other 交换黑白；NoSide 保持不变
func (s Side) Other() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// 兵的前进方向：白向上(-1)，黑向下(+1)
func (s Side) pawnDir() int {
	switch s {
	case White:
		return -1
	case Black:
		return +1
	}
	return 0
}

// 键表里的阵营序号：白=1，黑=0
func (s Side) keyOrdinal() int {
	if s == White {
		return 1
	}
	return 0
}

// ParseSide 接受 "white"/"w"/"black"/"b"，其它一律 NoSide
func ParseSide(s string) Side {
	switch strings.ToLower(s) {
	case "white", "w":
		return White
	case "black", "b":
		return Black
	}
	return NoSide
}

type PieceType int8

const (
	PieceNone PieceType = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

var (
	valuesMG = [...]int{0, 124, 781, 825, 1276, 2538, 0}
	valuesEG = [...]int{0, 206, 854, 915, 1380, 2682, 0}
	names    = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}
)

// ValueMG 中局子力值，王记 0
func (pt PieceType) ValueMG() int { return valuesMG[pt] }

// ValueEG 残局子力值，王记 0
func (pt PieceType) ValueEG() int { return valuesEG[pt] }

func (pt PieceType) String() string { return names[pt] }

func (pt PieceType) sliding() bool {
	return pt == PieceBishop || pt == PieceRook || pt == PieceQueen
}

// Piece 是按值存放在 Tile 里的棋子。相等性只看 ID。
type Piece struct {
	Type      PieceType
	Side      Side
	ID        int
	Dir       int
	HasMoved  bool
	EnPassant bool
	Row       int
	Col       int
}

func newPiece(pt PieceType, side Side, id, row, col int) Piece {
	return Piece{
		Type: pt,
		Side: side,
		ID:   id,
		Dir:  side.pawnDir(),
		Row:  row,
		Col:  col,
	}
}

func (p Piece) Empty() bool { return p.Type == PieceNone }

// Same 判断两个棋子是否为同一实体
func (p Piece) Same(o Piece) bool { return !p.Empty() && p.ID == o.ID }

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return p.Side.String() + " " + p.Type.String()
}

// Coord 是棋盘坐标：row 0 为第 8 横线，row 7 为第 1 横线
type Coord struct {
	Row int
	Col int
}

func Sq(row, col int) Coord { return Coord{Row: row, Col: col} }

func (c Coord) Index() int { return c.Row*Cols + c.Col }

func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

func (c Coord) Add(d Coord) Coord { return Coord{c.Row + d.Row, c.Col + d.Col} }

func (c Coord) String() string {
	if !c.Valid() {
		return "-"
	}
	return string(rune('a'+c.Col)) + string(rune('1'+(Rows-1-c.Row)))
}

func coordOf(idx int) Coord { return Coord{Row: idx / Cols, Col: idx % Cols} }

// ParseCoord 解析 "e4" 这种代数坐标
func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	c := Coord{Row: Rows - 1 - int(s[1]-'1'), Col: int(s[0] - 'a')}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	return c, nil
}
