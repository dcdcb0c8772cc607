package chess

import (
	"fmt"
	"strings"
	"unicode"
)

type castleKind int8

const (
	NoCastle castleKind = iota
	Castle
)

// 走子日志条目，撤销时按原样还原
type logEntry struct {
	move       Move
	mover      Piece
	captured   Piece
	capturedAt Coord
	priorMoved bool
	kind       castleKind
}

// 王车易位时缓存的车步
type castleLink struct {
	ok   bool
	rook Move
}

const (
	queenSide = 0
	kingSide  = 1
)

type Board struct {
	tiles [Rows][Cols]Tile
	log   []logEntry

	// 按格子编号索引的合法着法表，只对下一手有效
	legal    [2][NumSquares][]Move
	computed [2]bool

	castles [2][2]castleLink

	keys   *Keys
	nextID int
}

var letterToPieceType = map[rune]PieceType{
	'p': PiecePawn,
	'n': PieceKnight,
	'b': PieceBishop,
	'r': PieceRook,
	'q': PieceQueen,
	'k': PieceKing,
}

func pieceToChar(p Piece) rune {
	if p.Empty() {
		return '.'
	}
	var base rune
	for k, v := range letterToPieceType {
		if v == p.Type {
			base = k
			break
		}
	}
	if p.Side == White {
		return unicode.ToUpper(base)
	}
	return base
}

const initialBoardString = `rnbqkbnr
pppppppp
........
........
........
........
PPPPPPPP
RNBQKBNR`

func emptyBoard(keys *Keys) *Board {
	if keys == nil {
		keys = DefaultKeys()
	}
	b := &Board{keys: keys}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			b.tiles[r][c] = Tile{Coord: Coord{Row: r, Col: c}}
		}
	}
	return b
}

// NewBoard 返回标准开局。keys 为 nil 时使用进程内默认键表。
func NewBoard(keys *Keys) *Board {
	b := emptyBoard(keys)
	for r, line := range strings.Split(initialBoardString, "\n") {
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = White
			}
			b.addPiece(letterToPieceType[unicode.ToLower(ch)], side, Sq(r, c))
		}
	}
	return b
}

func (b *Board) addPiece(pt PieceType, side Side, at Coord) Piece {
	p := newPiece(pt, side, b.nextID, at.Row, at.Col)
	b.nextID++
	b.tiles[at.Row][at.Col].Piece = p
	return p
}

// Clone 深拷贝。合法着法表的切片只会整体替换，共享底层数组是安全的。
func (b *Board) Clone() *Board {
	c := *b
	c.log = make([]logEntry, len(b.log))
	copy(c.log, b.log)
	return &c
}

// scratch 只拷贝格子，用于走法模拟
func (b *Board) scratch() *Board {
	return &Board{tiles: b.tiles, keys: b.keys}
}

func (b *Board) Tile(at Coord) Tile { return b.tiles[at.Row][at.Col] }

func (b *Board) PieceAt(at Coord) Piece { return b.tiles[at.Row][at.Col].Piece }

func (b *Board) Keys() *Keys { return b.keys }

// Ply 已记录的日志条数（王车易位算两条）
func (b *Board) Ply() int { return len(b.log) }

// LastMove 最近一次执行的着法；易位时返回王的那一步
func (b *Board) LastMove() (Move, bool) {
	if len(b.log) == 0 {
		return Move{}, false
	}
	return b.log[len(b.log)-1].move, true
}

// Pieces 按格子顺序返回 side 的所有棋子
func (b *Board) Pieces(side Side) []Piece {
	var out []Piece
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.tiles[r][c].Piece
			if !p.Empty() && p.Side == side {
				out = append(out, p)
			}
		}
	}
	return out
}

func (b *Board) kingSquare(side Side) Coord {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.tiles[r][c].Piece
			if p.Type == PieceKing && p.Side == side {
				return Coord{Row: r, Col: c}
			}
		}
	}
	panic(fmt.Sprintf("chess: no %s king on board", side))
}

func (b *Board) move(from, to Coord) {
	p := b.tiles[from.Row][from.Col].Piece
	p.Row, p.Col = to.Row, to.Col
	b.tiles[to.Row][to.Col].Piece = p
	b.tiles[from.Row][from.Col].Piece = Piece{}
}

func (b *Board) clear(at Coord) { b.tiles[at.Row][at.Col].Piece = Piece{} }

func (b *Board) put(at Coord, p Piece) {
	p.Row, p.Col = at.Row, at.Col
	b.tiles[at.Row][at.Col].Piece = p
}

func (b *Board) invalidate() {
	b.legal = [2][NumSquares][]Move{}
	b.computed = [2]bool{}
	b.castles = [2][2]castleLink{}
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('8' - r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.tiles[r][c].Piece))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh")
	return sb.String()
}
