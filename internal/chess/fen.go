package chess

import (
	"fmt"
	"strings"
	"unicode"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN 编码当前局面。半回合/回合计数不建模，固定输出 "0 1"。
func (b *Board) FEN(toMove Side) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			p := b.tiles[r][c].Piece
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	if toMove == Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" w ")
	}
	sb.WriteString(b.castlingRights())
	sb.WriteByte(' ')
	if at, ok := b.EnPassantTarget(); ok {
		p := b.PieceAt(at)
		sb.WriteString(Coord{at.Row - p.Dir, at.Col}.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" 0 1")
	return sb.String()
}

// 易位权：王和对应的车都没动过
var castleRights = []struct {
	ch   byte
	side Side
	row  int
	rook int
}{
	{'K', White, Rows - 1, Cols - 1},
	{'Q', White, Rows - 1, 0},
	{'k', Black, 0, Cols - 1},
	{'q', Black, 0, 0},
}

func (b *Board) castlingRights() string {
	var out []byte
	for _, cr := range castleRights {
		king := b.PieceAt(Coord{cr.row, 4})
		rook := b.PieceAt(Coord{cr.row, cr.rook})
		if king.Type == PieceKing && king.Side == cr.side && !king.HasMoved &&
			rook.Type == PieceRook && rook.Side == cr.side && !rook.HasMoved {
			out = append(out, cr.ch)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return string(out)
}

// DecodeFEN 解析 FEN，返回棋盘和走子方。
// has-moved 由易位权和兵所在横线推出，过路兵标记由目标格推出。
func DecodeFEN(fen string, keys *Keys) (*Board, Side, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, NoSide, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, NoSide, ErrInvalidFEN
	}

	b := emptyBoard(keys)
	kings := [2]int{}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, NoSide, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, NoSide, ErrInvalidFEN
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = White
			}
			if pt == PiecePawn && (r == 0 || r == Rows-1) {
				return nil, NoSide, fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			if pt == PieceKing {
				kings[side]++
			}
			b.addPiece(pt, side, Coord{r, c})
			c++
		}
		if c != Cols {
			return nil, NoSide, ErrInvalidFEN
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, NoSide, fmt.Errorf("%w: need exactly one king per side", ErrInvalidFEN)
	}

	var toMove Side
	switch parts[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, NoSide, ErrInvalidFEN
	}

	rights := "-"
	if len(parts) > 2 {
		rights = parts[2]
	}
	b.applyRights(rights)

	if len(parts) > 3 && parts[3] != "-" {
		target, err := ParseCoord(parts[3])
		if err != nil {
			return nil, NoSide, fmt.Errorf("%w: en passant square", ErrInvalidFEN)
		}
		victim := toMove.Other()
		at := Coord{target.Row + victim.pawnDir(), target.Col}
		if at.Valid() {
			p := b.PieceAt(at)
			if p.Type == PiecePawn && p.Side == victim {
				b.tiles[at.Row][at.Col].Piece.EnPassant = true
			}
		}
	}
	return b, toMove, nil
}

func (b *Board) applyRights(rights string) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := &b.tiles[r][c].Piece
			switch p.Type {
			case PiecePawn:
				home := 6
				if p.Side == Black {
					home = 1
				}
				p.HasMoved = r != home
			case PieceKing, PieceRook:
				p.HasMoved = true
			}
		}
	}
	for _, cr := range castleRights {
		if !strings.ContainsRune(rights, rune(cr.ch)) {
			continue
		}
		king := &b.tiles[cr.row][4].Piece
		rook := &b.tiles[cr.row][cr.rook].Piece
		if king.Type == PieceKing && king.Side == cr.side &&
			rook.Type == PieceRook && rook.Side == cr.side {
			king.HasMoved = false
			rook.HasMoved = false
		}
	}
}
