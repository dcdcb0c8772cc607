package engine

import "chesscore/internal/chess"

const ttCap = 1_000_000

// 黑方走棋时混进哈希的盐
const blackToMoveSalt uint64 = 0x9e3779b97f4a7c15

// 简单 TT 条目：只用来把上次的最佳着法排到前面
type ttEntry struct {
	Key   uint64
	Depth int
	Move  chess.Move
}

func ttKey(b *chess.Board, side chess.Side) uint64 {
	h := b.ZobristHash()
	if side == chess.Black {
		h ^= blackToMoveSalt
	}
	return h
}

func (e *Engine) storeTT(key uint64, depth int, mv chess.Move) {
	// 只在本线程访问，不加锁
	if len(e.tt) > ttCap {
		e.tt = make(map[uint64]ttEntry, 1<<12)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Move:  mv,
		}
	}
}

// lookupTT 命中时把表里的着法提到最前，其余顺序不变
func (e *Engine) lookupTT(key uint64, moves []chess.Move) []chess.Move {
	entry, ok := e.tt[key]
	if !ok {
		return moves
	}
	e.transpositions++
	for i := range moves {
		if moves[i].Equal(entry.Move) {
			mv := moves[i]
			copy(moves[1:i+1], moves[:i])
			moves[0] = mv
			break
		}
	}
	return moves
}
