package engine

import "chesscore/internal/chess"

const (
	mateDepthCap         = 15
	mateDefaultDepth     = 5
	mateNodeBudgetBase   = 32000
	mateNodeBudgetPerPly = 8000
)

const (
	mateAttackSalt uint64 = 0xA5A5A5A5A5A5A5A5
	mateDefendSalt uint64 = 0x5A5A5A5A5A5A5A5A
)

type mateEntry struct {
	depth  int
	result bool
	move   chess.Move
}

type mateContext struct {
	tt     map[uint64]mateEntry
	inPath map[uint64]bool
	nodes  int
	budget int
}

func newMateContext(budget int) *mateContext {
	return &mateContext{
		tt:     make(map[uint64]mateEntry, 1<<12),
		inPath: make(map[uint64]bool, 1<<6),
		budget: budget,
	}
}

// MateResult 连将杀搜索结果
type MateResult struct {
	Found bool
	Move  chess.Move // 第一步将军
	Depth int        // 找到杀棋时的深度（ply）
	Nodes int
}

// FindMate 只走将军步，找 Perspective 一方在 maxDepth 个 ply 内的强制杀。
// 节点预算用完时按没找到处理。
func (e *Engine) FindMate(b *chess.Board, maxDepth int) MateResult {
	if maxDepth <= 0 {
		maxDepth = mateDefaultDepth
	}
	maxDepth = min(maxDepth, mateDepthCap)

	ctx := newMateContext(mateNodeBudgetBase + maxDepth*mateNodeBudgetPerPly)
	root := b.Clone()
	// 攻方走奇数层，迭代加深 1, 3, 5...
	for d := 1; d <= maxDepth; d += 2 {
		if mv, ok := e.mateRoot(root, d, ctx); ok {
			return MateResult{Found: true, Move: mv, Depth: d, Nodes: ctx.nodes}
		}
		if ctx.nodes > ctx.budget {
			break
		}
	}
	return MateResult{Nodes: ctx.nodes}
}

// playChild 在副本上走一步并刷新双方着法
func playChild(b *chess.Board, m chess.Move) *chess.Board {
	child := b.Clone()
	child.ExecuteMove(m, chess.ExecFlags{})
	child.SetEnPassant(m)
	child.CalcTeamValidMoves(chess.White)
	child.CalcTeamValidMoves(chess.Black)
	return child
}

// checkingMoves 攻方着法里给对方将军的，连同走后的局面
func (e *Engine) checkingMoves(b *chess.Board, side chess.Side, ctx *mateContext) ([]chess.Move, []*chess.Board) {
	moves := e.OrderedMoves(b, side)
	if entry, ok := ctx.tt[ttKey(b, side)^mateAttackSalt]; ok {
		for i := range moves {
			if moves[i].Equal(entry.move) {
				mv := moves[i]
				copy(moves[1:i+1], moves[:i])
				moves[0] = mv
				break
			}
		}
	}
	var (
		out      []chess.Move
		children []*chess.Board
	)
	for _, m := range moves {
		child := playChild(b, m)
		if child.InCheck(side.Other()) {
			out = append(out, m)
			children = append(children, child)
		}
	}
	return out, children
}

func (e *Engine) mateRoot(b *chess.Board, depth int, ctx *mateContext) (chess.Move, bool) {
	side := e.Perspective
	moves, children := e.checkingMoves(b, side, ctx)
	for i, m := range moves {
		if children[i].Status(side.Other()) == chess.Checkmate {
			return m, true
		}
		if !e.defenderCanEscape(children[i], side.Other(), depth-1, ctx) {
			return m, true
		}
	}
	return chess.Move{}, false
}

func (e *Engine) attackerCanForce(b *chess.Board, side chess.Side, depth int, ctx *mateContext) bool {
	if depth <= 0 || ctx.spend() {
		return false
	}
	key := ttKey(b, side) ^ mateAttackSalt
	if ctx.inPath[key] {
		return false
	}
	// 浅层能杀的深层也能杀；深层杀不了的浅层也杀不了
	if entry, ok := ctx.tt[key]; ok && ((entry.result && entry.depth <= depth) || (!entry.result && entry.depth >= depth)) {
		return entry.result
	}
	ctx.inPath[key] = true
	defer delete(ctx.inPath, key)

	result := false
	var best chess.Move
	moves, children := e.checkingMoves(b, side, ctx)
	for i, m := range moves {
		if children[i].Status(side.Other()) == chess.Checkmate ||
			!e.defenderCanEscape(children[i], side.Other(), depth-1, ctx) {
			result, best = true, m
			break
		}
	}
	ctx.tt[key] = mateEntry{depth: depth, result: result, move: best}
	return result
}

// defenderCanEscape side 正被将军；只要有一步能躲开后续连将就算逃脱
func (e *Engine) defenderCanEscape(b *chess.Board, side chess.Side, depth int, ctx *mateContext) bool {
	if depth <= 0 || ctx.spend() {
		return true
	}
	key := ttKey(b, side) ^ mateDefendSalt
	if ctx.inPath[key] {
		return true
	}
	// 深层能逃的浅层也能逃；浅层就被杀的深层也一样
	if entry, ok := ctx.tt[key]; ok && ((entry.result && entry.depth >= depth) || (!entry.result && entry.depth <= depth)) {
		return entry.result
	}
	ctx.inPath[key] = true
	defer delete(ctx.inPath, key)

	moves := b.TeamMoves(side)
	if len(moves) == 0 {
		ctx.tt[key] = mateEntry{depth: depth}
		return false
	}
	result := false
	var best chess.Move
	for _, m := range moves {
		if !e.attackerCanForce(playChild(b, m), side.Other(), depth-1, ctx) {
			result, best = true, m
			break
		}
	}
	ctx.tt[key] = mateEntry{depth: depth, result: result, move: best}
	return result
}

func (ctx *mateContext) spend() bool {
	ctx.nodes++
	return ctx.nodes > ctx.budget
}
