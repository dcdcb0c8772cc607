package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chesscore/internal/chess"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000
)

// 搜索结果
type Result struct {
	Move           chess.Move    // 最佳着法，Found 为 false 时无意义
	Found          bool          // 根局面无着法时为 false
	Score          int           // 执棋方视角的评估分
	Depth          int           // 总搜索深度（ply）
	Lanes          int           // 实际使用的并行线程数
	Evaluated      int64         // 叶子评估次数
	Pruned         int64         // 被剪掉的兄弟节点数
	Transpositions int64         // TT 命中次数
	TimeUsed       time.Duration // 花费时间
}

// AlphaBeta negamax 形式的 alpha-beta。sign 为 +1 时轮到执棋方。
// 深度为 0 或任一方无子可动时返回 sign*静态评估，且没有着法。
func (e *Engine) AlphaBeta(b *chess.Board, depth, sign, alpha, beta int) (int, chess.Move, bool) {
	// 传进来的快照不保证着法表是新的
	b.CalcTeamValidMoves(chess.White)
	b.CalcTeamValidMoves(chess.Black)
	if depth <= 0 || b.IsTerminal() {
		e.evaluated++
		return sign * e.evaluate(b), chess.Move{}, false
	}

	side := e.sideFor(sign)
	moves := e.OrderedMoves(b, side)

	var key uint64
	if e.opts.UseTT {
		key = ttKey(b, side)
		moves = e.lookupTT(key, moves)
	}

	best := -scoreInf
	var bestMove chess.Move
	found := false
	for i, m := range moves {
		child := b.Clone()
		child.ExecuteMove(m, chess.ExecFlags{})
		child.SetEnPassant(m)
		score, _, _ := e.AlphaBeta(child, depth-1, -sign, -beta, -alpha)
		score = -score

		// 严格大于才替换，平分保留先出现的着法
		if !found || score > best {
			best, bestMove, found = score, m, true
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			e.pruned += int64(len(moves) - i - 1)
			break
		}
	}

	if e.opts.UseTT && found {
		e.storeTT(key, depth, bestMove)
	}
	return best, bestMove, found
}

type laneResult struct {
	index int
	score int
	move  chess.Move
	found bool
}

// Search 根节点并行：排好序的根着法按步长分给 N 条线程，
// 每条线程在自己的棋盘副本上顺序搜索，最后取最高分（同分取排序靠前的）。
func (e *Engine) Search(b *chess.Board, depth int) Result {
	start := time.Now()
	if depth < 1 {
		depth = 1
	}

	root := b.Clone()
	root.CalcTeamValidMoves(chess.White)
	root.CalcTeamValidMoves(chess.Black)
	moves := e.OrderedMoves(root, e.Perspective)
	if len(moves) == 0 {
		atomic.AddInt64(&e.evaluated, 1)
		return Result{
			Score:     e.evaluate(root),
			Depth:     depth,
			Evaluated: 1,
			TimeUsed:  time.Since(start),
		}
	}

	lanes := min(e.threads(), len(moves))
	log.Debug().Int("lanes", lanes).Int("moves", len(moves)).Int("depth", depth).Msg("root-split")

	var (
		mu      sync.Mutex
		results = make([]laneResult, 0, lanes)
		totals  = e.fork()
	)
	g := errgroup.Group{}
	for lane := 0; lane < lanes; lane++ {
		g.Go(func() error {
			local := e.fork()
			board := root.Clone()
			alpha, beta := -scoreInf, scoreInf
			res := laneResult{}
			for i := lane; i < len(moves); i += lanes {
				child := board.Clone()
				child.ExecuteMove(moves[i], chess.ExecFlags{})
				child.SetEnPassant(moves[i])
				score, _, _ := local.AlphaBeta(child, depth-1, -1, -beta, -alpha)
				score = -score
				if !res.found || score > res.score {
					res = laneResult{index: i, score: score, move: moves[i], found: true}
				}
				if res.score > alpha {
					alpha = res.score
				}
			}
			log.Debug().Int("lane", lane).Int("score", res.score).Str("move", res.move.String()).
				Int64("evaluated", local.evaluated).Msg("lane-done")

			totals.merge(local)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("lane-failed")
	}

	best := laneResult{}
	for _, r := range results {
		if !r.found {
			continue
		}
		if !best.found || r.score > best.score || (r.score == best.score && r.index < best.index) {
			best = r
		}
	}
	e.merge(totals)

	res := Result{
		Move:           best.move,
		Found:          best.found,
		Score:          best.score,
		Depth:          depth,
		Lanes:          lanes,
		Evaluated:      totals.Evaluated(),
		Pruned:         totals.Pruned(),
		Transpositions: totals.Transpositions(),
		TimeUsed:       time.Since(start),
	}
	log.Info().Str("side", e.Perspective.String()).Str("move", res.Move.String()).Int("score", res.Score).
		Int("depth", depth).Int64("evaluated", res.Evaluated).Dur("took", res.TimeUsed).Msg("best-move")
	return res
}
