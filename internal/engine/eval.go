package engine

import "chesscore/internal/chess"

// 静态评估总是站在执棋方角度，调用方再乘上 sign
func (e *Engine) evaluate(b *chess.Board) int {
	if e.opts.Eval == EvalPositional {
		return b.EvaluatePositional(e.Perspective)
	}
	return b.Evaluate(e.Perspective)
}
