package engine

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"chesscore/internal/chess"
)

var ErrUnknownEval = errors.New("unknown evaluator")

type EvalMode int8

const (
	// EvalMaterial 只数己方子力
	EvalMaterial EvalMode = iota
	// EvalPositional 子力差加位置分
	EvalPositional
)

func (m EvalMode) String() string {
	if m == EvalPositional {
		return "positional"
	}
	return "material"
}

func ParseEvalMode(s string) (EvalMode, error) {
	switch strings.ToLower(s) {
	case "", "material":
		return EvalMaterial, nil
	case "positional":
		return EvalPositional, nil
	}
	return EvalMaterial, fmt.Errorf("%w: %q", ErrUnknownEval, s)
}

type Options struct {
	Threads int // 0 表示按 CPU 数
	Eval    EvalMode
	UseTT   bool
}

// Engine 只保存搜索相关的状态：执棋方和计数器
type Engine struct {
	Perspective chess.Side
	Opponent    chess.Side

	opts Options

	evaluated      int64
	pruned         int64
	transpositions int64

	// 每条搜索线程自己的 TT，不共享
	tt map[uint64]ttEntry
}

func New(side chess.Side, opts Options) *Engine {
	return &Engine{
		Perspective: side,
		Opponent:    side.Other(),
		opts:        opts,
		tt:          make(map[uint64]ttEntry, 1<<12),
	}
}

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) threads() int {
	if e.opts.Threads > 0 {
		return e.opts.Threads
	}
	return runtime.NumCPU()
}

// fork 给一条搜索线程用的私有副本
func (e *Engine) fork() *Engine {
	return &Engine{
		Perspective: e.Perspective,
		Opponent:    e.Opponent,
		opts:        e.opts,
		tt:          make(map[uint64]ttEntry, 1<<12),
	}
}

func (e *Engine) merge(local *Engine) {
	atomic.AddInt64(&e.evaluated, local.evaluated)
	atomic.AddInt64(&e.pruned, local.pruned)
	atomic.AddInt64(&e.transpositions, local.transpositions)
}

func (e *Engine) Evaluated() int64      { return atomic.LoadInt64(&e.evaluated) }
func (e *Engine) Pruned() int64         { return atomic.LoadInt64(&e.pruned) }
func (e *Engine) Transpositions() int64 { return atomic.LoadInt64(&e.transpositions) }

func (e *Engine) ResetStats() {
	atomic.StoreInt64(&e.evaluated, 0)
	atomic.StoreInt64(&e.pruned, 0)
	atomic.StoreInt64(&e.transpositions, 0)
}

// sign 为 +1 时轮到执棋方，-1 时轮到对手
func (e *Engine) sideFor(sign int) chess.Side {
	if sign > 0 {
		return e.Perspective
	}
	return e.Opponent
}
