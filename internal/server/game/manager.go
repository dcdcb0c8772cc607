// Package game 内存中的对局管理：人类落子、悔棋、AI 应着
package game

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"

	"chesscore/internal/chess"
	"chesscore/internal/engine"
)

var (
	ErrNotFound      = errors.New("game not found")
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNothingToUndo = errors.New("nothing to undo")
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState

	keys  *chess.Keys
	opts  engine.Options
	depth int
}

// NewManager keys 为 nil 时用默认键表；depth 是 AI 的默认搜索深度
func NewManager(keys *chess.Keys, opts engine.Options, depth int) *Manager {
	if keys == nil {
		keys = chess.DefaultKeys()
	}
	if depth < 1 {
		depth = 1
	}
	return &Manager{
		games: make(map[string]*GameState),
		keys:  keys,
		opts:  opts,
		depth: depth,
	}
}

func (m *Manager) NewGame(ai chess.Side) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	g := newState(id, m.keys, ai)
	m.games[id] = g
	log.Info().Str("game", id).Str("ai", ai.String()).Msg("game-created")
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// List 按字典序返回所有对局 ID
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := maps.Keys(m.games)
	slices.Sort(ids)
	return ids
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	log.Info().Str("game", id).Msg("game-deleted")
	return nil
}

// Play 人类走一步；轮到 AI 时拒绝
func (m *Manager) Play(id string, from, to chess.Coord) (View, error) {
	g, err := m.Get(id)
	if err != nil {
		return View{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status == chess.Ongoing && g.AISide != chess.NoSide && g.ToMove == g.AISide {
		return View{}, ErrNotYourTurn
	}
	mv, err := g.playLocked(from, to)
	if err != nil {
		return View{}, err
	}
	log.Debug().Str("game", id).Str("move", mv.String()).Str("status", g.Status.String()).Msg("move-played")
	return g.viewLocked(), nil
}

// Undo 双人对局退一个 ply；对 AI 时退回到人类上一步之前，
// 这样悔棋后总是轮到人类
func (m *Manager) Undo(id string) (View, error) {
	g, err := m.Get(id)
	if err != nil {
		return View{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.AISide == chess.NoSide {
		err = g.undoLocked()
	} else {
		err = g.undoTurnLocked()
	}
	if err != nil {
		return View{}, err
	}
	log.Debug().Str("game", id).Int("ply", len(g.history)).Msg("undo")
	return g.viewLocked(), nil
}

// AIMove 为当前执棋方搜索一步并落子。depth<1 时用默认深度。
func (m *Manager) AIMove(id string, depth int) (View, engine.Result, error) {
	g, err := m.Get(id)
	if err != nil {
		return View{}, engine.Result{}, err
	}
	if depth < 1 {
		depth = m.depth
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != chess.Ongoing {
		return View{}, engine.Result{}, ErrGameOver
	}
	eng := engine.New(g.ToMove, m.opts)
	res := eng.Search(g.Board.Clone(), depth)
	if !res.Found {
		return View{}, res, ErrGameOver
	}
	if _, err := g.playLocked(res.Move.From.Coord, res.Move.To.Coord); err != nil {
		return View{}, res, err
	}
	log.Info().Str("game", id).Str("move", res.Move.String()).Int("score", res.Score).
		Dur("took", res.TimeUsed).Msg("ai-move")
	return g.viewLocked(), res, nil
}

func (m *Manager) Reset(id string) (View, error) {
	g, err := m.Get(id)
	if err != nil {
		return View{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked(m.keys, time.Now())
	return g.viewLocked(), nil
}

// FindMate 只分析不落子：当前执棋方能否连将杀
func (m *Manager) FindMate(id string, depth int) (engine.MateResult, error) {
	g, err := m.Get(id)
	if err != nil {
		return engine.MateResult{}, err
	}
	g.mu.Lock()
	b, side, status := g.Board.Clone(), g.ToMove, g.Status
	g.mu.Unlock()
	if status != chess.Ongoing {
		return engine.MateResult{}, ErrGameOver
	}
	return engine.New(side, m.opts).FindMate(b, depth), nil
}
