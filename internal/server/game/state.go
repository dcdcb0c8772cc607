package game

import (
	"slices"
	"sync"
	"time"

	"chesscore/internal/chess"
)

type GameState struct {
	mu sync.Mutex

	ID        string
	Board     *chess.Board
	ToMove    chess.Side
	AISide    chess.Side // NoSide 表示双人对局
	Status    chess.Status
	Winner    chess.Side
	CreatedAt time.Time
	UpdatedAt time.Time

	history []ply
}

// ply 记录落子前的过路兵标记和执棋方，悔棋时恢复
type ply struct {
	side   chess.Side
	epAt   chess.Coord
	epOK   bool
	played chess.Move
}

// View 对外的只读快照
type View struct {
	ID       string
	FEN      string
	ToMove   chess.Side
	AISide   chess.Side
	Status   chess.Status
	Winner   chess.Side
	InCheck  bool
	Legal    []string
	LastMove string
	Ply      int
	Updated  time.Time
}

func newState(id string, keys *chess.Keys, ai chess.Side) *GameState {
	now := time.Now()
	g := &GameState{
		ID:        id,
		AISide:    ai,
		CreatedAt: now,
	}
	g.resetLocked(keys, now)
	return g
}

func (g *GameState) resetLocked(keys *chess.Keys, now time.Time) {
	g.Board = chess.NewBoard(keys)
	g.ToMove = chess.White
	g.history = g.history[:0]
	g.UpdatedAt = now
	g.refreshLocked()
}

// refreshLocked 重新计算双方着法和对局状态
func (g *GameState) refreshLocked() {
	g.Board.CalcTeamValidMoves(chess.White)
	g.Board.CalcTeamValidMoves(chess.Black)
	g.Status = g.Board.Status(g.ToMove)
	g.Winner = chess.NoSide
	if g.Status == chess.Checkmate {
		g.Winner = g.ToMove.Other()
	}
}

// playLocked 校验并执行一步，然后换边
func (g *GameState) playLocked(from, to chess.Coord) (chess.Move, error) {
	if g.Status != chess.Ongoing {
		return chess.Move{}, ErrGameOver
	}
	if p := g.Board.PieceAt(from); p.Empty() || p.Side != g.ToMove {
		return chess.Move{}, ErrIllegalMove
	}
	m, ok := g.Board.Lookup(from, to)
	if !ok || !g.Board.IsValid(m) {
		return chess.Move{}, ErrIllegalMove
	}

	epAt, epOK := g.Board.EnPassantTarget()
	if !g.Board.ExecuteMove(m, chess.ExecFlags{}) {
		return chess.Move{}, ErrIllegalMove
	}
	g.Board.SetEnPassant(m)
	g.history = append(g.history, ply{side: g.ToMove, epAt: epAt, epOK: epOK, played: m})
	g.ToMove = g.ToMove.Other()
	g.UpdatedAt = time.Now()
	g.refreshLocked()
	return m, nil
}

func (g *GameState) undoLocked() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	if !g.Board.UndoLastMove() {
		return ErrNothingToUndo
	}
	g.history = g.history[:len(g.history)-1]
	g.Board.MarkEnPassant(last.epAt, last.epOK)
	g.ToMove = last.side
	g.UpdatedAt = time.Now()
	g.refreshLocked()
	return nil
}

// undoTurnLocked 连同 AI 的应着一起退，回到人类上一步之前；
// 历史里只有 AI 的着法时不退
func (g *GameState) undoTurnLocked() error {
	if !slices.ContainsFunc(g.history, func(p ply) bool { return p.side != g.AISide }) {
		return ErrNothingToUndo
	}
	for {
		side := g.history[len(g.history)-1].side
		if err := g.undoLocked(); err != nil {
			return err
		}
		if side != g.AISide {
			return nil
		}
	}
}

func (g *GameState) viewLocked() View {
	v := View{
		ID:      g.ID,
		FEN:     g.Board.FEN(g.ToMove),
		ToMove:  g.ToMove,
		AISide:  g.AISide,
		Status:  g.Status,
		Winner:  g.Winner,
		InCheck: g.Board.InCheck(g.ToMove),
		Ply:     len(g.history),
		Updated: g.UpdatedAt,
	}
	for _, m := range g.Board.TeamMoves(g.ToMove) {
		v.Legal = append(v.Legal, m.String())
	}
	if n := len(g.history); n > 0 {
		v.LastMove = g.history[n-1].played.String()
	}
	return v
}

// View 加锁取快照
func (g *GameState) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

// AITurn 当前是否轮到 AI 且对局未结束
func (g *GameState) AITurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Status == chess.Ongoing && g.AISide != chess.NoSide && g.AISide == g.ToMove
}
