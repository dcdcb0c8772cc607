package httpserver

import (
	"chesscore/internal/engine"
	"chesscore/internal/server/game"
)

// NewGameRequest ai_side: "white" / "black" / 空或 "none" 表示双人
type NewGameRequest struct {
	AISide string `json:"ai_side"`
}

// MoveRequest 代数坐标，例如 {"from":"e2","to":"e4"}
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AIRequest struct {
	Depth int `json:"depth"` // <=0 用服务端默认
}

type StateResponse struct {
	GameID     string   `json:"game_id"`
	Position   string   `json:"position"` // FEN
	ToMove     string   `json:"to_move"`
	AISide     string   `json:"ai_side"`
	Status     string   `json:"status"` // "ongoing" / "checkmate" / "stalemate"
	Winner     string   `json:"winner"`
	InCheck    bool     `json:"in_check"`
	LegalMoves []string `json:"legal_moves"`
	LastMove   string   `json:"last_move,omitempty"`
	Ply        int      `json:"ply"`
}

type AIResponse struct {
	State          StateResponse `json:"state"`
	BestMove       string        `json:"best_move"`
	Score          int           `json:"score"`
	Depth          int           `json:"depth"`
	Lanes          int           `json:"lanes"`
	Evaluated      int64         `json:"evaluated"`
	Pruned         int64         `json:"pruned"`
	Transpositions int64         `json:"transpositions"`
	TimeMs         int64         `json:"time_ms"`
}

type MateResponse struct {
	Found bool   `json:"found"`
	Move  string `json:"move,omitempty"`
	Depth int    `json:"depth"`
	Nodes int    `json:"nodes"`
}

type ListResponse struct {
	Games []string `json:"games"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func viewToDTO(v game.View) StateResponse {
	legal := v.Legal
	if legal == nil {
		legal = []string{}
	}
	return StateResponse{
		GameID:     v.ID,
		Position:   v.FEN,
		ToMove:     v.ToMove.String(),
		AISide:     v.AISide.String(),
		Status:     v.Status.String(),
		Winner:     v.Winner.String(),
		InCheck:    v.InCheck,
		LegalMoves: legal,
		LastMove:   v.LastMove,
		Ply:        v.Ply,
	}
}

func resultToDTO(v game.View, res engine.Result) AIResponse {
	return AIResponse{
		State:          viewToDTO(v),
		BestMove:       res.Move.String(),
		Score:          res.Score,
		Depth:          res.Depth,
		Lanes:          res.Lanes,
		Evaluated:      res.Evaluated,
		Pruned:         res.Pruned,
		Transpositions: res.Transpositions,
		TimeMs:         res.TimeUsed.Milliseconds(),
	}
}
