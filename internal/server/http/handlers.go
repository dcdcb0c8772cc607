package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"chesscore/internal/chess"
	"chesscore/internal/server/game"
)

// Handler 对局接口；轮到 AI 的一方时自动应着
type Handler struct {
	games    *game.Manager
	hub      *hub
	upgrader websocket.Upgrader
}

func NewHandler(games *game.Manager) *Handler {
	return &Handler{
		games: games,
		hub:   newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g := h.games.NewGame(chess.ParseSide(req.AISide))
	v, err := h.replyIfAI(g.ID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewToDTO(v))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{Games: h.games.List()})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.Get(mux.Vars(r)["id"])
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(g.View()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.games.Delete(id); err != nil {
		writeGameError(w, err)
		return
	}
	h.hub.closeGame(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	from, err := chess.ParseCoord(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := chess.ParseCoord(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.games.Play(id, from, to)
	if err != nil {
		writeGameError(w, err)
		return
	}
	h.hub.broadcast(id, viewToDTO(v))

	v, err = h.replyIfAI(id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(v))
}

// handleUndo 悔棋后若轮到 AI 就让它应着
func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	v, err := h.games.Undo(id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	h.hub.broadcast(id, viewToDTO(v))
	if v, err = h.replyIfAI(id); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(v))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.games.Reset(id); err != nil {
		writeGameError(w, err)
		return
	}
	v, err := h.replyIfAI(id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	h.hub.broadcast(id, viewToDTO(v))
	writeJSON(w, http.StatusOK, viewToDTO(v))
}

// handleAIMove 让引擎替当前执棋方走一步
func (h *Handler) handleAIMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req AIRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	v, res, err := h.games.AIMove(id, req.Depth)
	if err != nil {
		writeGameError(w, err)
		return
	}
	h.hub.broadcast(id, viewToDTO(v))
	writeJSON(w, http.StatusOK, resultToDTO(v, res))
}

// handleMate 查询当前执棋方有没有连将杀，?depth=n 限定 ply 数
func (h *Handler) handleMate(w http.ResponseWriter, r *http.Request) {
	depth := 0
	if q := r.URL.Query().Get("depth"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad depth")
			return
		}
		depth = n
	}
	res, err := h.games.FindMate(mux.Vars(r)["id"], depth)
	if err != nil {
		writeGameError(w, err)
		return
	}
	out := MateResponse{Found: res.Found, Depth: res.Depth, Nodes: res.Nodes}
	if res.Found {
		out.Move = res.Move.String()
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSubscribe 升级为 websocket，先推一次当前局面，之后每次变化都推送
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	g, err := h.games.Get(id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", id).Msg("ws-upgrade-failed")
		return
	}
	log.Debug().Str("game", id).Str("remote", conn.RemoteAddr().String()).Msg("ws-connected")
	h.hub.add(id, conn)
	if err := h.hub.send(conn, viewToDTO(g.View())); err != nil {
		h.hub.remove(id, conn)
		return
	}
	go func() {
		defer h.hub.remove(id, conn)
		for {
			// 只读到断开为止，客户端消息忽略
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// replyIfAI 轮到 AI 就让它走，返回最新局面
func (h *Handler) replyIfAI(id string) (game.View, error) {
	g, err := h.games.Get(id)
	if err != nil {
		return game.View{}, err
	}
	if !g.AITurn() {
		return g.View(), nil
	}
	v, _, err := h.games.AIMove(id, 0)
	if err != nil {
		return game.View{}, err
	}
	h.hub.broadcast(id, viewToDTO(v))
	return v, nil
}

// decodeBody 空 body 视为零值请求
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrIllegalMove):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotYourTurn), errors.Is(err, game.ErrNothingToUndo):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("game-op-failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write-json-failed")
	}
}
