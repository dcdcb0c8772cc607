package httpserver

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// hub 按对局分组的 websocket 订阅
type hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{conns: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *hub) add(id string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[id]
	if !ok {
		set = make(map[*websocket.Conn]struct{})
		h.conns[id] = set
	}
	set[c] = struct{}{}
}

func (h *hub) remove(id string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[id]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, id)
		}
	}
	c.Close()
}

// send 写一个连接；写操作都在锁内，保证单连接串行写
func (h *hub) send(c *websocket.Conn, v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.WriteJSON(v)
}

// broadcast 推给订阅 id 的所有连接，写失败的连接直接丢掉
func (h *hub) broadcast(id string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns[id] {
		if err := c.WriteJSON(v); err != nil {
			log.Debug().Err(err).Str("game", id).Msg("ws-write-failed")
			delete(h.conns[id], c)
			c.Close()
		}
	}
}

// closeGame 对局被删除时断开所有订阅
func (h *hub) closeGame(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns[id] {
		c.Close()
	}
	delete(h.conns, id)
}
