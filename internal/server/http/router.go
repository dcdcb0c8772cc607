package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// NewRouter 挂上 /api/games 路由，外面包日志、跨域和 panic 恢复
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	api := r.PathPrefix("/api/games").Subrouter()
	api.HandleFunc("", h.handleNewGame).Methods(http.MethodPost)
	api.HandleFunc("", h.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.handleState).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/{id}/moves", h.handlePlay).Methods(http.MethodPost)
	api.HandleFunc("/{id}/undo", h.handleUndo).Methods(http.MethodPost)
	api.HandleFunc("/{id}/ai", h.handleAIMove).Methods(http.MethodPost)
	api.HandleFunc("/{id}/reset", h.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/{id}/mate", h.handleMate).Methods(http.MethodGet)
	api.HandleFunc("/{id}/ws", h.handleSubscribe).Methods(http.MethodGet)

	var out http.Handler = r
	out = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(out)
	out = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(out)
	return handlers.LoggingHandler(accessLog{}, out)
}

// accessLog 把 Apache 格式的访问日志转给 zerolog
type accessLog struct{}

func (accessLog) Write(p []byte) (int, error) {
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	log.Info().Str("access", string(p)).Msg("http")
	return n, nil
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Error().Str("panic", fmt.Sprint(v...)).Msg("http-recovered")
}
