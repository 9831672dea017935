package rest

import (
	"encoding/json"
	"net/http"
)

type rootResponse struct {
	Message     string `json:"message"`
	ActiveUsers int    `json:"active_users"`
}

type Handlers struct {
	stats statsProvider
}

func NewHandlers(stats statsProvider) *Handlers {
	return &Handlers{
		stats: stats,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) Root(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, rootResponse{
		Message:     "Game Server is running",
		ActiveUsers: that.stats.Stats().TotalUsers,
	})
}

func (that *Handlers) Stats(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, that.stats.Stats())
}

func (that *Handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
