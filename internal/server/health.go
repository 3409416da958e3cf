package server

import (
	"net/http"

	"github.com/vetorank/vetorank/internal/room"
)

// HealthResponse reports process liveness. The engine has no external
// dependencies to probe; the room count doubles as a crude load signal.
type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

func handleHealth(rooms *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Rooms: rooms.Len()})
	}
}
