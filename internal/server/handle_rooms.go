package server

import (
	"errors"
	"net/http"

	"github.com/vetorank/vetorank/internal/room"
)

type CreateRoomRequest struct {
	// Options is the candidate list, one option per line.
	Options string `json:"options"`
}

type RoomResponse struct {
	Code    string        `json:"code"`
	Stage   string        `json:"stage"`
	Options []room.Option `json:"options"`
	Ballots int           `json:"ballots"`
}

func roomResponse(snap room.Snapshot) RoomResponse {
	return RoomResponse{
		Code:    snap.Code,
		Stage:   snap.Stage.String(),
		Options: snap.Options,
		Ballots: len(snap.Ballots),
	}
}

func handleCreateRoom(rooms *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoomRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rm, err := rooms.Create(req.Options)
		if errors.Is(err, room.ErrCodeSpaceExhausted) {
			writeError(w, http.StatusServiceUnavailable, "no room codes available, try again later")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, roomResponse(rm.Snapshot()))
	}
}

func handleGetRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, roomResponse(roomFrom(r).Snapshot()))
	}
}
