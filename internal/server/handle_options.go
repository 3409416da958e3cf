package server

import "net/http"

type AddOptionRequest struct {
	Text string `json:"text"`
}

type VetoRequest struct {
	OptionID string `json:"optionId"`
}

// Veto-phase mutations tolerate stale input: empty or duplicate texts,
// unknown option IDs, and rooms already past the veto phase all come
// back 200 with the room's current state. Clients race each other, and
// a stale click must not error.

func handleAddOption() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddOptionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rm := roomFrom(r)
		rm.AddOption(req.Text)
		writeJSON(w, http.StatusOK, roomResponse(rm.Snapshot()))
	}
}

func handleVeto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VetoRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rm := roomFrom(r)
		rm.Veto(req.OptionID)
		writeJSON(w, http.StatusOK, roomResponse(rm.Snapshot()))
	}
}

func handleResetVetoes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm := roomFrom(r)
		rm.ResetVetoes()
		writeJSON(w, http.StatusOK, roomResponse(rm.Snapshot()))
	}
}

func handleFinishVetoing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm := roomFrom(r)
		rm.FinishVetoing()
		writeJSON(w, http.StatusOK, roomResponse(rm.Snapshot()))
	}
}
