package server

import "net/http"

type SubmitBallotRequest struct {
	// Ranking is newline-separated option IDs, best first. Empty means
	// "rank as displayed": the non-vetoed options in insertion order.
	Ranking string `json:"ranking"`
}

type ResultsResponse struct {
	Code     string        `json:"code"`
	Entries  []ResultEntry `json:"entries"`
	TopScore int           `json:"topScore"`
	AllVotes [][]string    `json:"allVotes"`
}

type ResultEntry struct {
	Text    string `json:"text"`
	Score   int    `json:"score"`
	Ranks   []int  `json:"ranks"`
	Summary string `json:"summary"`
	Winner  bool   `json:"winner"`
}

func handleSubmitBallot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitBallotRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rm := roomFrom(r)
		rm.ContributeBallot(req.Ranking)
		writeJSON(w, http.StatusOK, roomResponse(rm.Snapshot()))
	}
}

func handleResults() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm := roomFrom(r)
		snap := rm.Snapshot()
		tally := rm.Tally()

		resp := ResultsResponse{
			Code:     snap.Code,
			Entries:  []ResultEntry{},
			TopScore: tally.TopScore,
			AllVotes: snap.BallotTexts(),
		}
		for _, e := range tally.Entries {
			resp.Entries = append(resp.Entries, ResultEntry{
				Text:    e.Text,
				Score:   e.Score,
				Ranks:   e.Ranks,
				Summary: e.Summary(),
				Winner:  e.Score == tally.TopScore,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
