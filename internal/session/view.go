package session

import "github.com/vetorank/vetorank/internal/room"

// View is what the transport sends to the participant after every applied
// action or observed event. It is built from a fresh room snapshot each
// time, never from event payloads.
type View struct {
	Page      string         `json:"page"`
	JoinError string         `json:"joinError,omitempty"`
	Error     string         `json:"error,omitempty"`
	Room      *room.Snapshot `json:"room,omitempty"`
	Results   *ResultsView   `json:"results,omitempty"`
}

// ResultsView carries the scored outcome plus the raw ballots, rendered
// as display text.
type ResultsView struct {
	Entries   []ResultEntry `json:"entries"`
	TopScore  int           `json:"topScore"`
	AllVotes  [][]string    `json:"allVotes"`
}

// ResultEntry is one scored option with its preformatted summary line.
type ResultEntry struct {
	Text    string `json:"text"`
	Score   int    `json:"score"`
	Ranks   []int  `json:"ranks"`
	Summary string `json:"summary"`
	Winner  bool   `json:"winner"`
}

// Render produces the current view. Room-bound pages re-snapshot the room
// so the view is consistent even when other participants mutate it
// between events.
func (c *Controller) Render() View {
	v := View{Page: c.page.String(), JoinError: c.joinError, Error: c.errMsg}
	if c.room == nil {
		return v
	}

	snap := c.room.Snapshot()
	v.Room = &snap

	if c.page == PageResults {
		v.Results = buildResults(c.room.Tally(), snap)
	}
	return v
}

func buildResults(tally room.TallyResult, snap room.Snapshot) *ResultsView {
	rv := &ResultsView{
		TopScore: tally.TopScore,
		Entries:  []ResultEntry{},
		AllVotes: snap.BallotTexts(),
	}
	for _, e := range tally.Entries {
		rv.Entries = append(rv.Entries, ResultEntry{
			Text:    e.Text,
			Score:   e.Score,
			Ranks:   e.Ranks,
			Summary: e.Summary(),
			Winner:  e.Score == tally.TopScore,
		})
	}
	return rv
}
