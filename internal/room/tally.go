package room

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidVoteText is shown for ballot entries whose option ID no longer
// resolves. The engine never deletes options, but ballots are kept as
// submitted and must render something stable for an unresolvable ID.
const InvalidVoteText = "INVALID VOTE"

// TallyEntry aggregates every vote one option received.
type TallyEntry struct {
	OptionID string `json:"optionId"`
	Text     string `json:"text"`
	Score    int    `json:"score"`
	Ranks    []int  `json:"ranks"`
}

// TallyResult is the full scored outcome. Entries are ordered by score
// descending, ties broken by display text ascending, so the order is
// reproducible across runs. Every entry whose Score equals TopScore is a
// co-winner.
type TallyResult struct {
	Entries  []TallyEntry `json:"entries"`
	TopScore int          `json:"topScore"`
}

// TallyBallots computes the weighted outcome of all ballots. A ballot of
// length n gives its first choice L points, its second L-1, and so on,
// where L is the longest ballot seen. Pure function: no I/O, no shared
// state, deterministic for identical input.
func TallyBallots(ballots []Ballot, set *OptionSet) TallyResult {
	longest := 0
	for _, b := range ballots {
		if len(b) > longest {
			longest = len(b)
		}
	}

	scores := make(map[string]int)
	ranks := make(map[string][]int)
	for _, b := range ballots {
		for i, id := range b {
			scores[id] += longest - i
			ranks[id] = append(ranks[id], i+1)
		}
	}

	entries := make([]TallyEntry, 0, len(scores))
	for id, score := range scores {
		text := InvalidVoteText
		if opt, ok := set.Resolve(id); ok {
			text = opt.Text
		}
		rs := ranks[id]
		sort.Ints(rs)
		entries = append(entries, TallyEntry{OptionID: id, Text: text, Score: score, Ranks: rs})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Text != entries[j].Text {
			return entries[i].Text < entries[j].Text
		}
		// Equal text is possible across distinct options; pin the order.
		return entries[i].OptionID < entries[j].OptionID
	})

	res := TallyResult{Entries: entries}
	if len(entries) > 0 {
		res.TopScore = entries[0].Score
	}
	return res
}

// Summary renders an entry as "text (1st, 2nd) - score" for display.
func (e TallyEntry) Summary() string {
	return fmt.Sprintf("%s (%s) - %d", e.Text, e.RanksText(), e.Score)
}

// RanksText renders the observed ranks as ordinals, e.g. "1st, 3rd".
func (e TallyEntry) RanksText() string {
	parts := make([]string, len(e.Ranks))
	for i, r := range e.Ranks {
		parts[i] = ordinal(r)
	}
	return strings.Join(parts, ", ")
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
