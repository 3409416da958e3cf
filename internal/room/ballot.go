package room

import (
	"strings"

	"github.com/samber/lo"
)

// Ballot is one participant's preference order, best first, as option IDs.
// Ballots are anonymous and append-only.
type Ballot []string

// ParseBallot turns a raw ranking submission into a Ballot. Non-empty raw
// text is read as newline-separated option IDs; IDs that no longer resolve
// in the set are dropped rather than failing the whole ballot. Empty raw
// text means the participant didn't reorder anything, so the ballot
// defaults to the eligible options in their current insertion order.
func ParseBallot(raw string, set *OptionSet) Ballot {
	if strings.TrimSpace(raw) == "" {
		return lo.Map(set.Eligible(), func(o Option, _ int) string { return o.ID })
	}

	var b Ballot
	for _, line := range strings.Split(raw, "\n") {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		if _, ok := set.Resolve(id); ok {
			b = append(b, id)
		}
	}
	return b
}
