// Package room implements the coordination engine for one collaborative
// decision: the option set, the two-phase voting state machine, ballot
// collection, the weighted tally, and the notification fan-out that keeps
// every connected participant's view current.
package room

import "sync"

// Stage is the room's current voting phase. It only ever moves forward.
type Stage int

const (
	StageVetoing Stage = iota
	StageRanking
)

func (s Stage) String() string {
	if s == StageRanking {
		return "ranking"
	}
	return "vetoing"
}

// MarshalJSON renders the stage as its lowercase name.
func (s Stage) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	if string(data) == `"ranking"` {
		*s = StageRanking
	} else {
		*s = StageVetoing
	}
	return nil
}

// Room is one decision session, shared read/write by every participant
// that joined it. All state behind mu; mutations publish exactly one
// event per effective change, none for no-ops.
type Room struct {
	code string

	mu      sync.RWMutex
	options *OptionSet
	stage   Stage
	ballots []Ballot

	notif notifier
}

func newRoom(code, rawOptions string) *Room {
	return &Room{
		code:    code,
		options: ParseOptions(rawOptions),
	}
}

// Code returns the room's immutable join code.
func (r *Room) Code() string { return r.code }

// AddOption appends a candidate during the veto phase. Empty or duplicate
// text, or a room already in the ranking phase, make it a silent no-op.
func (r *Room) AddOption(text string) {
	r.mu.Lock()
	changed := r.stage == StageVetoing && r.options.Add(text)
	r.mu.Unlock()

	if changed {
		r.notif.publish(Event{Kind: EventOptionsChanged})
	}
}

// Veto marks an option ineligible during the veto phase. Unknown IDs,
// already-vetoed options, and rooms past the veto phase are no-ops.
func (r *Room) Veto(id string) {
	r.mu.Lock()
	changed := r.stage == StageVetoing && r.options.Veto(id)
	r.mu.Unlock()

	if changed {
		r.notif.publish(Event{Kind: EventOptionsChanged})
	}
}

// ResetVetoes clears every veto during the veto phase.
func (r *Room) ResetVetoes() {
	r.mu.Lock()
	changed := r.stage == StageVetoing && r.options.ResetVetoes()
	r.mu.Unlock()

	if changed {
		r.notif.publish(Event{Kind: EventOptionsChanged})
	}
}

// FinishVetoing moves the room into the ranking phase. Idempotent, but
// only the call that actually transitions publishes an event.
func (r *Room) FinishVetoing() {
	r.mu.Lock()
	changed := r.stage == StageVetoing
	r.stage = StageRanking
	r.mu.Unlock()

	if changed {
		r.notif.publish(Event{Kind: EventVetoingFinished})
	}
}

// ContributeBallot appends one ranking submission during the ranking
// phase. See ParseBallot for how raw text and the empty fallback are
// interpreted. A no-op while vetoing is still underway.
func (r *Room) ContributeBallot(raw string) {
	r.mu.Lock()
	changed := r.stage == StageRanking
	if changed {
		r.ballots = append(r.ballots, ParseBallot(raw, r.options))
	}
	r.mu.Unlock()

	if changed {
		r.notif.publish(Event{Kind: EventBallotSubmitted})
	}
}

// Tally computes the current weighted outcome from all ballots so far.
// Recomputed on every call; results reflect the live ballot store.
func (r *Room) Tally() TallyResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return TallyBallots(r.ballots, r.options)
}

// Snapshot returns a consistent copy of the room for rendering. It goes
// stale as soon as the room mutates again; re-snapshot after every event.
func (r *Room) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ballots := make([]Ballot, len(r.ballots))
	for i, b := range r.ballots {
		ballots[i] = append(Ballot(nil), b...)
	}
	return Snapshot{
		Code:    r.code,
		Stage:   r.stage,
		Options: r.options.All(),
		Ballots: ballots,
	}
}

// Subscribe registers for change events. The channel is buffered and the
// room never blocks on it; a subscriber that falls behind misses events
// and must re-read state on the next one it does see.
func (r *Room) Subscribe() chan Event { return r.notif.subscribe() }

// Unsubscribe removes a channel returned by Subscribe.
func (r *Room) Unsubscribe(ch chan Event) { r.notif.unsubscribe(ch) }

// Snapshot is a read-only copy of a room's state at one instant.
type Snapshot struct {
	Code    string   `json:"code"`
	Stage   Stage    `json:"stage"`
	Options []Option `json:"options"`
	Ballots []Ballot `json:"ballots"`
}

// BallotTexts renders every ballot as display text in ranked order.
// IDs that no longer resolve render as InvalidVoteText.
func (s Snapshot) BallotTexts() [][]string {
	texts := make(map[string]string, len(s.Options))
	for _, o := range s.Options {
		texts[o.ID] = o.Text
	}

	out := make([][]string, len(s.Ballots))
	for i, b := range s.Ballots {
		vote := make([]string, len(b))
		for j, id := range b {
			if t, ok := texts[id]; ok {
				vote[j] = t
			} else {
				vote[j] = InvalidVoteText
			}
		}
		out[i] = vote
	}
	return out
}

// Eligible returns the snapshot's non-vetoed options in insertion order.
func (s Snapshot) Eligible() []Option {
	var out []Option
	for _, o := range s.Options {
		if !o.Vetoed {
			out = append(out, o)
		}
	}
	return out
}
