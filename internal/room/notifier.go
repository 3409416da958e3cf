package room

import "sync"

// EventKind says what kind of change happened to a room. Events carry no
// state: subscribers re-read the room, so a dropped event only delays a
// re-render and never shows stale data as current.
type EventKind string

const (
	EventOptionsChanged  EventKind = "options_changed"
	EventVetoingFinished EventKind = "vetoing_finished"
	EventBallotSubmitted EventKind = "ballot_submitted"
)

// Event is the payload published to room subscribers.
type Event struct {
	Kind EventKind `json:"type"`
}

// notifier is an in-process fan-out for one room's events.
type notifier struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func (n *notifier) subscribe() chan Event {
	ch := make(chan Event, 16)
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[chan Event]struct{})
	}
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

func (n *notifier) unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.subs, ch)
	n.mu.Unlock()
}

func (n *notifier) publish(ev Event) {
	n.mu.Lock()
	for ch := range n.subs {
		select {
		case ch <- ev:
		default:
			// Drop if subscriber is slow.
		}
	}
	n.mu.Unlock()
}
