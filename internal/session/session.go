// Package session holds the per-connection state machine. One Controller
// exists per live participant connection; it translates inbound actions
// into room operations and room events into page transitions. A Controller
// is driven from a single goroutine (the connection's message loop) and is
// not safe for concurrent use.
package session

import (
	"fmt"

	"github.com/vetorank/vetorank/internal/room"
)

// Page identifies which screen the participant is on. The set is closed;
// dispatch switches on it rather than going through an interface.
type Page int

const (
	PageRoomChoice Page = iota
	PageVetoing
	PageRanking
	PageResults
	PageError
)

func (p Page) String() string {
	switch p {
	case PageVetoing:
		return "vetoing"
	case PageRanking:
		return "ranking"
	case PageResults:
		return "results"
	case PageError:
		return "error"
	default:
		return "room_choice"
	}
}

// Action kinds accepted from a participant.
const (
	ActionJoin        = "join"
	ActionCreate      = "create"
	ActionVeto        = "veto"
	ActionResetVetoes = "reset_vetoes"
	ActionAddOption   = "add_option"
	ActionFinish      = "finish_vetoing"
	ActionSubmit      = "submit_ranking"
	ActionViewResults = "view_results"
)

// Action is one inbound participant message.
type Action struct {
	Kind     string `json:"action"`
	Code     string `json:"code,omitempty"`
	Options  string `json:"options,omitempty"`
	OptionID string `json:"optionId,omitempty"`
	Text     string `json:"text,omitempty"`
	Ranking  string `json:"ranking,omitempty"`
}

// Controller is the per-connection page state machine. Once it joins a
// room it holds a shared handle to it and a subscription to its events;
// the room itself belongs to the registry.
type Controller struct {
	registry *room.Registry

	page      Page
	room      *room.Room
	events    chan room.Event
	joinError string
	errMsg    string
}

func New(reg *room.Registry) *Controller {
	return &Controller{registry: reg, page: PageRoomChoice}
}

// Page returns the controller's current page.
func (c *Controller) Page() Page { return c.page }

// Room returns the joined room, or nil before joining.
func (c *Controller) Room() *room.Room { return c.room }

// Events returns the room event subscription, or nil before joining.
// The connection's message loop selects on it alongside inbound actions.
func (c *Controller) Events() <-chan room.Event { return c.events }

// Apply runs one participant action against the current page. Actions
// that don't apply to the current page are benign races and are ignored;
// an unknown action kind is a protocol violation and moves the session
// to the terminal error page.
func (c *Controller) Apply(a Action) {
	switch a.Kind {
	case ActionJoin:
		c.join(a.Code)
	case ActionCreate:
		c.create(a.Options)
	case ActionVeto:
		if c.page == PageVetoing {
			c.room.Veto(a.OptionID)
		}
	case ActionResetVetoes:
		if c.page == PageVetoing {
			c.room.ResetVetoes()
		}
	case ActionAddOption:
		if c.page == PageVetoing {
			c.room.AddOption(a.Text)
		}
	case ActionFinish:
		if c.page == PageVetoing {
			c.room.FinishVetoing()
			c.page = PageRanking
		}
	case ActionSubmit:
		if c.page == PageRanking {
			c.room.ContributeBallot(a.Ranking)
			c.page = PageResults
		}
	case ActionViewResults:
		if c.page == PageRanking {
			c.page = PageResults
		}
	default:
		c.fail(fmt.Sprintf("unknown action %q", a.Kind))
	}
}

// HandleEvent applies a room notification and reports whether the view
// needs re-rendering. Subscribers re-read room state; the event itself
// only says that something changed.
func (c *Controller) HandleEvent(ev room.Event) bool {
	switch c.page {
	case PageVetoing:
		if ev.Kind == room.EventVetoingFinished {
			// Another participant finished the veto phase.
			c.page = PageRanking
			return true
		}
		return ev.Kind == room.EventOptionsChanged
	case PageResults:
		return ev.Kind == room.EventBallotSubmitted
	default:
		return false
	}
}

// Close releases the room subscription. Safe to call before joining and
// more than once.
func (c *Controller) Close() {
	if c.room != nil && c.events != nil {
		c.room.Unsubscribe(c.events)
		c.events = nil
	}
}

func (c *Controller) join(code string) {
	if c.page != PageRoomChoice {
		return
	}
	rm, err := c.registry.Get(code)
	if err != nil {
		c.joinError = fmt.Sprintf("Room %q not found", code)
		return
	}
	c.enter(rm)
}

func (c *Controller) create(optionsText string) {
	if c.page != PageRoomChoice {
		return
	}
	rm, err := c.registry.Create(optionsText)
	if err != nil {
		c.joinError = "Could not create a room, please try again later"
		return
	}
	c.enter(rm)
}

// enter binds the controller to a room: subscribe first, then read the
// stage, so a finish racing the join is observed either in the stage or
// as an event, never missed by both.
func (c *Controller) enter(rm *room.Room) {
	c.room = rm
	c.events = rm.Subscribe()
	c.joinError = ""
	if rm.Snapshot().Stage == room.StageRanking {
		c.page = PageRanking
	} else {
		c.page = PageVetoing
	}
}

func (c *Controller) fail(msg string) {
	c.Close()
	c.page = PageError
	c.errMsg = msg
	c.room = nil
}
