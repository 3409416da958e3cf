package room

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Option is one candidate a room is choosing among. Identity is the ID;
// two options may carry equal text but never equal IDs.
type Option struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Vetoed bool   `json:"vetoed"`
}

// OptionSet is an insertion-ordered collection of unique options.
// It is not safe for concurrent use; Room serializes access to it.
type OptionSet struct {
	opts []Option
}

// ParseOptions builds an OptionSet from newline-separated raw text.
// Lines are trimmed, empties dropped, and duplicate texts collapse to
// their first occurrence. Each surviving line gets a fresh ID.
func ParseOptions(raw string) *OptionSet {
	s := &OptionSet{}
	for _, line := range strings.Split(raw, "\n") {
		s.Add(line)
	}
	return s
}

// Add appends a new non-vetoed option. Empty text (after trimming) and
// texts already present are ignored; the return value reports whether
// the set changed.
func (s *OptionSet) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || s.containsText(text) {
		return false
	}
	s.opts = append(s.opts, Option{ID: uuid.NewString(), Text: text})
	return true
}

// Veto marks the option with the given ID as vetoed. Unknown IDs are
// ignored; clients race against concurrent mutations and may hold stale
// ones. Reports whether anything changed.
func (s *OptionSet) Veto(id string) bool {
	for i := range s.opts {
		if s.opts[i].ID == id && !s.opts[i].Vetoed {
			s.opts[i].Vetoed = true
			return true
		}
	}
	return false
}

// ResetVetoes clears the vetoed flag on every option and reports
// whether any option was affected.
func (s *OptionSet) ResetVetoes() bool {
	changed := false
	for i := range s.opts {
		if s.opts[i].Vetoed {
			s.opts[i].Vetoed = false
			changed = true
		}
	}
	return changed
}

// All returns a copy of every option in insertion order.
func (s *OptionSet) All() []Option {
	out := make([]Option, len(s.opts))
	copy(out, s.opts)
	return out
}

// Eligible returns the non-vetoed options in insertion order.
func (s *OptionSet) Eligible() []Option {
	return lo.Filter(s.opts, func(o Option, _ int) bool { return !o.Vetoed })
}

// Resolve looks an option up by ID.
func (s *OptionSet) Resolve(id string) (Option, bool) {
	return lo.Find(s.opts, func(o Option) bool { return o.ID == id })
}

func (s *OptionSet) containsText(text string) bool {
	return lo.SomeBy(s.opts, func(o Option) bool { return o.Text == text })
}
