package room

import (
	"reflect"
	"testing"
)

func TestTallyBallots(t *testing.T) {
	set := ParseOptions("A\nB")
	a, b := set.All()[0].ID, set.All()[1].ID

	// L=2: A gets 2+1+2=5, B gets 1+2=3.
	ballots := []Ballot{{a, b}, {b, a}, {a}}
	res := TallyBallots(ballots, set)

	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Entries))
	}
	if res.Entries[0].Text != "A" || res.Entries[0].Score != 5 {
		t.Errorf("expected A with score 5 first, got %q with %d", res.Entries[0].Text, res.Entries[0].Score)
	}
	if res.Entries[1].Text != "B" || res.Entries[1].Score != 3 {
		t.Errorf("expected B with score 3 second, got %q with %d", res.Entries[1].Text, res.Entries[1].Score)
	}
	if res.TopScore != 5 {
		t.Errorf("expected top score 5, got %d", res.TopScore)
	}
	if !reflect.DeepEqual(res.Entries[0].Ranks, []int{1, 1, 2}) {
		t.Errorf("expected A ranks [1 1 2], got %v", res.Entries[0].Ranks)
	}
	if !reflect.DeepEqual(res.Entries[1].Ranks, []int{1, 2}) {
		t.Errorf("expected B ranks [1 2], got %v", res.Entries[1].Ranks)
	}
}

func TestTallyEmpty(t *testing.T) {
	res := TallyBallots(nil, ParseOptions("A"))
	if len(res.Entries) != 0 || res.TopScore != 0 {
		t.Errorf("expected empty tally, got %+v", res)
	}
}

func TestTallyTieBreakDeterministic(t *testing.T) {
	set := ParseOptions("zebra\napple")
	z, a := set.All()[0].ID, set.All()[1].ID

	// Two single-entry ballots: both score 1, tie broken by text.
	for _, ballots := range [][]Ballot{{{z}, {a}}, {{a}, {z}}} {
		res := TallyBallots(ballots, set)
		if res.Entries[0].Text != "apple" || res.Entries[1].Text != "zebra" {
			t.Errorf("expected [apple zebra] regardless of submission order, got [%s %s]",
				res.Entries[0].Text, res.Entries[1].Text)
		}
		if res.Entries[0].Score != res.TopScore || res.Entries[1].Score != res.TopScore {
			t.Error("expected both tied entries to share the top score")
		}
	}
}

func TestTallyUnresolvableID(t *testing.T) {
	set := ParseOptions("A")
	res := TallyBallots([]Ballot{{"gone"}}, set)

	if len(res.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(res.Entries))
	}
	if res.Entries[0].Text != InvalidVoteText {
		t.Errorf("expected sentinel %q, got %q", InvalidVoteText, res.Entries[0].Text)
	}
}

func TestTallySummary(t *testing.T) {
	e := TallyEntry{Text: "pizza", Score: 7, Ranks: []int{1, 2, 3}}
	if got := e.Summary(); got != "pizza (1st, 2nd, 3rd) - 7" {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 101: "101st", 111: "111th",
	}
	for n, want := range cases {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
