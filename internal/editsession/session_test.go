package editsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/monashcoding/tourneysite/internal/tournament"
)

func seededSession(t *testing.T) *Session {
	t.Helper()
	s := New(nil) // default tournament
	s.Dismiss(0)  // drop the "no data found" warning

	s.AddDay()
	s.AddDay()
	s.AddDay()
	if err := s.AddRound(0, ""); err != nil {
		t.Fatalf("add round: %v", err)
	}
	if err := s.AddSlot(0, 0); err != nil {
		t.Fatalf("add slot: %v", err)
	}
	if err := s.AddMatch(0, 0, 0); err != nil {
		t.Fatalf("add match: %v", err)
	}
	return s
}

func TestNewFromEmptyDocument(t *testing.T) {
	s := New(nil)

	if s.Tournament().Name != "New Tournament" {
		t.Errorf("expected the default tournament, got %q", s.Tournament().Name)
	}
	if len(s.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %v", s.Warnings())
	}
}

func TestAddRoundDefaults(t *testing.T) {
	s := New(nil)
	s.AddDay()

	if err := s.AddRound(0, ""); err != nil {
		t.Fatalf("add round: %v", err)
	}
	if err := s.AddRound(0, "Grand Final"); err != nil {
		t.Fatalf("add round: %v", err)
	}
	if err := s.AddRound(0, ""); err != nil {
		t.Fatalf("add round: %v", err)
	}

	rounds := s.Tournament().Days[0].Rounds
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	if rounds[0].Name != "Round 1" {
		t.Errorf("round 1 name = %q, want 'Round 1'", rounds[0].Name)
	}
	if rounds[1].Name != "Grand Final" {
		t.Errorf("round 2 name = %q, want 'Grand Final'", rounds[1].Name)
	}
	if rounds[2].Name != "Round 3" {
		t.Errorf("round 3 name = %q, want 'Round 3'", rounds[2].Name)
	}
	for i, r := range rounds {
		if r.Number.Int() != i+1 {
			t.Errorf("round %d number = %d", i, r.Number.Int())
		}
		if r.ID == "" {
			t.Errorf("round %d has no id", i)
		}
	}
}

func TestAddMatchDefaults(t *testing.T) {
	s := seededSession(t)

	m := s.Tournament().Days[0].Rounds[0].Slots[0].Matches[0]
	if m.Status != tournament.MatchScheduled {
		t.Errorf("status = %q, want scheduled", m.Status)
	}
	if m.Format != tournament.FormatBO1 {
		t.Errorf("format = %q, want BO1", m.Format)
	}
	if m.Team1.Name != "TBD" || m.Team2.Name != "TBD" {
		t.Errorf("expected placeholder teams, got %q vs %q", m.Team1.Name, m.Team2.Name)
	}
	if len(m.Maps) != 0 {
		t.Errorf("expected no maps, got %d", len(m.Maps))
	}
	if m.ScheduledTime.IsZero() {
		t.Error("expected a scheduled time")
	}
}

func TestRemoveDayRenumbers(t *testing.T) {
	s := seededSession(t)

	if err := s.RemoveDay(1); err != nil {
		t.Fatalf("remove day: %v", err)
	}

	days := s.Tournament().Days
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	for i, d := range days {
		if d.DayNumber.Int() != i+1 {
			t.Errorf("day %d number = %d, want %d", i, d.DayNumber.Int(), i+1)
		}
	}
}

func TestRemoveRoundRenumbers(t *testing.T) {
	s := New(nil)
	s.AddDay()
	for i := 0; i < 3; i++ {
		if err := s.AddRound(0, ""); err != nil {
			t.Fatalf("add round: %v", err)
		}
	}

	if err := s.RemoveRound(0, 0); err != nil {
		t.Fatalf("remove round: %v", err)
	}

	rounds := s.Tournament().Days[0].Rounds
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	for i, r := range rounds {
		if r.Number.Int() != i+1 {
			t.Errorf("round %d number = %d, want %d", i, r.Number.Int(), i+1)
		}
	}
	// Names keep their original defaults; only numbers are rewritten.
	if rounds[0].Name != "Round 2" {
		t.Errorf("round name = %q, want 'Round 2'", rounds[0].Name)
	}
}

func TestOutOfRangeLeavesWorkingCopyUnchanged(t *testing.T) {
	s := seededSession(t)
	before := s.Tournament()

	if err := s.RemoveDay(7); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := s.UpdateMatch(0, 0, 0, 5, tournament.Match{}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := s.AddSlot(0, 9); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	if s.Tournament() != before {
		t.Error("a failed mutation must not replace the working copy")
	}
}

func TestMutationsDoNotShareState(t *testing.T) {
	s := seededSession(t)
	before := s.Tournament()
	beforeDays := len(before.Days)

	s.AddDay()

	if len(before.Days) != beforeDays {
		t.Error("mutations must not reach previously returned copies")
	}
	if len(s.Tournament().Days) != beforeDays+1 {
		t.Errorf("expected %d days, got %d", beforeDays+1, len(s.Tournament().Days))
	}
}

func TestRemoveTeamKeepsMatchSnapshot(t *testing.T) {
	s := seededSession(t)
	team := s.AddTeam("MAC", "Macquarie")

	m := s.Tournament().Days[0].Rounds[0].Slots[0].Matches[0]
	m.Team1 = team
	if err := s.UpdateMatch(0, 0, 0, 0, m); err != nil {
		t.Fatalf("update match: %v", err)
	}

	if err := s.RemoveTeam(0); err != nil {
		t.Fatalf("remove team: %v", err)
	}

	if len(s.Tournament().QualifiedTeams) != 0 {
		t.Fatalf("expected no qualified teams, got %d", len(s.Tournament().QualifiedTeams))
	}
	got := s.Tournament().Days[0].Rounds[0].Slots[0].Matches[0].Team1
	if got.Name != "Macquarie" || got.ID != team.ID {
		t.Errorf("match must keep its team snapshot, got %+v", got)
	}
}

func TestUpdateTeamDoesNotPropagateToMatches(t *testing.T) {
	s := seededSession(t)
	team := s.AddTeam("MAC", "Macquarie")

	m := s.Tournament().Days[0].Rounds[0].Slots[0].Matches[0]
	m.Team1 = team
	if err := s.UpdateMatch(0, 0, 0, 0, m); err != nil {
		t.Fatalf("update match: %v", err)
	}

	team.Name = "Macquarie Reborn"
	if err := s.UpdateTeam(0, team); err != nil {
		t.Fatalf("update team: %v", err)
	}

	if got := s.Tournament().QualifiedTeams[0].Name; got != "Macquarie Reborn" {
		t.Errorf("qualified team name = %q", got)
	}
	if got := s.Tournament().Days[0].Rounds[0].Slots[0].Matches[0].Team1.Name; got != "Macquarie" {
		t.Errorf("match team must stay a value copy, got %q", got)
	}
}

func TestWarningQueue(t *testing.T) {
	s := New(nil)
	if len(s.Warnings()) != 1 {
		t.Fatalf("expected 1 load warning, got %v", s.Warnings())
	}

	s.Warn("second")
	s.Warn("third")
	s.Dismiss(1)

	warns := s.Warnings()
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warns)
	}
	if warns[1] != "third" {
		t.Errorf("expected 'third' to remain, got %q", warns[1])
	}

	s.Dismiss(99) // out of range is a no-op
	if len(s.Warnings()) != 2 {
		t.Error("out-of-range dismiss must not change the queue")
	}
}

func TestResetDiscardsEdits(t *testing.T) {
	s := New(nil)
	s.AddDay()
	s.AddDay()

	s.Reset(map[string]any{
		"name":      "Fresh",
		"startDate": "2025-06-01T09:00:00.000Z",
		"endDate":   "2025-06-02T09:00:00.000Z",
		"status":    tournament.StatusUpcoming,
		"days":      []any{},
	})

	if s.Tournament().Name != "Fresh" {
		t.Errorf("expected reloaded tournament, got %q", s.Tournament().Name)
	}
	if len(s.Tournament().Days) != 0 {
		t.Errorf("expected local edits discarded, got %d days", len(s.Tournament().Days))
	}
}

type fakeSaver struct {
	doc   map[string]any
	token string
	err   error
}

func (f *fakeSaver) Save(_ context.Context, doc map[string]any, token string) error {
	f.doc = doc
	f.token = token
	return f.err
}

func TestSaveSanitizes(t *testing.T) {
	s := New(map[string]any{
		"name":      "Winter Invitational",
		"startDate": "2025-06-01T09:00:00.000Z",
		"endDate":   "2025-06-03T18:30:00.000Z",
		"status":    tournament.StatusOngoing,
		"days":      []any{},
	})

	saver := &fakeSaver{}
	if err := s.Save(context.Background(), saver, "secret"); err != nil {
		t.Fatalf("save: %v", err)
	}

	if saver.token != "secret" {
		t.Errorf("token = %q, want secret", saver.token)
	}
	if saver.doc["name"] != "Winter Invitational" {
		t.Errorf("saved name = %v", saver.doc["name"])
	}
	if saver.doc["startDate"] != "2025-06-01T09:00:00.000Z" {
		t.Errorf("saved startDate = %v, want canonical string", saver.doc["startDate"])
	}
}

func TestSaveErrorPropagates(t *testing.T) {
	s := New(nil)
	wantErr := errors.New("unauthorized")
	saver := &fakeSaver{err: wantErr}

	if err := s.Save(context.Background(), saver, "bad"); !errors.Is(err, wantErr) {
		t.Fatalf("expected the saver error, got %v", err)
	}
}

func TestSetInfo(t *testing.T) {
	s := New(nil)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	s.SetInfo(Info{
		Name:       "Winter Invitational",
		StartDate:  start,
		EndDate:    end,
		Status:     tournament.StatusOngoing,
		CurrentDay: 2,
	})

	tour := s.Tournament()
	if tour.Name != "Winter Invitational" {
		t.Errorf("name = %q", tour.Name)
	}
	if !tour.StartDate.Equal(start) || !tour.EndDate.Equal(end) {
		t.Errorf("dates = %v / %v", tour.StartDate, tour.EndDate)
	}
	if tour.Status != tournament.StatusOngoing {
		t.Errorf("status = %q", tour.Status)
	}
	if tour.CurrentDay.Int() != 2 {
		t.Errorf("currentDay = %d", tour.CurrentDay.Int())
	}
}
