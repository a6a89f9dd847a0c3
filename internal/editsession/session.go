// Package editsession manages an admin's local working copy of the
// tournament. Every mutation replaces the whole working copy rather than
// editing in place, so a half-applied edit can never be observed, and
// nothing is persisted until Save.
package editsession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monashcoding/tourneysite/internal/tournament"
)

// ErrOutOfRange is wrapped by every mutation that was given an index
// outside the working copy. The working copy is unchanged in that case.
var ErrOutOfRange = errors.New("out of range")

// Saver persists a generic document under an admin token.
// *client.Client satisfies it.
type Saver interface {
	Save(ctx context.Context, doc map[string]any, token string) error
}

// Session holds one admin's working copy and the warnings accumulated
// while loading and sanitizing it. Sessions are not safe for concurrent
// use; each admin view owns exactly one.
type Session struct {
	working  *tournament.Tournament
	warnings []string
}

// New builds a session from a fetched document. Malformed or empty input
// degrades to a default tournament with warnings rather than failing.
func New(doc map[string]any) *Session {
	t, warns := tournament.FromDocument(doc)
	return &Session{working: t, warnings: warns}
}

// Tournament returns the current working copy. Callers treat it as
// read-only; all edits go through the mutation methods.
func (s *Session) Tournament() *tournament.Tournament {
	return s.working
}

// Warnings returns the pending warning queue, oldest first.
func (s *Session) Warnings() []string {
	return s.warnings
}

// Warn appends a warning for the admin to dismiss.
func (s *Session) Warn(msg string) {
	s.warnings = append(s.warnings, msg)
}

// Dismiss removes the warning at index i. Out-of-range is a no-op.
func (s *Session) Dismiss(i int) {
	if i < 0 || i >= len(s.warnings) {
		return
	}
	s.warnings = append(s.warnings[:i], s.warnings[i+1:]...)
}

// Reset discards all local edits and rebuilds the working copy from doc.
func (s *Session) Reset(doc map[string]any) {
	t, warns := tournament.FromDocument(doc)
	s.working = t
	s.warnings = warns
}

// Save sanitizes the working copy and persists it. If sanitization
// itself fails, the raw document is saved as-is and the failure becomes
// a warning: a sanitizer bug must not cost the admin their edits.
func (s *Session) Save(ctx context.Context, saver Saver, token string) error {
	doc := tournament.ToDocument(s.working)

	sanitized, warns, err := sanitize(doc)
	if err != nil {
		s.warnings = append(s.warnings, fmt.Sprintf("data cleanup failed (%v), saving unsanitized data", err))
		sanitized = doc
	}
	s.warnings = append(s.warnings, warns...)

	return saver.Save(ctx, sanitized, token)
}

func sanitize(doc map[string]any) (out map[string]any, warns []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	out, warns = tournament.SanitizeDocument(doc)
	return out, warns, nil
}

// Info carries the editable top-level tournament fields.
type Info struct {
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	CurrentDay int
}

// SetInfo replaces the top-level tournament fields, leaving the tree and
// team list untouched.
func (s *Session) SetInfo(info Info) {
	c := s.working.Clone()
	c.Name = info.Name
	c.StartDate = tournament.NewTime(info.StartDate)
	c.EndDate = tournament.NewTime(info.EndDate)
	c.Status = info.Status
	c.CurrentDay = tournament.FlexInt(info.CurrentDay)
	s.working = c
}

// SetWinners replaces the winners podium.
func (s *Session) SetWinners(winners []tournament.Team) {
	c := s.working.Clone()
	c.Winners = append([]tournament.Team(nil), winners...)
	s.working = c
}

// AddTeam appends a new qualified team with an empty member list and
// returns it.
func (s *Session) AddTeam(abbreviation, name string) tournament.Team {
	team := tournament.Team{
		ID:           uuid.NewString(),
		Abbreviation: abbreviation,
		Name:         name,
		Members:      []tournament.Player{},
	}
	c := s.working.Clone()
	c.QualifiedTeams = append(c.QualifiedTeams, team)
	s.working = c
	return team
}

func (s *Session) UpdateTeam(i int, team tournament.Team) error {
	c := s.working.Clone()
	if i < 0 || i >= len(c.QualifiedTeams) {
		return fmt.Errorf("team %d: %w", i, ErrOutOfRange)
	}
	c.QualifiedTeams[i] = team
	s.working = c
	return nil
}

// RemoveTeam drops a team from the qualified list. Matches that already
// reference the team keep their own copy as a historical record.
func (s *Session) RemoveTeam(i int) error {
	c := s.working.Clone()
	if i < 0 || i >= len(c.QualifiedTeams) {
		return fmt.Errorf("team %d: %w", i, ErrOutOfRange)
	}
	c.QualifiedTeams = append(c.QualifiedTeams[:i], c.QualifiedTeams[i+1:]...)
	s.working = c
	return nil
}

// AddDay appends a new day numbered after the last, dated now.
func (s *Session) AddDay() tournament.Day {
	c := s.working.Clone()
	day := tournament.Day{
		ID:        uuid.NewString(),
		DayNumber: tournament.FlexInt(len(c.Days) + 1),
		Date:      tournament.NewTime(time.Now()),
		Rounds:    []tournament.Round{},
	}
	c.Days = append(c.Days, day)
	s.working = c
	return day
}

func (s *Session) UpdateDay(i int, day tournament.Day) error {
	c := s.working.Clone()
	if i < 0 || i >= len(c.Days) {
		return fmt.Errorf("day %d: %w", i, ErrOutOfRange)
	}
	c.Days[i] = day
	s.working = c
	return nil
}

// RemoveDay deletes a day and renumbers the remainder 1..N so day
// numbers always stay contiguous.
func (s *Session) RemoveDay(i int) error {
	c := s.working.Clone()
	if i < 0 || i >= len(c.Days) {
		return fmt.Errorf("day %d: %w", i, ErrOutOfRange)
	}
	c.Days = append(c.Days[:i], c.Days[i+1:]...)
	for n := range c.Days {
		c.Days[n].DayNumber = tournament.FlexInt(n + 1)
	}
	s.working = c
	return nil
}

// AddRound appends a round to a day. An empty name defaults to
// "Round N".
func (s *Session) AddRound(dayIdx int, name string) error {
	c := s.working.Clone()
	if dayIdx < 0 || dayIdx >= len(c.Days) {
		return fmt.Errorf("day %d: %w", dayIdx, ErrOutOfRange)
	}
	day := &c.Days[dayIdx]
	n := len(day.Rounds) + 1
	if name == "" {
		name = fmt.Sprintf("Round %d", n)
	}
	day.Rounds = append(day.Rounds, tournament.Round{
		ID:     uuid.NewString(),
		Number: tournament.FlexInt(n),
		Name:   name,
		Slots:  []tournament.Slot{},
	})
	s.working = c
	return nil
}

func (s *Session) UpdateRound(dayIdx, roundIdx int, round tournament.Round) error {
	c := s.working.Clone()
	r, err := roundAt(c, dayIdx, roundIdx)
	if err != nil {
		return err
	}
	*r = round
	s.working = c
	return nil
}

func (s *Session) RemoveRound(dayIdx, roundIdx int) error {
	c := s.working.Clone()
	if dayIdx < 0 || dayIdx >= len(c.Days) {
		return fmt.Errorf("day %d: %w", dayIdx, ErrOutOfRange)
	}
	day := &c.Days[dayIdx]
	if roundIdx < 0 || roundIdx >= len(day.Rounds) {
		return fmt.Errorf("round %d: %w", roundIdx, ErrOutOfRange)
	}
	day.Rounds = append(day.Rounds[:roundIdx], day.Rounds[roundIdx+1:]...)
	for n := range day.Rounds {
		day.Rounds[n].Number = tournament.FlexInt(n + 1)
	}
	s.working = c
	return nil
}

// AddSlot appends a slot to a round.
func (s *Session) AddSlot(dayIdx, roundIdx int) error {
	c := s.working.Clone()
	r, err := roundAt(c, dayIdx, roundIdx)
	if err != nil {
		return err
	}
	r.Slots = append(r.Slots, tournament.Slot{
		ID:      uuid.NewString(),
		Number:  tournament.FlexInt(len(r.Slots) + 1),
		Matches: []tournament.Match{},
	})
	s.working = c
	return nil
}

func (s *Session) UpdateSlot(dayIdx, roundIdx, slotIdx int, slot tournament.Slot) error {
	c := s.working.Clone()
	sl, err := slotAt(c, dayIdx, roundIdx, slotIdx)
	if err != nil {
		return err
	}
	*sl = slot
	s.working = c
	return nil
}

func (s *Session) RemoveSlot(dayIdx, roundIdx, slotIdx int) error {
	c := s.working.Clone()
	r, err := roundAt(c, dayIdx, roundIdx)
	if err != nil {
		return err
	}
	if slotIdx < 0 || slotIdx >= len(r.Slots) {
		return fmt.Errorf("slot %d: %w", slotIdx, ErrOutOfRange)
	}
	r.Slots = append(r.Slots[:slotIdx], r.Slots[slotIdx+1:]...)
	for n := range r.Slots {
		r.Slots[n].Number = tournament.FlexInt(n + 1)
	}
	s.working = c
	return nil
}

// AddMatch appends a match with placeholder teams, scheduled now, BO1,
// no maps played.
func (s *Session) AddMatch(dayIdx, roundIdx, slotIdx int) error {
	c := s.working.Clone()
	sl, err := slotAt(c, dayIdx, roundIdx, slotIdx)
	if err != nil {
		return err
	}
	sl.Matches = append(sl.Matches, tournament.Match{
		ID:            uuid.NewString(),
		Team1:         tournament.Team{Name: "TBD", Members: []tournament.Player{}},
		Team2:         tournament.Team{Name: "TBD", Members: []tournament.Player{}},
		ScheduledTime: tournament.NewTime(time.Now()),
		Status:        tournament.MatchScheduled,
		Format:        tournament.FormatBO1,
		Maps:          []tournament.MapResult{},
	})
	s.working = c
	return nil
}

func (s *Session) UpdateMatch(dayIdx, roundIdx, slotIdx, matchIdx int, match tournament.Match) error {
	c := s.working.Clone()
	m, err := matchAt(c, dayIdx, roundIdx, slotIdx, matchIdx)
	if err != nil {
		return err
	}
	*m = match
	s.working = c
	return nil
}

func (s *Session) RemoveMatch(dayIdx, roundIdx, slotIdx, matchIdx int) error {
	c := s.working.Clone()
	sl, err := slotAt(c, dayIdx, roundIdx, slotIdx)
	if err != nil {
		return err
	}
	if matchIdx < 0 || matchIdx >= len(sl.Matches) {
		return fmt.Errorf("match %d: %w", matchIdx, ErrOutOfRange)
	}
	sl.Matches = append(sl.Matches[:matchIdx], sl.Matches[matchIdx+1:]...)
	s.working = c
	return nil
}

// AddMap appends an empty map result to a match.
func (s *Session) AddMap(dayIdx, roundIdx, slotIdx, matchIdx int) error {
	c := s.working.Clone()
	m, err := matchAt(c, dayIdx, roundIdx, slotIdx, matchIdx)
	if err != nil {
		return err
	}
	m.Maps = append(m.Maps, tournament.MapResult{})
	s.working = c
	return nil
}

func (s *Session) UpdateMap(dayIdx, roundIdx, slotIdx, matchIdx, mapIdx int, result tournament.MapResult) error {
	c := s.working.Clone()
	m, err := matchAt(c, dayIdx, roundIdx, slotIdx, matchIdx)
	if err != nil {
		return err
	}
	if mapIdx < 0 || mapIdx >= len(m.Maps) {
		return fmt.Errorf("map %d: %w", mapIdx, ErrOutOfRange)
	}
	m.Maps[mapIdx] = result
	s.working = c
	return nil
}

func (s *Session) RemoveMap(dayIdx, roundIdx, slotIdx, matchIdx, mapIdx int) error {
	c := s.working.Clone()
	m, err := matchAt(c, dayIdx, roundIdx, slotIdx, matchIdx)
	if err != nil {
		return err
	}
	if mapIdx < 0 || mapIdx >= len(m.Maps) {
		return fmt.Errorf("map %d: %w", mapIdx, ErrOutOfRange)
	}
	m.Maps = append(m.Maps[:mapIdx], m.Maps[mapIdx+1:]...)
	s.working = c
	return nil
}

func roundAt(t *tournament.Tournament, dayIdx, roundIdx int) (*tournament.Round, error) {
	if dayIdx < 0 || dayIdx >= len(t.Days) {
		return nil, fmt.Errorf("day %d: %w", dayIdx, ErrOutOfRange)
	}
	day := &t.Days[dayIdx]
	if roundIdx < 0 || roundIdx >= len(day.Rounds) {
		return nil, fmt.Errorf("round %d: %w", roundIdx, ErrOutOfRange)
	}
	return &day.Rounds[roundIdx], nil
}

func slotAt(t *tournament.Tournament, dayIdx, roundIdx, slotIdx int) (*tournament.Slot, error) {
	r, err := roundAt(t, dayIdx, roundIdx)
	if err != nil {
		return nil, err
	}
	if slotIdx < 0 || slotIdx >= len(r.Slots) {
		return nil, fmt.Errorf("slot %d: %w", slotIdx, ErrOutOfRange)
	}
	return &r.Slots[slotIdx], nil
}

func matchAt(t *tournament.Tournament, dayIdx, roundIdx, slotIdx, matchIdx int) (*tournament.Match, error) {
	sl, err := slotAt(t, dayIdx, roundIdx, slotIdx)
	if err != nil {
		return nil, err
	}
	if matchIdx < 0 || matchIdx >= len(sl.Matches) {
		return nil, fmt.Errorf("match %d: %w", matchIdx, ErrOutOfRange)
	}
	return &sl.Matches[matchIdx], nil
}
