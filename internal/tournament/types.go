// Package tournament defines the typed tournament tree and the
// conversions between it and the generic JSON document the API stores.
package tournament

// Status of the tournament as a whole.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Match statuses.
const (
	MatchScheduled  = "scheduled"
	MatchInProgress = "in-progress"
	MatchCompleted  = "completed"
	MatchPostponed  = "postponed"
)

// Match formats.
const (
	FormatBO1 = "BO1"
	FormatBO3 = "BO3"
	FormatBO5 = "BO5"
)

// Tournament is the singleton document: one instance owns the whole
// day/round/slot/match tree and the team list.
type Tournament struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartDate      Time    `json:"startDate"`
	EndDate        Time    `json:"endDate"`
	Days           []Day   `json:"days"`
	CurrentDay     FlexInt `json:"currentDay,omitempty"`
	Status         string  `json:"status"`
	QualifiedTeams []Team  `json:"qualifiedTeams"`
	Winners        []Team  `json:"winners,omitempty"`
}

type Day struct {
	ID          string             `json:"id"`
	DayNumber   FlexInt            `json:"dayNumber"`
	Date        Time               `json:"date"`
	Rounds      []Round            `json:"rounds"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
}

type Round struct {
	ID          string  `json:"id"`
	Number      FlexInt `json:"number"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TimeSlot    string  `json:"timeSlot"`
	Slots       []Slot  `json:"slots"`
}

type Slot struct {
	ID       string  `json:"id"`
	Number   FlexInt `json:"number"`
	TimeSlot string  `json:"timeSlot"`
	Matches  []Match `json:"matches"`
}

// Match references teams by value copy, not by ID: editing a team in
// qualifiedTeams after the match was created does not propagate here.
type Match struct {
	ID            string      `json:"id"`
	Team1         Team        `json:"team1"`
	Team2         Team        `json:"team2"`
	ScheduledTime Time        `json:"scheduledTime"`
	StartTime     *Time       `json:"startTime,omitempty"`
	EndTime       *Time       `json:"endTime,omitempty"`
	Status        string      `json:"status"`
	Format        string      `json:"format"`
	Maps          []MapResult `json:"maps"`
	Winner        *Team       `json:"winner,omitempty"`
	Stage         string      `json:"stage,omitempty"`
}

type MapResult struct {
	MapName    string  `json:"mapName"`
	Team1Score FlexInt `json:"team1Score"`
	Team2Score FlexInt `json:"team2Score"`
	Duration   FlexInt `json:"duration,omitempty"`
}

type Team struct {
	ID           string     `json:"id"`
	Abbreviation string     `json:"abbreviation"`
	Name         string     `json:"name"`
	Members      []Player   `json:"members"`
	Stats        *TeamStats `json:"stats,omitempty"`
}

type TeamStats struct {
	Wins       FlexInt `json:"wins"`
	Losses     FlexInt `json:"losses"`
	RoundsWon  FlexInt `json:"roundsWon"`
	RoundsLost FlexInt `json:"roundsLost"`
	MapWins    FlexInt `json:"mapWins"`
	MapLosses  FlexInt `json:"mapLosses"`
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	IGN  string `json:"ign"`
	Role string `json:"role,omitempty"`
}

type LeaderboardEntry struct {
	Rank              FlexInt `json:"rank"`
	Team              Team    `json:"team"`
	Wins              FlexInt `json:"wins"`
	Losses            FlexInt `json:"losses"`
	Score             FlexInt `json:"score"`
	EliminationStatus string  `json:"eliminationStatus"`
}
