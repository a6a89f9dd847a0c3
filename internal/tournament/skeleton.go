package tournament

import (
	"time"

	"github.com/google/uuid"
)

// Skeleton returns the built-in default tournament used when no valid
// remote document exists: empty schedule, empty team list, dated today.
func Skeleton() *Tournament {
	now := time.Now()
	return &Tournament{
		ID:             uuid.NewString(),
		Name:           "New Tournament",
		StartDate:      NewTime(now),
		EndDate:        NewTime(now),
		Days:           []Day{},
		Status:         StatusUpcoming,
		QualifiedTeams: []Team{},
	}
}
