package schedule

import (
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// Status is the derived urgency of a maintenance type. It is never
// stored, only recomputed from the current record set.
type Status string

const (
	// StatusNotRecorded means no record of this type exists yet.
	StatusNotRecorded Status = "not_recorded"
	// StatusGood means the task is not due in the near future.
	StatusGood Status = "good"
	// StatusSoon means the task is due within the warning window.
	StatusSoon Status = "soon"
	// StatusOverdue means the due date or due mileage has been reached.
	StatusOverdue Status = "overdue"
)

// Warning windows for the "soon" state.
const (
	SoonDays       = 30
	SoonKilometers = 1000
)

// statusRank orders statuses by urgency for aggregation.
var statusRank = map[Status]int{
	StatusNotRecorded: 0,
	StatusGood:        1,
	StatusSoon:        2,
	StatusOverdue:     3,
}

// Classify derives the status of one maintenance type. A nil entry means
// the type was never recorded. Both axes are checked independently; the
// worse one wins. Axes that cannot be projected simply do not contribute,
// so a record under the zero rule is always "good".
func Classify(entry *models.MaintenanceEntry, rule IntervalRule, now time.Time, currentMileage int) Status {
	if entry == nil {
		return StatusNotRecorded
	}
	p := ProjectNextDue(*entry, rule)

	if p.HasDueDate && !now.Before(p.DueDate) {
		return StatusOverdue
	}
	if p.HasDueMileage && currentMileage >= p.DueMileage {
		return StatusOverdue
	}
	if p.HasDueDate && !now.Before(p.DueDate.AddDate(0, 0, -SoonDays)) {
		return StatusSoon
	}
	if p.HasDueMileage && currentMileage >= p.DueMileage-SoonKilometers {
		return StatusSoon
	}
	return StatusGood
}

// WorstStatus aggregates several per-type statuses into one, taking the
// most urgent by the ordering overdue > soon > good > not_recorded.
// Returns not_recorded for an empty input.
func WorstStatus(statuses ...Status) Status {
	worst := StatusNotRecorded
	for _, s := range statuses {
		if statusRank[s] > statusRank[worst] {
			worst = s
		}
	}
	return worst
}
