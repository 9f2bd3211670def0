package schedule

import (
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// Projection is the next point at which a maintenance task becomes due.
// Either axis may be absent; that is the normal "cannot project" case,
// not an error.
type Projection struct {
	DueDate       time.Time
	HasDueDate    bool
	DueMileage    int
	HasDueMileage bool
}

// ProjectNextDue computes the next due date and due mileage for a record
// under a rule. An axis is only projected when both the record's "done"
// value and the rule's interval are present on that axis. Date projection
// uses calendar-month addition (AddDate), which preserves the day of
// month where possible.
func ProjectNextDue(entry models.MaintenanceEntry, rule IntervalRule) Projection {
	var p Projection
	if entry.DoneDate != nil && rule.Months > 0 {
		p.DueDate = entry.DoneDate.AddDate(0, rule.Months, 0)
		p.HasDueDate = true
	}
	if entry.DoneMileage != nil && rule.Kilometers > 0 {
		p.DueMileage = *entry.DoneMileage + rule.Kilometers
		p.HasDueMileage = true
	}
	return p
}
