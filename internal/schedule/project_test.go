package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pistonary/pistonary/internal/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestProjectNextDue(t *testing.T) {
	tests := []struct {
		name  string
		entry models.MaintenanceEntry
		rule  IntervalRule
		want  Projection
	}{
		{
			name:  "both axes projectable",
			entry: models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 15), DoneMileage: intPtr(10000)},
			rule:  IntervalRule{Months: 12, Kilometers: 15000},
			want: Projection{
				DueDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				HasDueDate:    true,
				DueMileage:    25000,
				HasDueMileage: true,
			},
		},
		{
			name:  "date axis only",
			entry: models.MaintenanceEntry{DoneDate: datePtr(2024, 3, 1)},
			rule:  IntervalRule{Months: 24, Kilometers: 30000},
			want: Projection{
				DueDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				HasDueDate: true,
			},
		},
		{
			name:  "mileage axis only",
			entry: models.MaintenanceEntry{DoneMileage: intPtr(5000)},
			rule:  IntervalRule{Kilometers: 10000},
			want: Projection{
				DueMileage:    15000,
				HasDueMileage: true,
			},
		},
		{
			name:  "interval without matching done value is not projected",
			entry: models.MaintenanceEntry{DoneMileage: intPtr(5000)},
			rule:  IntervalRule{Months: 12},
			want:  Projection{},
		},
		{
			name:  "zero rule projects nothing",
			entry: models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 1), DoneMileage: intPtr(1)},
			rule:  IntervalRule{},
			want:  Projection{},
		},
		{
			name:  "month addition rolls over short months",
			entry: models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 31)},
			rule:  IntervalRule{Months: 1},
			want: Projection{
				// AddDate normalizes Jan 31 + 1 month to Mar 2 in a leap year.
				DueDate:    time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
				HasDueDate: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectNextDue(tt.entry, tt.rule))
		})
	}
}
