package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pistonary/pistonary/internal/models"
)

func TestClassify(t *testing.T) {
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   *models.MaintenanceEntry
		rule    IntervalRule
		now     time.Time
		mileage int
		want    Status
	}{
		{
			name: "nil entry is not_recorded regardless of rule",
			rule: IntervalRule{Months: 1, Kilometers: 1},
			now:  now,
			want: StatusNotRecorded,
		},
		{
			name:    "date axis overdue wins over mileage still good",
			entry:   &models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 15), DoneMileage: intPtr(10000)},
			rule:    IntervalRule{Months: 12, Kilometers: 15000},
			now:     now,
			mileage: 24500,
			want:    StatusOverdue,
		},
		{
			name:    "within the 1000 km soon window",
			entry:   &models.MaintenanceEntry{DoneMileage: intPtr(5000)},
			rule:    IntervalRule{Kilometers: 10000},
			now:     now,
			mileage: 14500, // due at 15000, 500 km left
			want:    StatusSoon,
		},
		{
			name:    "mileage exactly at due is overdue",
			entry:   &models.MaintenanceEntry{DoneMileage: intPtr(5000)},
			rule:    IntervalRule{Kilometers: 10000},
			now:     now,
			mileage: 15000,
			want:    StatusOverdue,
		},
		{
			name:  "date exactly at due is overdue",
			entry: &models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 20)},
			rule:  IntervalRule{Months: 12},
			now:   now,
			want:  StatusOverdue,
		},
		{
			name:  "date inside the 30 day soon window",
			entry: &models.MaintenanceEntry{DoneDate: datePtr(2024, 2, 1)},
			rule:  IntervalRule{Months: 12},
			now:   now, // due 2025-02-01, 12 days out
			want:  StatusSoon,
		},
		{
			name:    "comfortably before both thresholds",
			entry:   &models.MaintenanceEntry{DoneDate: datePtr(2024, 11, 1), DoneMileage: intPtr(20000)},
			rule:    IntervalRule{Months: 12, Kilometers: 15000},
			now:     now,
			mileage: 21000,
			want:    StatusGood,
		},
		{
			name:    "zero rule is never due",
			entry:   &models.MaintenanceEntry{DoneDate: datePtr(2020, 1, 1), DoneMileage: intPtr(1)},
			rule:    IntervalRule{},
			now:     now,
			mileage: 999999,
			want:    StatusGood,
		},
		{
			name:    "interval without done value on that axis does not fire",
			entry:   &models.MaintenanceEntry{DoneMileage: intPtr(1000)},
			rule:    IntervalRule{Months: 1}, // no date recorded, time axis unprojectable
			now:     now,
			mileage: 999999,
			want:    StatusGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.entry, tt.rule, tt.now, tt.mileage))
		})
	}
}

// Classification is pure: identical inputs give identical outputs.
func TestClassify_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entry := &models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 15), DoneMileage: intPtr(10000)}
	rule := IntervalRule{Months: 12, Kilometers: 15000}

	first := Classify(entry, rule, now, 24500)
	second := Classify(entry, rule, now, 24500)
	assert.Equal(t, first, second)
}

// Once overdue, moving time or mileage forward can never un-expire a task.
func TestClassify_OverdueMonotonicity(t *testing.T) {
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	entry := &models.MaintenanceEntry{DoneDate: datePtr(2024, 1, 15), DoneMileage: intPtr(10000)}
	rule := IntervalRule{Months: 12, Kilometers: 15000}

	assert.Equal(t, StatusOverdue, Classify(entry, rule, now, 24500))

	for _, d := range []time.Duration{time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
		assert.Equal(t, StatusOverdue, Classify(entry, rule, now.Add(d), 24500))
	}
	for _, km := range []int{24500, 25000, 100000} {
		assert.Equal(t, StatusOverdue, Classify(entry, rule, now, km))
	}
}

func TestWorstStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty input", nil, StatusNotRecorded},
		{"single status", []Status{StatusGood}, StatusGood},
		{"overdue dominates everything", []Status{StatusGood, StatusOverdue, StatusSoon, StatusNotRecorded}, StatusOverdue},
		{"soon beats good", []Status{StatusGood, StatusSoon, StatusGood}, StatusSoon},
		{"good beats not_recorded", []Status{StatusNotRecorded, StatusGood}, StatusGood},
		{"all not_recorded", []Status{StatusNotRecorded, StatusNotRecorded}, StatusNotRecorded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorstStatus(tt.statuses...))
		})
	}
}
