package schedule

import "github.com/pistonary/pistonary/internal/models"

// LatestByType picks the authoritative record per maintenance type from a
// car's full history. The record with the latest done date wins; records
// without a date lose to dated ones; remaining ties are broken by the
// highest ID so the result is deterministic for identical input.
func LatestByType(entries []models.MaintenanceEntry) map[models.MaintenanceType]*models.MaintenanceEntry {
	latest := make(map[models.MaintenanceType]*models.MaintenanceEntry)
	for i := range entries {
		e := &entries[i]
		cur, ok := latest[e.Type]
		if !ok || newer(e, cur) {
			latest[e.Type] = e
		}
	}
	return latest
}

// newer reports whether a should replace b as the authoritative record.
func newer(a, b *models.MaintenanceEntry) bool {
	switch {
	case a.DoneDate != nil && b.DoneDate == nil:
		return true
	case a.DoneDate == nil && b.DoneDate != nil:
		return false
	case a.DoneDate != nil && b.DoneDate != nil && !a.DoneDate.Equal(*b.DoneDate):
		return a.DoneDate.After(*b.DoneDate)
	default:
		return a.ID > b.ID
	}
}
