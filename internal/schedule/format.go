package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// Unit selects the display unit for distances. Kilometers are always the
// canonical stored unit; miles are a display-only conversion.
type Unit string

const (
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "mi"
)

// Miles per kilometer, used for display conversion only.
const milesPerKm = 0.621371

// ConvertDistance renders a canonical kilometer value in the requested
// unit, rounded to the nearest whole unit.
func ConvertDistance(km int, unit Unit) int {
	if unit == UnitMiles {
		return int(math.Round(float64(km) * milesPerKm))
	}
	return km
}

// FormatRemaining renders the remaining (or overdue) time and distance of
// a maintenance task as a human-readable German string, e.g.
// "3 Monate oder 4500 km" or "Überfällig seit 5 Tagen". Returns the
// empty string when neither axis can be projected; callers treat that as
// "no projection available".
func FormatRemaining(entry models.MaintenanceEntry, rule IntervalRule, now time.Time, currentMileage int, unit Unit) string {
	p := ProjectNextDue(entry, rule)

	var datePart, kmPart string
	if p.HasDueDate {
		days := remainingDays(now, p.DueDate)
		switch {
		case days > 0:
			datePart = renderDuration(days, false)
		case days == 0:
			datePart = "Heute fällig"
		default:
			datePart = "Überfällig seit " + renderDuration(-days, true)
		}
	}
	if p.HasDueMileage {
		rest := p.DueMileage - currentMileage
		if rest > 0 {
			kmPart = renderDistance(rest, unit)
		} else {
			kmPart = "Überfällig seit " + renderDistance(-rest, unit)
		}
	}

	switch {
	case datePart != "" && kmPart != "":
		return datePart + " oder " + kmPart
	case datePart != "":
		return datePart
	default:
		return kmPart
	}
}

// remainingDays is the number of whole days from now until due, rounded
// up so that a task due later today still counts as due today (0), not
// yesterday.
func remainingDays(now, due time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// renderDuration renders a day count largest-unit-first: years with an
// optional month remainder, then months, then days. The dative flag picks
// the inflected plural used after "seit".
func renderDuration(days int, dative bool) string {
	switch {
	case days >= 365:
		years := days / 365
		out := fmt.Sprintf("%d %s", years, pluralize(years, "Jahr", "Jahre", "Jahren", dative))
		if months := (days % 365) / 30; months > 0 {
			out += fmt.Sprintf(" %d Mon.", months)
		}
		return out
	case days >= 30:
		months := days / 30
		return fmt.Sprintf("%d %s", months, pluralize(months, "Monat", "Monate", "Monaten", dative))
	default:
		return fmt.Sprintf("%d %s", days, pluralize(days, "Tag", "Tage", "Tagen", dative))
	}
}

func pluralize(n int, singular, plural, dativePlural string, dative bool) string {
	if n == 1 {
		return singular
	}
	if dative {
		return dativePlural
	}
	return plural
}

func renderDistance(km int, unit Unit) string {
	if unit == UnitMiles {
		return fmt.Sprintf("%d mi", ConvertDistance(km, UnitMiles))
	}
	return fmt.Sprintf("%d km", km)
}
