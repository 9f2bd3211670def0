package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pistonary/pistonary/internal/models"
)

func TestLatestByType(t *testing.T) {
	entries := []models.MaintenanceEntry{
		{ID: 1, Type: models.TypeOilChange, DoneDate: datePtr(2024, 1, 15)},
		{ID: 2, Type: models.TypeOilChange, DoneDate: datePtr(2024, 8, 1)},
		{ID: 3, Type: models.TypeOilChange}, // undated, loses to dated records
		{ID: 4, Type: models.TypeBrakePads, DoneMileage: intPtr(40000)},
		{ID: 5, Type: models.TypeBrakePads, DoneMileage: intPtr(80000)}, // undated tie, higher ID wins
		{ID: 6, Type: models.TypeBattery, DoneDate: datePtr(2023, 6, 1)},
		{ID: 7, Type: models.TypeBattery, DoneDate: datePtr(2023, 6, 1)}, // date tie, higher ID wins
	}

	latest := LatestByType(entries)

	assert.Len(t, latest, 3)
	assert.Equal(t, int64(2), latest[models.TypeOilChange].ID)
	assert.Equal(t, int64(5), latest[models.TypeBrakePads].ID)
	assert.Equal(t, int64(7), latest[models.TypeBattery].ID)
	assert.Nil(t, latest[models.TypeBrakeFluid])
}

func TestLatestByType_Empty(t *testing.T) {
	assert.Empty(t, LatestByType(nil))
}

// Order of the input slice must not influence which record wins.
func TestLatestByType_Deterministic(t *testing.T) {
	a := models.MaintenanceEntry{ID: 10, Type: models.TypeOilChange, DoneDate: datePtr(2024, 5, 1)}
	b := models.MaintenanceEntry{ID: 11, Type: models.TypeOilChange, DoneDate: datePtr(2024, 5, 1)}

	first := LatestByType([]models.MaintenanceEntry{a, b})
	second := LatestByType([]models.MaintenanceEntry{b, a})

	assert.Equal(t, first[models.TypeOilChange].ID, second[models.TypeOilChange].ID)
	assert.Equal(t, int64(11), first[models.TypeOilChange].ID)
}
