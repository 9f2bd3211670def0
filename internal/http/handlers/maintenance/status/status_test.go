package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/models"
	"github.com/pistonary/pistonary/internal/schedule"
	"github.com/pistonary/pistonary/internal/services"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Status(ctx context.Context, carID int64, unit schedule.Unit, types []models.MaintenanceType) (*services.StatusReport, error) {
	args := m.Called(ctx, carID, unit, types)
	if res := args.Get(0); res != nil {
		return res.(*services.StatusReport), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPrefs struct {
	mock.Mock
}

func (m *MockPrefs) DisplayUnit(ctx context.Context, username string) schedule.Unit {
	args := m.Called(ctx, username)
	return args.Get(0).(schedule.Unit)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	report := &services.StatusReport{
		CarID:          7,
		CurrentMileage: 64500,
		Unit:           "km",
		Overall:        schedule.StatusSoon,
		Items: []services.StatusItem{
			{Type: "oil_change", DisplayName: "Motoröl + Ölfilter", Status: schedule.StatusSoon, Remaining: "noch 500 km"},
		},
	}

	tests := []struct {
		name           string
		url            string
		setupService   func(*MockService)
		setupPrefs     func(*MockPrefs)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "query unit wins over preference",
			url:  "/cars/7/status?unit=km",
			setupService: func(m *MockService) {
				m.On("Status", mock.Anything, int64(7), schedule.UnitKilometers, []models.MaintenanceType(nil)).
					Return(report, nil)
			},
			setupPrefs:     func(_ *MockPrefs) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `"overall":"soon"`,
		},
		{
			name: "miles spelled out",
			url:  "/cars/7/status?unit=miles",
			setupService: func(m *MockService) {
				m.On("Status", mock.Anything, int64(7), schedule.UnitMiles, []models.MaintenanceType(nil)).
					Return(report, nil)
			},
			setupPrefs:     func(_ *MockPrefs) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "falls back to the stored display unit",
			url:  "/cars/7/status",
			setupService: func(m *MockService) {
				m.On("Status", mock.Anything, int64(7), schedule.UnitMiles, []models.MaintenanceType(nil)).
					Return(report, nil)
			},
			setupPrefs: func(m *MockPrefs) {
				m.On("DisplayUnit", mock.Anything, "hans").Return(schedule.UnitMiles)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "type filter is passed through",
			url:  "/cars/7/status?unit=km&types=oil_change,brake_pads",
			setupService: func(m *MockService) {
				m.On("Status", mock.Anything, int64(7), schedule.UnitKilometers,
					[]models.MaintenanceType{models.TypeOilChange, models.TypeBrakePads}).
					Return(report, nil)
			},
			setupPrefs:     func(_ *MockPrefs) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `"Motoröl + Ölfilter"`,
		},
		{
			name:           "unknown unit",
			url:            "/cars/7/status?unit=furlongs",
			setupService:   func(_ *MockService) {},
			setupPrefs:     func(_ *MockPrefs) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"unknown unit, expected km or mi"`,
		},
		{
			name:           "unknown maintenance type",
			url:            "/cars/7/status?unit=km&types=warp_core",
			setupService:   func(_ *MockService) {},
			setupPrefs:     func(_ *MockPrefs) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"unknown maintenance type: warp_core"`,
		},
		{
			name: "service error",
			url:  "/cars/7/status?unit=km",
			setupService: func(m *MockService) {
				m.On("Status", mock.Anything, int64(7), schedule.UnitKilometers, []models.MaintenanceType(nil)).
					Return(nil, errors.New("db error"))
			},
			setupPrefs:     func(_ *MockPrefs) {},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not compute status"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupService(mockService)
			mockPrefs := new(MockPrefs)
			tt.setupPrefs(mockPrefs)

			handler := New(logger, mockService, mockPrefs)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.CarID, int64(7))
			ctx = context.WithValue(ctx, middlewarectx.User, "hans")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
			mockPrefs.AssertExpectations(t)
		})
	}
}
