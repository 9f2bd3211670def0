package consumption_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pistonary/pistonary/internal/http/handlers/stats/consumption"
	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/services"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Consumption(ctx context.Context, carID int64) ([]services.ConsumptionPoint, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ConsumptionPoint), args.Error(1)
}

func TestConsumptionHandler(t *testing.T) {
	cases := []struct {
		name          string
		setupMock     func(service *MockService)
		expectedCode  int
		expectedParts []string
	}{
		{
			name: "Success with weighted average",
			setupMock: func(service *MockService) {
				service.On("Consumption", mock.Anything, int64(7)).Return([]services.ConsumptionPoint{
					{Date: "10-04-2024", Mileage: 50800, DistanceKm: 800, Liters: 48, LitersPer100Km: 6.0},
					{Date: "02-05-2024", Mileage: 51300, DistanceKm: 500, Liters: 35, LitersPer100Km: 7.0},
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
			// 83 liters over 1300 km.
			expectedParts: []string{`"points"`, `"average":6.38`},
		},
		{
			name: "No full fill-ups yet",
			setupMock: func(service *MockService) {
				service.On("Consumption", mock.Anything, int64(7)).
					Return([]services.ConsumptionPoint{}, nil).Once()
			},
			expectedCode:  http.StatusOK,
			expectedParts: []string{`"average":0`},
		},
		{
			name: "Service error",
			setupMock: func(service *MockService) {
				service.On("Consumption", mock.Anything, int64(7)).
					Return(nil, errors.New("db down")).Once()
			},
			expectedCode:  http.StatusInternalServerError,
			expectedParts: []string{"could not compute consumption"},
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := new(MockService)
	handler := consumption.New(log, service)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service.ExpectedCalls = nil
			service.Calls = nil
			tc.setupMock(service)

			req := httptest.NewRequest(http.MethodGet, "/cars/7/stats/consumption", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.CarID, int64(7)))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedCode, rec.Code)
			for _, part := range tc.expectedParts {
				assert.True(t, strings.Contains(rec.Body.String(), part),
					"body %q should contain %q", rec.Body.String(), part)
			}
			service.AssertExpectations(t)
		})
	}
}
