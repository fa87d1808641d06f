package list

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

	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, filter models.TutorFilter) ([]*models.Tutor, error) {
	args := m.Called(ctx, filter)
	if res := args.Get(0); res != nil {
		return res.([]*models.Tutor), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tutors := []*models.Tutor{
		{
			User:    models.User{UID: "t-1", Name: "Anna"},
			Profile: models.TutorProfile{UserUID: "t-1", Subjects: []string{"Mathematics"}},
		},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список без фильтров",
			url:  "/tutors",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.TutorFilter{}).Return(tutors, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"results":1`,
		},
		{
			name: "фильтры из query-параметров",
			url:  "/tutors?subject=math&location=kolkata&experience=5",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.TutorFilter{
					Subject:       "math",
					Location:      "kolkata",
					MinExperience: 5,
				}).Return(tutors, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"Name":"Anna"`,
		},
		{
			name:           "нечисловой опыт",
			url:            "/tutors?experience=lots",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `experience must be a non-negative number`,
		},
		{
			name: "ошибка сервиса",
			url:  "/tutors",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.TutorFilter{}).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not list tutors`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
