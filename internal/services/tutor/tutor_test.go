package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListActiveTutors(ctx context.Context) ([]*models.Tutor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tutor), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetTutorProfile(ctx context.Context, userUID string) (*models.TutorProfile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TutorProfile), args.Error(1)
}
func (m *RepoMock) UpdateTutorProfile(ctx context.Context, userUID string, req models.DummyTutorProfileUpdate) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func sampleTutors() []*models.Tutor {
	return []*models.Tutor{
		{
			User: models.User{UID: "t-1", Name: "Anna", Address: "12 Park Street, Kolkata", Role: models.RoleTutor},
			Profile: models.TutorProfile{
				UserUID:    "t-1",
				Subjects:   []string{"Mathematics", "Physics"},
				Experience: 8,
			},
		},
		{
			User: models.User{UID: "t-2", Name: "Boris", Address: "Salt Lake, Kolkata", Role: models.RoleTutor},
			Profile: models.TutorProfile{
				UserUID:    "t-2",
				Subjects:   []string{"English"},
				Experience: 2,
			},
		},
	}
}

func TestTutorService_List(t *testing.T) {
	tests := []struct {
		name       string
		filter     models.TutorFilter
		setupMocks func(r *RepoMock, c *CacheMock)
		wantUIDs   []string
	}{
		{
			name:   "unfiltered list is cached",
			filter: models.TutorFilter{},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "tutors:directory", mock.Anything).Return(false, nil).Once()
				r.On("ListActiveTutors", mock.Anything).Return(sampleTutors(), nil).Once()
				c.On("Set", "tutors:directory", mock.Anything, time.Hour).Return(nil).Once()
			},
			wantUIDs: []string{"t-1", "t-2"},
		},
		{
			name:   "subject filter matches substring case-insensitively",
			filter: models.TutorFilter{Subject: "math"},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("ListActiveTutors", mock.Anything).Return(sampleTutors(), nil).Once()
			},
			wantUIDs: []string{"t-1"},
		},
		{
			name:   "location filter",
			filter: models.TutorFilter{Location: "salt lake"},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("ListActiveTutors", mock.Anything).Return(sampleTutors(), nil).Once()
			},
			wantUIDs: []string{"t-2"},
		},
		{
			name:   "minimum experience filter",
			filter: models.TutorFilter{MinExperience: 5},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("ListActiveTutors", mock.Anything).Return(sampleTutors(), nil).Once()
			},
			wantUIDs: []string{"t-1"},
		},
		{
			name:   "combined filters narrow to nothing",
			filter: models.TutorFilter{Subject: "English", MinExperience: 5},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("ListActiveTutors", mock.Anything).Return(sampleTutors(), nil).Once()
			},
			wantUIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewTutorService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.List(context.Background(), tt.filter)
			assert.NoError(t, err)

			var uids []string
			for _, tutor := range got {
				uids = append(uids, tutor.User.UID)
			}
			assert.Equal(t, tt.wantUIDs, uids)

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestTutorService_Read(t *testing.T) {
	t.Run("success caches the card", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewTutorService(repo, cache, newNoopLogger())

		cache.On("Get", "tutor:t-1", mock.Anything).Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, "t-1").
			Return(&models.User{UID: "t-1", Role: models.RoleTutor, PasswordHash: "hash"}, nil).Once()
		repo.On("GetTutorProfile", mock.Anything, "t-1").
			Return(&models.TutorProfile{UserUID: "t-1"}, nil).Once()
		cache.On("Set", "tutor:t-1", mock.Anything, time.Hour).Return(nil).Once()

		tutor, err := svc.Read(context.Background(), "t-1")
		assert.NoError(t, err)
		assert.Empty(t, tutor.User.PasswordHash)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("student uid is not found in directory", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewTutorService(repo, cache, newNoopLogger())

		cache.On("Get", "tutor:s-1", mock.Anything).Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, "s-1").
			Return(&models.User{UID: "s-1", Role: models.RoleStudent}, nil).Once()

		_, err := svc.Read(context.Background(), "s-1")
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss error falls back to repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewTutorService(repo, cache, newNoopLogger())

		cache.On("Get", "tutor:t-1", mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("GetUser", mock.Anything, "t-1").
			Return(&models.User{UID: "t-1", Role: models.RoleTutor}, nil).Once()
		repo.On("GetTutorProfile", mock.Anything, "t-1").
			Return(&models.TutorProfile{UserUID: "t-1"}, nil).Once()
		cache.On("Set", "tutor:t-1", mock.Anything, time.Hour).Return(nil).Once()

		_, err := svc.Read(context.Background(), "t-1")
		assert.NoError(t, err)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestTutorService_UpdateProfile(t *testing.T) {
	req := models.DummyTutorProfileUpdate{
		Subjects: []string{"Chemistry"},
	}

	t.Run("owner updates and cache is invalidated", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewTutorService(repo, cache, newNoopLogger())

		repo.On("UpdateTutorProfile", mock.Anything, "t-1", req).Return(1, nil).Once()
		cache.On("Invalidate", "tutors:directory").Return(nil).Once()
		cache.On("Invalidate", "tutor:t-1").Return(nil).Once()
		repo.On("GetTutorProfile", mock.Anything, "t-1").
			Return(&models.TutorProfile{UserUID: "t-1", Subjects: []string{"Chemistry"}}, nil).Once()

		profile, err := svc.UpdateProfile(context.Background(), "t-1", "t-1", req)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Chemistry"}, profile.Subjects)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("foreign profile is forbidden", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewTutorService(repo, cache, newNoopLogger())

		_, err := svc.UpdateProfile(context.Background(), "t-2", "t-1", req)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateTutorProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewTutorService(repo, cache, newNoopLogger())

		repo.On("UpdateTutorProfile", mock.Anything, "t-1", req).Return(0, nil).Once()

		_, err := svc.UpdateProfile(context.Background(), "t-1", "t-1", req)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		repo.AssertExpectations(t)
	})
}
