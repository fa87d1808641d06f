package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) ListAllRequests(ctx context.Context) ([]*models.TuitionRequestInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TuitionRequestInfo), args.Error(1)
}
func (m *RepoMock) ToggleBlock(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAdminService_ListUsers(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, new(CacheMock), newNoopLogger())

	repo.On("ListUsers", mock.Anything).Return([]*models.User{
		{UID: "s-1", Role: models.RoleStudent, PasswordHash: "hash"},
		{UID: "s-2", Role: models.RoleStudent},
		{UID: "t-1", Role: models.RoleTutor},
		{UID: "a-1", Role: models.RoleAdmin},
	}, nil).Once()

	users, counts, err := svc.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 4)
	assert.Equal(t, UserCounts{Total: 4, Students: 2, Tutors: 1, Admins: 1}, counts)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	repo.AssertExpectations(t)
}

func TestAdminService_ListRequests(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, new(CacheMock), newNoopLogger())

	repo.On("ListAllRequests", mock.Anything).Return([]*models.TuitionRequestInfo{
		{Request: models.TuitionRequest{ID: 1, Status: models.RequestStatusPending}},
		{Request: models.TuitionRequest{ID: 2, Status: models.RequestStatusAccepted}},
		{Request: models.TuitionRequest{ID: 3, Status: models.RequestStatusAccepted}},
		{Request: models.TuitionRequest{ID: 4, Status: models.RequestStatusRejected}},
	}, nil).Once()

	requests, counts, err := svc.ListRequests(context.Background())
	assert.NoError(t, err)
	assert.Len(t, requests, 4)
	assert.Equal(t, RequestCounts{Total: 4, Pending: 1, Accepted: 2, Rejected: 1}, counts)

	repo.AssertExpectations(t)
}

func TestAdminService_ToggleBlock(t *testing.T) {
	t.Run("blocks and unblocks", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewAdminService(repo, cache, newNoopLogger())

		repo.On("ToggleBlock", mock.Anything, "s-1").
			Return(&models.User{UID: "s-1", Role: models.RoleStudent, IsBlocked: true, PasswordHash: "hash"}, nil).Once()

		user, err := svc.ToggleBlock(context.Background(), "s-1")
		assert.NoError(t, err)
		assert.True(t, user.IsBlocked)
		assert.Empty(t, user.PasswordHash)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)

		repo.AssertExpectations(t)
	})

	t.Run("blocked tutor disappears from directory cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewAdminService(repo, cache, newNoopLogger())

		repo.On("ToggleBlock", mock.Anything, "t-9").
			Return(&models.User{UID: "t-9", Role: models.RoleTutor, IsBlocked: true}, nil).Once()
		cache.On("Invalidate", "tutors:directory").Return(nil).Once()
		cache.On("Invalidate", "tutor:t-9").Return(nil).Once()

		user, err := svc.ToggleBlock(context.Background(), "t-9")
		assert.NoError(t, err)
		assert.True(t, user.IsBlocked)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewAdminService(repo, new(CacheMock), newNoopLogger())

		repo.On("ToggleBlock", mock.Anything, "missing").
			Return(nil, apperr.ErrNotFound).Once()

		_, err := svc.ToggleBlock(context.Background(), "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		repo.AssertExpectations(t)
	})
}
