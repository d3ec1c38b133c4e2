// File: internal/jobs/orphan_sweep_test.go
package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/filestorage"
	"github.com/PhangZT0803/EcoTrip/internal/submission"
)

// MockSubmissionRepository is a mock type for submission.Repository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Append(ctx context.Context, sub *submission.Submission) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionRepository) ExistsByPhotoURL(ctx context.Context, url string) (bool, error) {
	args := m.Called(ctx, url)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubmissionRepository) FindByUserUID(ctx context.Context, uid string) ([]submission.Submission, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]submission.Submission), args.Error(1)
}

// MockObjectStore is a mock type for filestorage.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) ([]filestorage.ObjectInfo, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]filestorage.ObjectInfo), args.Error(1)
}

func newTestJob(repo *MockSubmissionRepository, store *MockObjectStore) *OrphanSweepJob {
	cfg := &config.Config{OrphanSweepGraceHours: 24}
	return NewOrphanSweepJob(repo, store, zap.NewNop(), cfg)
}

func TestSweep_DeletesOnlyOldUnreferencedObjects(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubmissionRepository)
	store := new(MockObjectStore)
	job := newTestJob(repo, store)

	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now().Add(-1 * time.Hour)

	store.On("List", ctx, "submissions/").Return([]filestorage.ObjectInfo{
		{Key: "submissions/orphan.jpg", Created: old},
		{Key: "submissions/referenced.jpg", Created: old},
		{Key: "submissions/fresh.jpg", Created: fresh},
	}, nil)
	store.On("PublicURL", "submissions/orphan.jpg").Return("https://b/submissions/orphan.jpg")
	store.On("PublicURL", "submissions/referenced.jpg").Return("https://b/submissions/referenced.jpg")
	repo.On("ExistsByPhotoURL", ctx, "https://b/submissions/orphan.jpg").Return(false, nil)
	repo.On("ExistsByPhotoURL", ctx, "https://b/submissions/referenced.jpg").Return(true, nil)
	store.On("Delete", ctx, "submissions/orphan.jpg").Return(nil)

	swept, err := job.Sweep(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, swept)
	store.AssertNotCalled(t, "Delete", ctx, "submissions/referenced.jpg")
	store.AssertNotCalled(t, "Delete", ctx, "submissions/fresh.jpg")
	// Fresh objects are never even checked for references.
	repo.AssertNumberOfCalls(t, "ExistsByPhotoURL", 2)
}

func TestSweep_InconclusiveLookupSkipsDeletion(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubmissionRepository)
	store := new(MockObjectStore)
	job := newTestJob(repo, store)

	old := time.Now().Add(-48 * time.Hour)
	store.On("List", ctx, "submissions/").Return([]filestorage.ObjectInfo{
		{Key: "submissions/maybe.jpg", Created: old},
	}, nil)
	store.On("PublicURL", "submissions/maybe.jpg").Return("https://b/submissions/maybe.jpg")
	repo.On("ExistsByPhotoURL", ctx, "https://b/submissions/maybe.jpg").
		Return(false, errors.New("unavailable"))

	swept, err := job.Sweep(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, swept)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSweep_ListFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubmissionRepository)
	store := new(MockObjectStore)
	job := newTestJob(repo, store)

	store.On("List", ctx, "submissions/").Return(nil, errors.New("unavailable"))

	_, err := job.Sweep(ctx)

	assert.Error(t, err)
}

func TestSweep_DeleteFailureContinues(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubmissionRepository)
	store := new(MockObjectStore)
	job := newTestJob(repo, store)

	old := time.Now().Add(-48 * time.Hour)
	store.On("List", ctx, "submissions/").Return([]filestorage.ObjectInfo{
		{Key: "submissions/a.jpg", Created: old},
		{Key: "submissions/b.jpg", Created: old},
	}, nil)
	store.On("PublicURL", mock.AnythingOfType("string")).
		Return("https://b/x.jpg")
	repo.On("ExistsByPhotoURL", ctx, mock.Anything).Return(false, nil)
	store.On("Delete", ctx, "submissions/a.jpg").Return(errors.New("unavailable"))
	store.On("Delete", ctx, "submissions/b.jpg").Return(nil)

	swept, err := job.Sweep(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, swept)
}
