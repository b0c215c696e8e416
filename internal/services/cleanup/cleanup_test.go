package cleanup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	retention time.Duration
	removed   int64
	err       error
	calls     atomic.Int32
}

func (f *fakeJobs) CleanupOldJobs(_ context.Context, retention time.Duration) (int64, error) {
	f.calls.Add(1)
	f.retention = retention
	return f.removed, f.err
}

func TestRunOnceRemovesOldTempFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-2 * time.Hour)

	files := map[string]time.Time{
		"/data/marks/.marks_123.tmp":           old,
		"/data/marks/.marks_456.tmp":           now.Add(-time.Minute),
		"/data/marks/marks_2024-05-01_001.json": old,
		"/data/.doctor-789":                    old,
		"/data/fragments/clip.tmp":             old,
	}
	for path, mod := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0644))
		require.NoError(t, fs.Chtimes(path, mod, mod))
	}

	jobs := &fakeJobs{removed: 3}
	svc := NewService(fs, Config{
		Dirs:         []string{"/data", "/missing"},
		MaxAge:       time.Hour,
		Jobs:         jobs,
		JobRetention: 24 * time.Hour,
	}, nil)
	svc.clock = func() time.Time { return now }

	res := svc.RunOnce(context.Background())
	assert.Equal(t, 2, res.TempFiles)
	assert.Equal(t, int64(3), res.Jobs)
	assert.Equal(t, 24*time.Hour, jobs.retention)

	for path, gone := range map[string]bool{
		"/data/marks/.marks_123.tmp":            true,
		"/data/.doctor-789":                     true,
		"/data/marks/.marks_456.tmp":            false,
		"/data/marks/marks_2024-05-01_001.json": false,
		"/data/fragments/clip.tmp":              false,
	} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.Equal(t, !gone, exists, path)
	}
}

func TestRunOnceJobErrorDoesNotStopPass(t *testing.T) {
	svc := NewService(afero.NewMemMapFs(), Config{
		Jobs:         &fakeJobs{err: errors.New("db closed")},
		JobRetention: time.Hour,
	}, nil)

	res := svc.RunOnce(context.Background())
	assert.Zero(t, res.Jobs)
}

func TestStartStop(t *testing.T) {
	jobs := &fakeJobs{}
	svc := NewService(afero.NewMemMapFs(), Config{Jobs: jobs, JobRetention: time.Hour, Interval: time.Hour}, nil)

	svc.Start(context.Background())
	svc.Start(context.Background())
	assert.Eventually(t, func() bool { return jobs.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	svc.Stop()
	svc.Stop()
	assert.Equal(t, int32(1), jobs.calls.Load())
}
