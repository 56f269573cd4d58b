package service

import (
	"condominio/internal/entities"
	"condominio/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUFServiceCaches(t *testing.T) {
	fetcher := &fakeUF{value: &entities.UFValue{ValueCLP: 20939.49, Date: "2025-10-25"}}
	svc := NewUFService(fetcher, repository.NewMemoryUFCache(), testLogger)

	for i := 0; i < 3; i++ {
		uf, err := svc.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 20939.49, uf.ValueCLP)
	}
	assert.Equal(t, int32(1), fetcher.calls.Load())

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestUFServiceError(t *testing.T) {
	svc := NewUFService(&fakeUF{err: errors.New("boom")}, repository.NewMemoryUFCache(), testLogger)
	_, err := svc.Current(context.Background())
	assert.Error(t, err)
}

func TestJobServiceSchedule(t *testing.T) {
	jobs := NewJobService(testLogger)
	assert.Error(t, jobs.Schedule("not a spec", "bad", time.Second, func(ctx context.Context) error { return nil }))

	ran := make(chan struct{}, 1)
	require.NoError(t, jobs.Schedule("@every 1s", "tick", time.Second, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))
	jobs.Start()
	defer jobs.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
