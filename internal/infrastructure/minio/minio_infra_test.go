package minio

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	calls int
	err   error
}

func (r *countingRepo) PresignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.calls++
	return fmt.Sprintf("https://s3.local/%s?ttl=%s&n=%d", key, ttl, r.calls), nil
}

func TestPresignedURL_ReusedUntilHalfLife(t *testing.T) {
	repo := &countingRepo{}
	infra := NewMinioInfrastructure(repo, 10*time.Minute)

	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	infra.now = func() time.Time { return now }

	first, err := infra.PresignedURL(context.Background(), "/pizza/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/pizza/1.jpg?ttl=10m0s&n=1", first)

	now = now.Add(4 * time.Minute)
	again, err := infra.PresignedURL(context.Background(), "pizza/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, repo.calls)

	now = now.Add(2 * time.Minute)
	renewed, err := infra.PresignedURL(context.Background(), "pizza/1.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, first, renewed)
	assert.Equal(t, 2, repo.calls)
}

func TestPresignedURL_Errors(t *testing.T) {
	infra := NewMinioInfrastructure(&countingRepo{err: errors.New("minio down")}, time.Minute)

	_, err := infra.PresignedURL(context.Background(), "  ")
	assert.ErrorIs(t, err, e.ErrStatusBadRequest)

	_, err = infra.PresignedURL(context.Background(), "pizza/1.jpg")
	assert.EqualError(t, err, "MinioInfrastructure.PresignedURL: minio down")
}
