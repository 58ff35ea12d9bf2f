package minio

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
)

// MinioInfrastructure выдаёт ссылки на фото продуктов и переиспользует их,
// пока до истечения подписи остаётся больше половины срока.
type MinioInfrastructure struct {
	imageRepo usecase.ImageRepository
	ttl       time.Duration
	now       func() time.Time

	mu    sync.Mutex
	links map[string]presignedLink
}

type presignedLink struct {
	url       string
	refreshAt time.Time
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, ttl time.Duration) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo: imageRepo,
		ttl:       ttl,
		now:       time.Now,
		links:     make(map[string]presignedLink),
	}
}

// PresignedURL возвращает подписанную ссылку на объект key.
func (m *MinioInfrastructure) PresignedURL(ctx context.Context, key string) (string, error) {
	const op = "MinioInfrastructure.PresignedURL"

	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", e.Wrap(op, e.ErrStatusBadRequest)
	}

	now := m.now()

	m.mu.Lock()
	link, ok := m.links[key]
	m.mu.Unlock()
	if ok && now.Before(link.refreshAt) {
		return link.url, nil
	}

	url, err := m.imageRepo.PresignedURL(ctx, key, m.ttl)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	m.mu.Lock()
	m.links[key] = presignedLink{url: url, refreshAt: now.Add(m.ttl / 2)}
	m.mu.Unlock()

	return url, nil
}
