package minio

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo реализует репозиторий фотографий продуктов поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// PresignedURL возвращает подписанную GET-ссылку на фото. Браузер может кэшировать
// ответ, пока ссылка действительна.
func (i *ImageRepo) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-cache-control", "public, max-age="+strconv.Itoa(int(ttl.Seconds())))

	u, err := i.mc.PresignedGetObject(ctx, i.cfg.BucketName, key, ttl, params)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
