package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/pizzeria-backend/pkg/clients"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// CacheRepo хранит снимки продуктов каталога под ключами <namespace>:product:<id>.
// Кэш вспомогательный: ошибки записи только логируются.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает найденные в кэше продукты. Повреждённые и чужие записи
// считаются промахом и удаляются одной командой.
func (r *CacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	if len(ids) == 0 {
		return map[int64]domain.Product{}, nil
	}

	keys := r.productKeys(ids)
	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make(map[int64]domain.Product, len(values))
	var stale []string
	for i, val := range values {
		if val == nil {
			continue
		}

		product, err := r.decode(ids[i], val)
		if err != nil {
			r.logger.Warnf("drop cached product %s: %v", keys[i], err)
			stale = append(stale, keys[i])
			continue
		}
		hits[ids[i]] = product
	}

	if len(stale) > 0 {
		if err := r.client.Client.Del(ctx, stale...).Err(); err != nil {
			r.logger.Warnf("Redis DEL of stale products failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
	}

	return hits, nil
}

// SetProducts записывает снимки одним pipeline с TTL из конфигурации.
func (r *CacheRepo) SetProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	models := r.conv.ToArrRedisModel(products)
	_, err := r.client.Client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, model := range models {
			data, err := json.Marshal(model)
			if err != nil {
				r.logger.Warnf("skip caching product %d: %v", model.ID, err)
				continue
			}
			pipe.Set(ctx, r.productKey(model.ID), data, r.cfg.ProductTTL)
		}
		return nil
	})
	if err != nil {
		r.logger.Warnf("Cache pipeline failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts сбрасывает снимки, например после изменения остатков.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if err := r.client.Client.Del(ctx, r.productKeys(ids)...).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

func (r *CacheRepo) decode(id int64, val interface{}) (domain.Product, error) {
	var raw []byte
	switch v := val.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return domain.Product{}, fmt.Errorf("unexpected value type %T", val)
	}

	var model converter.ProductRedisModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return domain.Product{}, err
	}
	if model.ID != id {
		return domain.Product{}, fmt.Errorf("cached id %d does not match key", model.ID)
	}

	return *r.conv.ToEntity(&model), nil
}

func (r *CacheRepo) productKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	return keys
}

func (r *CacheRepo) productKey(id int64) string {
	return r.cfg.Namespace + ":product:" + strconv.FormatInt(id, 10)
}
