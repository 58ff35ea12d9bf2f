package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/pizzeria-backend/pkg/clients"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CartRepo хранит корзины в Redis под ключом <namespace>:cart:<sessionID>.
type CartRepo struct {
	client *clients.RedisClient
	conv   converter.CartConverter
	cfg    *cfg.RedisCfg
}

func NewCartRepo(client *clients.RedisClient, conv converter.CartConverter, cfg *cfg.RedisCfg) *CartRepo {
	return &CartRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
	}
}

// Get возвращает корзину сессии. Отсутствующая корзина возвращается пустой.
func (c *CartRepo) Get(ctx context.Context, sessionID string) (*domain.Order, error) {
	data, err := c.client.Client.Get(ctx, c.cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return &domain.Order{}, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.CartRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Save перезаписывает корзину и продлевает её TTL. Пустая корзина удаляется.
func (c *CartRepo) Save(ctx context.Context, sessionID string, order *domain.Order) error {
	if order.IsEmpty() {
		return c.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(c.conv.ToRedisModel(order))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.cartKey(sessionID), data, c.cfg.CartTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Client.Del(ctx, c.cartKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) cartKey(sessionID string) string {
	return c.cfg.Namespace + ":cart:" + sessionID
}
