package tr

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewManager создаёт менеджер транзакций поверх пула pgx.
func NewManager(pool *pgxpool.Pool) *manager.Manager {
	return manager.Must(trmpgx.NewDefaultFactory(pool))
}

// ConnFromCtx возвращает активную транзакцию из контекста, либо пул, если транзакции нет.
func ConnFromCtx(ctx context.Context, pool *pgxpool.Pool) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, pool)
}
