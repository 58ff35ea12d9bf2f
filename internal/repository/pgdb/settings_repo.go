package pgdb

import (
	"context"

	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SettingsRepo хранит настройки магазина как пары ключ-значение.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (s *SettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := tr.ConnFromCtx(ctx, s.pool).Query(ctx, `SELECT key, value FROM shop_settings`)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Upsert сохраняет все переданные ключи одним запросом.
func (s *SettingsRepo) Upsert(ctx context.Context, values map[string]string) error {
	query := `
		INSERT INTO shop_settings (key, value)
		SELECT * FROM unnest($1::text[], $2::text[])
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	keys := make([]string, 0, len(values))
	vals := make([]string, 0, len(values))
	for key, value := range values {
		keys = append(keys, key)
		vals = append(vals, value)
	}

	if _, err := tr.ConnFromCtx(ctx, s.pool).Exec(ctx, query, keys, vals); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
