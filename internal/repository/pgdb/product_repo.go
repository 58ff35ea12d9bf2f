package pgdb

import (
	"context"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `
	pr.id, pr.name, pr.category_id, cat.slug, pr.whole_price, pr.half_price,
	pr.stock_quantity, pr.photo_key, pr.created_at, pr.updated_at, pr.is_archived
`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// GetByIDs возвращает продукты по их идентификаторам, включая слаг категории.
// Архивные продукты тоже возвращаются: решение об их использовании принимает вызывающий.
func (p *ProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1)
	`

	rows, err := tr.ConnFromCtx(ctx, p.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.scanProducts(rows)
}

// ListActive возвращает активные продукты каталога: сначала пиццы, затем по имени.
func (p *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE NOT pr.is_archived AND NOT cat.is_archived
		ORDER BY (cat.slug = 'pizza') DESC, cat.name, pr.name
	`

	rows, err := tr.ConnFromCtx(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.scanProducts(rows)
}

// DecrementStock уменьшает остаток продукта, не опуская его ниже нуля.
// Продукты без учёта остатков не изменяются.
func (p *ProductRepo) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = GREATEST(stock_quantity - $2, 0), updated_at = NOW()
		WHERE id = $1 AND stock_quantity IS NOT NULL
	`

	if _, err := tr.ConnFromCtx(ctx, p.pool).Exec(ctx, query, productID, quantity); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.CategoryID, &model.CategorySlug, &model.WholePrice,
			&model.HalfPrice, &model.StockQuantity, &model.PhotoKey,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
