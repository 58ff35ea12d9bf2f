package pgdb

import (
	"context"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const orderStatusSubmitted = "submitted"

// OrderRepo сохраняет отправленные заказы. Create ожидает транзакцию в контексте,
// чтобы заказ, его позиции и событие outbox фиксировались вместе.
type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create сохраняет заказ с позициями и вкусами половинок и возвращает его идентификатор.
func (o *OrderRepo) Create(ctx context.Context, order *usecase.OrderSubmission) (int64, error) {
	conn := tr.ConnFromCtx(ctx, o.pool)

	orderQuery := `
		INSERT INTO orders (total, contact_number, whatsapp_message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	var orderID int64
	if err := conn.QueryRow(ctx, orderQuery,
		order.Total, order.ContactNumber, order.Message, orderStatusSubmitted,
	).Scan(&orderID); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, portion, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	flavorsQuery := `
		INSERT INTO order_item_flavors (order_item_id, position, flavor)
		SELECT $1, ord, flavor FROM unnest($2::text[]) WITH ORDINALITY AS f(flavor, ord)
	`

	for _, line := range order.Lines {
		var itemID int64
		if err := conn.QueryRow(ctx, itemQuery,
			orderID, line.ProductID, string(line.Portion), line.Quantity, line.UnitPriceUsed,
		).Scan(&itemID); err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}

		if len(line.Flavors) == 0 {
			continue
		}

		if _, err := conn.Exec(ctx, flavorsQuery, itemID, line.Flavors); err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return orderID, nil
}
