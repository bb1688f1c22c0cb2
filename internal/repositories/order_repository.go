package repositories

import (
	"database/sql"
	"errors"

	"storeapi/internal/config"
	"storeapi/internal/domain"
	"storeapi/internal/domain/models"
)

// OrderRepository wraps read access to orders and order_items.
type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// GetByID loads one order snapshot.
func (r OrderRepository) GetByID(id int64) (models.Order, error) {
	if id <= 0 {
		return models.Order{}, domain.NotFoundError{Resource: "order"}
	}

	var o models.Order
	var number, createdAt sql.NullString
	err := r.db().QueryRow(`
		SELECT id, COALESCE(order_number,''), COALESCE(user_id,0), COALESCE(status,''), COALESCE(created_at,'')
		FROM orders WHERE id=? LIMIT 1`, id).Scan(
		&o.ID,
		&number,
		&o.UserID,
		&o.Status,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, domain.NotFoundError{Resource: "order", Err: err}
		}
		return models.Order{}, err
	}
	o.OrderNumber = number.String
	o.CreatedAt = createdAt.String
	return o, nil
}

// ListItems returns the order's line items in insertion order.
func (r OrderRepository) ListItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db().Query(`
		SELECT id, order_id, COALESCE(product_id,0), COALESCE(quantity,0)
		FROM order_items WHERE order_id=? ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns recent orders for the admin listing, newest first.
func (r OrderRepository) List(limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db().Query(`
		SELECT id, COALESCE(order_number,''), COALESCE(user_id,0), COALESCE(status,''), COALESCE(created_at,'')
		FROM orders ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		var o models.Order
		var number, createdAt sql.NullString
		if err := rows.Scan(&o.ID, &number, &o.UserID, &o.Status, &createdAt); err != nil {
			return nil, err
		}
		o.OrderNumber = number.String
		o.CreatedAt = createdAt.String
		out = append(out, o)
	}
	return out, rows.Err()
}
