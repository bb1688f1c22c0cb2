package repositories

import (
	"database/sql"
	"errors"

	"storeapi/internal/config"
	"storeapi/internal/domain"
	"storeapi/internal/domain/models"
)

// ProductRepository wraps read access to products and product_meta.
type ProductRepository struct {
	DB *sql.DB
}

func (r ProductRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// GetByID loads one product snapshot. Price is scanned as text so the
// stored representation survives unchanged.
func (r ProductRepository) GetByID(id int64) (models.Product, error) {
	if id <= 0 {
		return models.Product{}, domain.NotFoundError{Resource: "product"}
	}

	var p models.Product
	var sku, name, price sql.NullString
	err := r.db().QueryRow(`
		SELECT id, COALESCE(sku,''), COALESCE(name,''), COALESCE(regular_price,'')
		FROM products WHERE id=? LIMIT 1`, id).Scan(&p.ID, &sku, &name, &price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, domain.NotFoundError{Resource: "product", Err: err}
		}
		return models.Product{}, err
	}
	p.SKU = sku.String
	p.Name = name.String
	p.RegularPrice = price.String
	return p, nil
}

// GetMeta returns a product attribute value, or "" when the key is absent.
func (r ProductRepository) GetMeta(productID int64, key string) (string, error) {
	var value sql.NullString
	err := r.db().QueryRow(`
		SELECT meta_value FROM product_meta
		WHERE product_id=? AND meta_key=? LIMIT 1`, productID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value.String, nil
}
