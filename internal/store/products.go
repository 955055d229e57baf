package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
)

const productColumns = `id, sku, name, description, unit_price, tax_rate, is_active, created_at, updated_at`

type ProductInput struct {
	SKU         string              `json:"sku" validate:"required,min=1,max=64"`
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Description *string             `json:"description"`
	UnitPrice   decimal.Decimal     `json:"unit_price"`
	TaxRate     decimal.NullDecimal `json:"tax_rate"`
	IsActive    *bool               `json:"is_active"`
}

var (
	validate       = validator.New()
	defaultTaxRate = decimal.NewFromInt(10)
	maxTaxRate     = decimal.NewFromInt(100)
)

// Validate checks the catalog constraints and fills in the default tax rate.
func (in *ProductInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", database.ErrInvalidProduct, err)
	}
	if !in.UnitPrice.IsPositive() {
		return fmt.Errorf("%w: unit price must be greater than zero", database.ErrInvalidProduct)
	}
	if !in.TaxRate.Valid {
		in.TaxRate = decimal.NewNullDecimal(defaultTaxRate)
	}
	if in.TaxRate.Decimal.IsNegative() || in.TaxRate.Decimal.GreaterThan(maxTaxRate) {
		return fmt.Errorf("%w: tax rate must be between 0 and 100", database.ErrInvalidProduct)
	}
	return nil
}

func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var p models.Product
	err := s.db.GetContext(ctx, &p,
		`INSERT INTO products (sku, name, description, unit_price, tax_rate, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+productColumns,
		in.SKU, in.Name, in.Description, in.UnitPrice, in.TaxRate.Decimal, isActive(in))
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintProductSKU) {
			return nil, fmt.Errorf("create product %s: %w", in.SKU, database.ErrSKUExists)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	return &p, nil
}

// UpsertProduct creates the product or overwrites the catalog fields of the
// product with the same SKU.
func (s *Store) UpsertProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var p models.Product
	err := s.db.GetContext(ctx, &p,
		`INSERT INTO products (sku, name, description, unit_price, tax_rate, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (sku) DO UPDATE
		 SET name = EXCLUDED.name,
		     description = EXCLUDED.description,
		     unit_price = EXCLUDED.unit_price,
		     tax_rate = EXCLUDED.tax_rate,
		     is_active = EXCLUDED.is_active,
		     updated_at = NOW()
		 RETURNING `+productColumns,
		in.SKU, in.Name, in.Description, in.UnitPrice, in.TaxRate.Decimal, isActive(in))
	if err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", in.SKU, err)
	}

	return &p, nil
}

func isActive(in ProductInput) bool {
	return in.IsActive == nil || *in.IsActive
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return getProduct(ctx, s.db, id)
}

func getProduct(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Product, error) {
	var p models.Product
	err := sqlx.GetContext(ctx, q, &p, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	return &p, nil
}

// ListActiveProducts returns the products that can be sold, ordered by id.
func (s *Store) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}
