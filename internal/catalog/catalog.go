package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopfront/shopfront/internal/db/gen"
	"github.com/shopfront/shopfront/internal/money"
)

const (
	DefaultPageSize = 48
	MaxPageSize     = 200
)

var ErrNoStore = errors.New("catalog: store not configured")

type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	Price       money.Amount
	ImageURL    string
}

// Lister returns the products shown on the listing page, newest first.
type Lister interface {
	ListProducts(ctx context.Context, limit int) ([]Product, error)
}

type queryRunner interface {
	ListListedProducts(ctx context.Context, limit int32) ([]gen.Product, error)
}

// Store reads the catalog from Postgres.
type Store struct {
	Q queryRunner
}

func NewStore(q queryRunner) *Store {
	return &Store{Q: q}
}

func (s *Store) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	if s == nil || s.Q == nil {
		return nil, ErrNoStore
	}
	rows, err := s.Q.ListListedProducts(ctx, int32(ClampLimit(limit)))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// ClampLimit keeps a requested page size within [1, MaxPageSize].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}

func fromRow(row gen.Product) Product {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		name = strings.TrimSpace(row.Sku)
	}
	return Product{
		ID:          row.ID,
		SKU:         strings.TrimSpace(row.Sku),
		Name:        name,
		Description: strings.TrimSpace(row.Description),
		Price:       money.New(row.PriceCents, row.Currency),
		ImageURL:    strings.TrimSpace(row.ImageUrl),
	}
}
