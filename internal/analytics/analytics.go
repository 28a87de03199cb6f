package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopfront/shopfront/internal/db/gen"
	"github.com/shopfront/shopfront/internal/money"
)

const (
	DefaultWindow   = 30 * 24 * time.Hour
	DefaultTopLimit = 5
)

var ErrNoStore = errors.New("analytics: store not configured")

// Summary aggregates orders placed since a point in time.
type Summary struct {
	Since     time.Time
	Orders    int64
	Customers int64
	Revenue   money.Amount
}

// AverageOrder is zero when there are no orders.
func (s Summary) AverageOrder() money.Amount {
	if s.Orders == 0 {
		return money.New(0, s.Revenue.Currency)
	}
	return money.New(s.Revenue.Cents/s.Orders, s.Revenue.Currency)
}

type TopProduct struct {
	ProductID int64
	Name      string
	UnitsSold int64
	Revenue   money.Amount
}

// Source serves the admin analytics page.
type Source interface {
	Summary(ctx context.Context, since time.Time) (Summary, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
}

type queryRunner interface {
	GetSalesSummary(ctx context.Context, placedAt pgtype.Timestamptz) (gen.GetSalesSummaryRow, error)
	ListTopProducts(ctx context.Context, arg gen.ListTopProductsParams) ([]gen.ListTopProductsRow, error)
}

// Store computes analytics from the orders tables in one currency.
type Store struct {
	Q        queryRunner
	Currency string
}

func NewStore(q queryRunner, currency string) *Store {
	return &Store{Q: q, Currency: currency}
}

func (s *Store) Summary(ctx context.Context, since time.Time) (Summary, error) {
	if s == nil || s.Q == nil {
		return Summary{}, ErrNoStore
	}
	row, err := s.Q.GetSalesSummary(ctx, timestamptz(since))
	if err != nil {
		return Summary{}, fmt.Errorf("sales summary: %w", err)
	}
	return Summary{
		Since:     since,
		Orders:    row.OrderCount,
		Customers: row.CustomerCount,
		Revenue:   money.New(row.RevenueCents, s.Currency),
	}, nil
}

func (s *Store) TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	if s == nil || s.Q == nil {
		return nil, ErrNoStore
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := s.Q.ListTopProducts(ctx, gen.ListTopProductsParams{
		PlacedAt: timestamptz(since),
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopProduct{
			ProductID: row.ID,
			Name:      strings.TrimSpace(row.Name),
			UnitsSold: row.UnitsSold,
			Revenue:   money.New(row.RevenueCents, s.Currency),
		})
	}
	return out, nil
}

// WindowStart returns now minus window, falling back to DefaultWindow.
func WindowStart(now time.Time, window time.Duration) time.Time {
	if window <= 0 {
		window = DefaultWindow
	}
	return now.Add(-window).UTC()
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}
