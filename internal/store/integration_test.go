//go:build integration

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/safar/pos-backend/internal/config"
	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
	"github.com/safar/pos-backend/internal/pricing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := postgres.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := postgres.Host(ctx)
	require.NoError(t, err)
	port, err := postgres.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	require.NoError(t, database.Migrate(dsn, database.MigrateUp))

	db, err := database.NewConnection(ctx, &config.DatabaseConfig{
		URL:             dsn,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db, database.DefaultTxOptions())
}

func seedCatalog(t *testing.T, s *Store) (*models.User, *models.Product) {
	t.Helper()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "clerk@example.com", "hash", models.UserRoleClerk)
	require.NoError(t, err)

	product, err := s.CreateProduct(ctx, ProductInput{
		SKU:       "COFFEE-L",
		Name:      "Large coffee",
		UnitPrice: money("100.00"),
		TaxRate:   decimal.NewNullDecimal(money("10.00")),
	})
	require.NoError(t, err)

	return user, product
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestIntegrationCreateOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user, product := seedCatalog(t, s)

	order, err := s.CreateOrder(ctx, CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 2}},
		Payments: []pricing.Tender{
			{Method: models.PaymentMethodCash, Amount: money("220.00")},
		},
	}, user.ID)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.True(t, money("220.00").Equal(order.Total))

	loaded, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNo, loaded.OrderNo)
	assert.True(t, money("20.00").Equal(loaded.TaxTotal))
	require.Len(t, loaded.Items, 1)
	assert.True(t, money("220.00").Equal(loaded.Items[0].LineTotal))
	require.Len(t, loaded.Payments, 1)
	assert.Equal(t, models.PaymentMethodCash, loaded.Payments[0].Method)

	summary, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalProducts)
	assert.Equal(t, int64(1), summary.TotalOrders)
	assert.True(t, money("220.00").Equal(summary.TotalRevenue))
	assert.True(t, money("220.00").Equal(summary.TotalPayments))
}

func TestIntegrationRejectedOrderWritesNothing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user, product := seedCatalog(t, s)

	_, err := s.CreateOrder(ctx, CreateOrderRequest{
		Items:    []OrderLineRequest{{ProductID: product.ID, Quantity: 1}},
		Payments: []pricing.Tender{{Method: models.PaymentMethodCard, Amount: money("-1")}},
	}, user.ID)
	require.ErrorIs(t, err, pricing.ErrInvalidPaymentAmount)

	_, err = s.CreateOrder(ctx, CreateOrderRequest{
		Items: []OrderLineRequest{{ProductID: product.ID + 100, Quantity: 1}},
	}, user.ID)
	require.ErrorIs(t, err, database.ErrProductUnavailable)

	assert.Zero(t, countRows(t, s.DB(), "orders"))
	assert.Zero(t, countRows(t, s.DB(), "order_items"))
	assert.Zero(t, countRows(t, s.DB(), "payments"))
}

func TestIntegrationConcurrentOrdersHaveUniqueNumbers(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user, product := seedCatalog(t, s)

	const concurrency = 20
	var wg sync.WaitGroup
	results := make(chan *models.Order, concurrency)
	errs := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := s.CreateOrder(ctx, CreateOrderRequest{
				Items: []OrderLineRequest{{ProductID: product.ID, Quantity: 1}},
			}, user.ID)
			if err != nil {
				errs <- err
				return
			}
			results <- order
		}()
	}

	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Errorf("create order: %v", err)
	}

	seen := make(map[string]bool)
	for order := range results {
		assert.False(t, seen[order.OrderNo], "duplicate order number %s", order.OrderNo)
		seen[order.OrderNo] = true
	}
	assert.Equal(t, concurrency, countRows(t, s.DB(), "orders"))
}

func TestIntegrationListOrdersPage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user, product := seedCatalog(t, s)

	for i := 0; i < 5; i++ {
		_, err := s.CreateOrder(ctx, CreateOrderRequest{
			Items: []OrderLineRequest{{ProductID: product.ID, Quantity: i + 1}},
		}, user.ID)
		require.NoError(t, err)
	}

	all, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	first, err := s.ListOrdersPage(ctx, "", 3)
	require.NoError(t, err)
	require.Len(t, first.Orders, 3)
	assert.True(t, first.HasMore)

	second, err := s.ListOrdersPage(ctx, first.NextCursor, 3)
	require.NoError(t, err)
	require.Len(t, second.Orders, 2)
	assert.False(t, second.HasMore)

	var ids []int64
	for _, o := range append(first.Orders, second.Orders...) {
		ids = append(ids, o.ID)
		assert.Len(t, o.Items, 1)
	}
	var want []int64
	for _, o := range all {
		want = append(want, o.ID)
	}
	assert.Equal(t, want, ids)
}

func TestIntegrationDuplicateSKUAndEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)

	_, err := s.CreateProduct(ctx, ProductInput{SKU: "COFFEE-L", Name: "Dup", UnitPrice: money("1.00")})
	require.ErrorIs(t, err, database.ErrSKUExists)

	_, err = s.CreateUser(ctx, "clerk@example.com", "hash", models.UserRoleAdmin)
	require.ErrorIs(t, err, database.ErrEmailExists)
}
