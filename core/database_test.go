package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivery-desk/v2/internal/types"
)

func newTestCache(t *testing.T) *RecordCache {
	t.Helper()
	cache, err := NewRecordCache(t.TempDir(), "")
	require.NoError(t, err)
	require.NoError(t, cache.Connect())
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestDeliveryCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	scheduled := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	deliveries := []types.Delivery{
		{ID: 1, TrackingCode: "DD-1001", Customer: "Acme Foods", Address: "1 Dock Rd", Status: "pending", Driver: "Sam", ScheduledAt: &scheduled, CODAmount: 125.50},
		{ID: 2, TrackingCode: "DD-1002", Customer: "Brill Traders", Status: "delivered", Driver: "Ana"},
	}
	require.NoError(t, cache.SaveDeliveries(deliveries))

	got, err := cache.Deliveries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "DD-1001", got[0].TrackingCode)
	require.NotNil(t, got[0].ScheduledAt)
	assert.True(t, got[0].ScheduledAt.Equal(scheduled))
	assert.Nil(t, got[1].ScheduledAt)
	assert.Equal(t, 125.50, got[0].CODAmount)
}

func TestSaveDeliveriesReplacesPreviousSet(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.SaveDeliveries([]types.Delivery{{ID: 1, TrackingCode: "DD-1", Customer: "A"}}))
	require.NoError(t, cache.SaveDeliveries([]types.Delivery{{ID: 2, TrackingCode: "DD-2", Customer: "B"}}))

	got, err := cache.Deliveries()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "DD-2", got[0].TrackingCode)
}

func TestCustomerCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	customers := []types.Customer{
		{ID: 3, Name: "Acme Foods", Email: "orders@acme.example", Phone: "555-0101", TotalOrders: 42},
	}
	require.NoError(t, cache.SaveCustomers(customers))

	got, err := cache.Customers()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme Foods", got[0].Name)
	assert.Equal(t, 42, got[0].TotalOrders)
}

func TestClearEmptiesAllTables(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.SaveDeliveries([]types.Delivery{{ID: 1, TrackingCode: "DD-1", Customer: "A"}}))
	require.NoError(t, cache.SaveCustomers([]types.Customer{{ID: 1, Name: "A"}}))

	require.NoError(t, cache.Clear())

	deliveries, err := cache.Deliveries()
	require.NoError(t, err)
	assert.Empty(t, deliveries)

	customers, err := cache.Customers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}
