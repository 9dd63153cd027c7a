package service

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"go-inventory-reorder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueBelowReorderPointCreatesOneRequest(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "BOLTM10", 15, 10, 50)

	res, err := f.record(p.ID, model.TxIssue, 10)
	require.NoError(t, err)

	assert.Equal(t, 5, res.InventoryLevel)
	assert.Equal(t, 5, f.level(p.ID))
	require.NotNil(t, res.OrderRequest)
	assert.Equal(t, model.OrderStatusNew, res.OrderRequest.Status)
	assert.Equal(t, 50, res.OrderRequest.ReorderQuantity)
	assert.Equal(t, p.ID, res.OrderRequest.ProductID)
	assert.Equal(t, f.vendor.ID, res.OrderRequest.VendorID)

	open := f.store.openOrders(p.ID)
	require.Len(t, open, 1)
	assert.Equal(t, res.OrderRequest.ID, open[0].ID)
	assert.Equal(t, testActor.ID, open[0].CreatedBy)
}

func TestLevelEqualToReorderPointDoesNotTrigger(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "NUTM10", 15, 10, 50)

	res, err := f.record(p.ID, model.TxIssue, 5)
	require.NoError(t, err)

	assert.Equal(t, 10, res.InventoryLevel)
	assert.Nil(t, res.OrderRequest)
	assert.Empty(t, f.store.orders)
}

func TestRepeatedIssuesKeepSingleOpenRequest(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "WASHER8", 20, 10, 30)

	for i := 0; i < 4; i++ {
		_, err := f.record(p.ID, model.TxIssue, 4)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, f.level(p.ID))
	assert.Len(t, f.store.openOrders(p.ID), 1)
	assert.Len(t, f.store.orders, 1)
}

func TestClosedRequestAllowsNewOne(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "SCREW4", 12, 10, 25)

	first, err := f.record(p.ID, model.TxIssue, 5)
	require.NoError(t, err)
	require.NotNil(t, first.OrderRequest)

	_, err = f.orders.UpdateOrderRequest(bg(), first.OrderRequest.ID, &OrderRequestInput{
		ProductID:       p.ID,
		VendorID:        f.vendor.ID,
		ReorderQuantity: 25,
		Status:          string(model.OrderStatusClosed),
	}, testActor)
	require.NoError(t, err)

	second, err := f.record(p.ID, model.TxIssue, 1)
	require.NoError(t, err)
	require.NotNil(t, second.OrderRequest)
	assert.NotEqual(t, first.OrderRequest.ID, second.OrderRequest.ID)
	assert.Len(t, f.store.openOrders(p.ID), 1)
	assert.Len(t, f.store.orders, 2)
}

func TestReceiveAboveReorderPointDoesNotTrigger(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "PIPE20", 0, 5, 10)

	res, err := f.record(p.ID, model.TxReceive, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, res.InventoryLevel)
	assert.Nil(t, res.OrderRequest)
}

func TestReceiveStillBelowReorderPointTriggers(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "PIPE25", 0, 5, 10)

	res, err := f.record(p.ID, model.TxReceive, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.InventoryLevel)
	assert.NotNil(t, res.OrderRequest)
}

func TestZeroReorderQuantitySkipsRequest(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "GLUE1", 3, 10, 0)

	res, err := f.record(p.ID, model.TxIssue, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.InventoryLevel)
	assert.Nil(t, res.OrderRequest)
	assert.Empty(t, f.store.orders)
	assert.Len(t, f.store.txns, 1)
}

func TestTransactionForMissingProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.record(uuid.New(), model.TxIssue, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Empty(t, f.store.txns, "transaction row must be rolled back")
	assert.Empty(t, f.events.types())
}

func TestInvalidTransactionStoresNothing(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "TAPE2", 10, 1, 5)

	_, err := f.record(p.ID, "adjust", 1)
	verr, ok := model.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "transaction_type", verr.Field)

	_, err = f.record(p.ID, model.TxIssue, -3)
	verr, ok = model.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "quantity", verr.Field)
	assert.Contains(t, verr.Message, "transaction_type 'issue'")

	_, err = f.record(uuid.Nil, model.TxIssue, 1)
	verr, ok = model.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "product_id", verr.Field)

	assert.Empty(t, f.store.txns)
	assert.Equal(t, 10, f.level(p.ID))
}

func TestLevelIsNetOfTransactions(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "CABLE3", 0, 10, 40)
	rng := rand.New(rand.NewSource(7))

	want := 0
	for i := 0; i < 50; i++ {
		qty := rng.Intn(9) + 1
		txType := model.TxReceive
		if rng.Intn(2) == 0 {
			txType = model.TxIssue
		}
		_, err := f.record(p.ID, txType, qty)
		require.NoError(t, err)

		if txType == model.TxIssue {
			want -= qty
		} else {
			want += qty
		}
		assert.Equal(t, want, f.level(p.ID))
		assert.LessOrEqual(t, len(f.store.openOrders(p.ID)), 1)
	}

	history, err := f.inventory.GetProductTransactions(bg(), p.ID)
	require.NoError(t, err)
	sum := 0
	for _, txn := range history {
		sum += txn.Delta()
	}
	assert.Equal(t, want, sum)
}

func TestConcurrentIssuesCreateSingleRequest(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "VALVE9", 15, 10, 20)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.record(p.ID, model.TxIssue, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, -5, f.level(p.ID))
	assert.Len(t, f.store.openOrders(p.ID), 1)
}

func TestRecordTransactionPublishesEvents(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "HINGE2", 11, 10, 5)

	_, err := f.record(p.ID, model.TxIssue, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{EventTransactionCreated}, f.events.types())

	_, err = f.record(p.ID, model.TxIssue, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{EventTransactionCreated, EventTransactionCreated, EventOrderRequestCreated}, f.events.types())
}
