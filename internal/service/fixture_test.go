package service

import (
	"context"
	"testing"

	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testActor = Actor{ID: uuid.NewString(), Username: "clerk"}

type fixture struct {
	store     *memStore
	tx        *memTxRunner
	events    *recordingPublisher
	inventory InventoryService
	orders    OrderRequestService
	vendor    model.Vendor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	tx := &memTxRunner{store: store}
	events := &recordingPublisher{}
	log := logger.Nop()

	repos := store.repos()
	f := &fixture{
		store:     store,
		tx:        tx,
		events:    events,
		inventory: NewInventoryService(repos, tx, NewReorderEngine(log), events, log),
		orders:    NewOrderRequestService(repos, tx, events),
	}

	vendor, err := model.NewVendor(model.VendorFields{
		Name:          "Acme Fasteners",
		ContactPerson: "Jo Park",
		Email:         "orders@acme.io",
		Phone:         "+15550001111",
		Address:       "1 Main St",
	})
	require.NoError(t, err)
	require.NoError(t, repos.Vendors.Create(context.Background(), vendor))
	f.vendor = *vendor
	return f
}

// addProduct stores a product with the given stock settings directly.
func (f *fixture) addProduct(t *testing.T, sku string, level, reorderPoint, reorderQty int) model.Product {
	t.Helper()
	p, err := model.NewProduct(model.ProductFields{
		Description:     "Item " + sku,
		SKU:             sku,
		Price:           decimal.RequireFromString("2.50"),
		WarehouseBins:   "A1",
		ReorderPoint:    reorderPoint,
		ReorderQuantity: reorderQty,
		VendorID:        f.vendor.ID,
	})
	require.NoError(t, err)
	p.InventoryLevel = level
	require.NoError(t, f.store.repos().Products.Create(context.Background(), p))
	return *p
}

func (f *fixture) record(productID uuid.UUID, txType model.TransactionType, qty int) (*TransactionResult, error) {
	return f.inventory.RecordTransaction(context.Background(), &TransactionRequest{
		ProductID:       productID,
		TransactionType: string(txType),
		Quantity:        qty,
	}, testActor)
}

func (f *fixture) level(productID uuid.UUID) int {
	return f.store.products[productID].InventoryLevel
}

func bg() context.Context { return context.Background() }
