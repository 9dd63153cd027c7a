package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the database. It mimics the gorm
// hooks (id assignment, Validate on save) and the partial unique index on
// open order requests.
type memStore struct {
	users    map[uuid.UUID]model.User
	vendors  map[uuid.UUID]model.Vendor
	products map[uuid.UUID]model.Product
	txns     []model.InventoryTransaction
	orders   map[uuid.UUID]model.OrderRequest
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]model.User{},
		vendors:  map[uuid.UUID]model.Vendor{},
		products: map[uuid.UUID]model.Product{},
		orders:   map[uuid.UUID]model.OrderRequest{},
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.vendors {
		c.vendors[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	c.txns = append(c.txns, s.txns...)
	return c
}

func (s *memStore) restore(from *memStore) {
	s.users, s.vendors, s.products, s.orders, s.txns = from.users, from.vendors, from.products, from.orders, from.txns
}

func (s *memStore) repos() repository.Repositories {
	return repository.Repositories{
		Users:         &memUsers{s},
		Vendors:       &memVendors{s},
		Products:      &memProducts{s},
		Transactions:  &memTransactions{s},
		OrderRequests: &memOrders{s},
	}
}

func (s *memStore) openOrders(productID uuid.UUID) []model.OrderRequest {
	var open []model.OrderRequest
	for _, o := range s.orders {
		if o.ProductID == productID && o.IsOpen() {
			open = append(open, o)
		}
	}
	return open
}

func stampCreate(base *model.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	base.CreatedAt = time.Now()
	base.UpdatedAt = base.CreatedAt
}

// memTxRunner serialises Run calls, which is what the product row lock
// achieves in Postgres, and rolls the store back when fn fails.
type memTxRunner struct {
	mu    sync.Mutex
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := r.store.snapshot()
	if err := fn(r.store.repos()); err != nil {
		r.store.restore(saved)
		return err
	}
	return nil
}

type memUsers struct{ s *memStore }

func (r *memUsers) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, &model.NotFoundError{Entity: "user", ID: username}
}

func (r *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, model.NewNotFound("user", id)
	}
	return &u, nil
}

func (r *memUsers) Create(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	stampCreate(&user.BaseModel)
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUsers) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	u, ok := r.s.users[userID]
	if !ok {
		return model.NewNotFound("user", userID)
	}
	u.Password = hashedPassword
	r.s.users[userID] = u
	return nil
}

func (r *memUsers) FindAll(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type memVendors struct{ s *memStore }

func (r *memVendors) Create(ctx context.Context, vendor *model.Vendor) error {
	if err := vendor.Validate(); err != nil {
		return err
	}
	stampCreate(&vendor.BaseModel)
	r.s.vendors[vendor.ID] = *vendor
	return nil
}

func (r *memVendors) FindAll(ctx context.Context) ([]model.Vendor, error) {
	vendors := make([]model.Vendor, 0, len(r.s.vendors))
	for _, v := range r.s.vendors {
		vendors = append(vendors, v)
	}
	return vendors, nil
}

func (r *memVendors) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, model.NewNotFound("vendor", id)
	}
	return &v, nil
}

func (r *memVendors) Update(ctx context.Context, vendor *model.Vendor) error {
	if err := vendor.Validate(); err != nil {
		return err
	}
	r.s.vendors[vendor.ID] = *vendor
	return nil
}

type memProducts struct{ s *memStore }

func (r *memProducts) Create(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return &model.ConflictError{Message: "product already exists"}
		}
	}
	stampCreate(&product.BaseModel)
	r.s.products[product.ID] = *product
	return nil
}

func (r *memProducts) FindAll(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].SKU < products[j].SKU })
	return products, nil
}

func (r *memProducts) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, model.NewNotFound("product", id)
	}
	return &p, nil
}

func (r *memProducts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *memProducts) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, &model.NotFoundError{Entity: "product", ID: sku}
}

func (r *memProducts) FindBelowReorderPoint(ctx context.Context) ([]model.Product, error) {
	var low []model.Product
	for _, p := range r.s.products {
		if p.NeedsReorder() {
			low = append(low, p)
		}
	}
	return low, nil
}

// Update writes the editable columns only, like the gorm repository.
func (r *memProducts) Update(ctx context.Context, product *model.Product) error {
	cur, ok := r.s.products[product.ID]
	if !ok {
		return model.NewNotFound("product", product.ID)
	}
	if err := product.Validate(); err != nil {
		return err
	}
	next := *product
	next.InventoryLevel = cur.InventoryLevel
	next.Vendor = nil
	r.s.products[product.ID] = next
	return nil
}

func (r *memProducts) UpdateInventoryLevel(ctx context.Context, id uuid.UUID, level int, updatedBy string) error {
	p, ok := r.s.products[id]
	if !ok {
		return model.NewNotFound("product", id)
	}
	p.InventoryLevel = level
	p.UpdatedBy = updatedBy
	r.s.products[id] = p
	return nil
}

type memTransactions struct{ s *memStore }

func (r *memTransactions) Create(ctx context.Context, txn *model.InventoryTransaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	stampCreate(&txn.BaseModel)
	r.s.txns = append(r.s.txns, *txn)
	return nil
}

func (r *memTransactions) FindAll(ctx context.Context) ([]model.InventoryTransaction, error) {
	return append([]model.InventoryTransaction(nil), r.s.txns...), nil
}

func (r *memTransactions) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryTransaction, error) {
	for _, t := range r.s.txns {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, model.NewNotFound("transaction", id)
}

func (r *memTransactions) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryTransaction, error) {
	var out []model.InventoryTransaction
	for _, t := range r.s.txns {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransactions) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	byDate := map[string]*repository.StockMovementData{}
	for _, t := range r.s.txns {
		if t.CreatedAt.Before(startDate) || t.CreatedAt.After(endDate) {
			continue
		}
		day := t.CreatedAt.Format(dayLayout)
		d, ok := byDate[day]
		if !ok {
			d = &repository.StockMovementData{Date: day}
			byDate[day] = d
		}
		switch t.TransactionType {
		case model.TxReceive:
			d.Received += t.Quantity
		case model.TxIssue:
			d.Issued += t.Quantity
		}
	}
	out := make([]repository.StockMovementData, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

const dayLayout = "2006-01-02"

func (r *memTransactions) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return &repository.DashboardStats{TotalProducts: int64(len(r.s.products))}, nil
}

type memOrders struct{ s *memStore }

func (r *memOrders) checkOpenUnique(o *model.OrderRequest) error {
	if !o.IsOpen() {
		return nil
	}
	for _, other := range r.s.openOrders(o.ProductID) {
		if other.ID != o.ID {
			return &model.ConflictError{Message: "order_request already exists"}
		}
	}
	return nil
}

func (r *memOrders) Create(ctx context.Context, req *model.OrderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := r.checkOpenUnique(req); err != nil {
		return err
	}
	stampCreate(&req.BaseModel)
	r.s.orders[req.ID] = *req
	return nil
}

func (r *memOrders) FindAll(ctx context.Context, status model.OrderStatus) ([]model.OrderRequest, error) {
	var out []model.OrderRequest
	for _, o := range r.s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrders) FindByID(ctx context.Context, id uuid.UUID) (*model.OrderRequest, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, model.NewNotFound("order request", id)
	}
	return &o, nil
}

func (r *memOrders) Update(ctx context.Context, req *model.OrderRequest) error {
	if _, ok := r.s.orders[req.ID]; !ok {
		return model.NewNotFound("order request", req.ID)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := r.checkOpenUnique(req); err != nil {
		return err
	}
	r.s.orders[req.ID] = *req
	return nil
}

func (r *memOrders) HasOpenRequest(ctx context.Context, productID, exclude uuid.UUID) (bool, error) {
	for _, o := range r.s.openOrders(productID) {
		if o.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrders) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	for _, o := range r.s.orders {
		if o.IsOpen() {
			n++
		}
	}
	return n, nil
}

type recordedEvent struct {
	Type string
	Data map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(eventType string, data map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func (r *memOrders) CountCreatedByDay(ctx context.Context, startDate, endDate time.Time) ([]repository.DailyCount, error) {
	counts := map[string]int{}
	for _, o := range r.s.orders {
		if o.CreatedAt.Before(startDate) || o.CreatedAt.After(endDate) {
			continue
		}
		counts[o.CreatedAt.Format(dayLayout)]++
	}
	out := make([]repository.DailyCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, repository.DailyCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
