package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"jewellery-service/models"
)

// MemoryStore mirrors the MySQL repositories over mutex-guarded maps. It
// backs the unit tests and doubles as a throwaway dev backend; the semantics
// (newest-first ordering, merge rules, the conditional stock decrement in
// PlaceOrder) intentionally match the SQL implementation.
type MemoryStore struct {
	Catalog   *MemoryCatalogRepository
	Customers *MemoryCustomerRepository
	Carts     *MemoryCartRepository
	Orders    *MemoryOrderRepository
	Inquiries *MemoryInquiryRepository
}

func NewMemoryStore() *MemoryStore {
	data := &memoryData{
		catalog:    make(map[int64]models.CatalogItem),
		customers:  make(map[int64]models.Customer),
		cartItems:  make(map[int64]models.CartLineItem),
		orders:     make(map[int64]models.Order),
		orderItems: make(map[int64]models.OrderLineItem),
		inquiries:  make(map[int64]models.Inquiry),
	}
	return &MemoryStore{
		Catalog:   &MemoryCatalogRepository{data: data},
		Customers: &MemoryCustomerRepository{data: data},
		Carts:     &MemoryCartRepository{data: data},
		Orders:    &MemoryOrderRepository{data: data},
		Inquiries: &MemoryInquiryRepository{data: data},
	}
}

type memoryData struct {
	mu sync.Mutex

	catalog    map[int64]models.CatalogItem
	customers  map[int64]models.Customer
	cartItems  map[int64]models.CartLineItem
	orders     map[int64]models.Order
	orderItems map[int64]models.OrderLineItem
	inquiries  map[int64]models.Inquiry

	catalogSeq   int64
	customerSeq  int64
	cartSeq      int64
	orderSeq     int64
	orderItemSeq int64
	inquirySeq   int64
}

// page applies newest-first ordering (created desc, id desc) to a set of
// sort keys and returns the window's ids.
type sortKey struct {
	id      int64
	created time.Time
}

func pageIDs(keys []sortKey, limit, offset int) []int64 {
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].created.Equal(keys[j].created) {
			return keys[i].created.After(keys[j].created)
		}
		return keys[i].id > keys[j].id
	})
	if offset >= len(keys) {
		return nil
	}
	end := offset + limit
	if end > len(keys) {
		end = len(keys)
	}
	ids := make([]int64, 0, end-offset)
	for _, k := range keys[offset:end] {
		ids = append(ids, k.id)
	}
	return ids
}

type MemoryCatalogRepository struct {
	data *memoryData
}

func (r *MemoryCatalogRepository) Create(_ context.Context, item *models.CatalogItem) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	r.data.catalogSeq++
	item.ID = r.data.catalogSeq
	r.data.catalog[item.ID] = *item
	return nil
}

func (r *MemoryCatalogRepository) GetByID(_ context.Context, id int64) (*models.CatalogItem, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	item, ok := r.data.catalog[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *MemoryCatalogRepository) List(_ context.Context, activeOnly bool, limit, offset int) ([]models.CatalogItem, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	keys := make([]sortKey, 0, len(r.data.catalog))
	for _, item := range r.data.catalog {
		if activeOnly && !item.IsActive {
			continue
		}
		keys = append(keys, sortKey{id: item.ID, created: item.CreatedAt})
	}
	items := make([]models.CatalogItem, 0)
	for _, id := range pageIDs(keys, limit, offset) {
		items = append(items, r.data.catalog[id])
	}
	return items, nil
}

func (r *MemoryCatalogRepository) Update(_ context.Context, id int64, upd CatalogItemUpdate) (*models.CatalogItem, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	item, ok := r.data.catalog[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Materials != nil {
		item.Materials = *upd.Materials
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		item.ImageURL = upd.ImageURL
	}
	if upd.StockQuantity != nil {
		item.StockQuantity = *upd.StockQuantity
	}
	if upd.IsActive != nil {
		item.IsActive = *upd.IsActive
	}
	item.UpdatedAt = time.Now()
	r.data.catalog[id] = item
	return &item, nil
}

func (r *MemoryCatalogRepository) Deactivate(_ context.Context, id int64) (bool, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	item, ok := r.data.catalog[id]
	if !ok {
		return false, nil
	}
	item.IsActive = false
	item.UpdatedAt = time.Now()
	r.data.catalog[id] = item
	return true, nil
}

type MemoryCustomerRepository struct {
	data *memoryData
}

func (r *MemoryCustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, existing := range r.data.customers {
		if existing.Email == customer.Email {
			return &models.DuplicateEmailError{Email: customer.Email}
		}
	}
	r.data.customerSeq++
	customer.ID = r.data.customerSeq
	r.data.customers[customer.ID] = *customer
	return nil
}

func (r *MemoryCustomerRepository) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	customer, ok := r.data.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (r *MemoryCustomerRepository) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, customer := range r.data.customers {
		if customer.Email == email {
			c := customer
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemoryCustomerRepository) List(_ context.Context, limit, offset int) ([]models.Customer, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	keys := make([]sortKey, 0, len(r.data.customers))
	for _, customer := range r.data.customers {
		keys = append(keys, sortKey{id: customer.ID, created: customer.CreatedAt})
	}
	customers := make([]models.Customer, 0)
	for _, id := range pageIDs(keys, limit, offset) {
		customers = append(customers, r.data.customers[id])
	}
	return customers, nil
}

type MemoryCartRepository struct {
	data *memoryData
}

func (r *MemoryCartRepository) GetItem(_ context.Context, id int64) (*models.CartLineItem, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	line, ok := r.data.cartItems[id]
	if !ok {
		return nil, nil
	}
	return &line, nil
}

func (r *MemoryCartRepository) FindBySessionAndItem(_ context.Context, sessionID string, catalogItemID int64) (*models.CartLineItem, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, line := range r.data.cartItems {
		if line.SessionID == sessionID && line.CatalogItemID == catalogItemID {
			l := line
			return &l, nil
		}
	}
	return nil, nil
}

func (r *MemoryCartRepository) Insert(_ context.Context, line *models.CartLineItem) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	r.data.cartSeq++
	line.ID = r.data.cartSeq
	r.data.cartItems[line.ID] = *line
	return nil
}

func (r *MemoryCartRepository) SetQuantity(_ context.Context, id int64, quantity int) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	line, ok := r.data.cartItems[id]
	if !ok {
		return nil
	}
	line.Quantity = quantity
	r.data.cartItems[id] = line
	return nil
}

func (r *MemoryCartRepository) ListBySession(_ context.Context, sessionID string) ([]models.CartEntry, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	return r.data.listCartLocked(sessionID), nil
}

func (d *memoryData) listCartLocked(sessionID string) []models.CartEntry {
	keys := make([]sortKey, 0)
	for _, line := range d.cartItems {
		if line.SessionID == sessionID {
			keys = append(keys, sortKey{id: line.ID, created: line.CreatedAt})
		}
	}
	entries := make([]models.CartEntry, 0)
	for _, id := range pageIDs(keys, len(keys), 0) {
		line := d.cartItems[id]
		entries = append(entries, models.CartEntry{
			CartLineItem: line,
			Item:         d.catalog[line.CatalogItemID],
		})
	}
	return entries
}

func (r *MemoryCartRepository) Remove(_ context.Context, id int64) (bool, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, ok := r.data.cartItems[id]; !ok {
		return false, nil
	}
	delete(r.data.cartItems, id)
	return true, nil
}

func (r *MemoryCartRepository) Clear(_ context.Context, sessionID string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for id, line := range r.data.cartItems {
		if line.SessionID == sessionID {
			delete(r.data.cartItems, id)
		}
	}
	return nil
}

type MemoryOrderRepository struct {
	data *memoryData
}

func (r *MemoryOrderRepository) PlaceOrder(_ context.Context, order *models.Order, entries []models.CartEntry, sessionID string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	// Validate every decrement against live stock before applying any, so a
	// failure leaves the store untouched, like the SQL rollback does.
	for _, entry := range entries {
		item := r.data.catalog[entry.CatalogItemID]
		if item.StockQuantity < entry.Quantity {
			return &models.InsufficientStockError{
				Name:      item.Name,
				Available: item.StockQuantity,
				Requested: entry.Quantity,
			}
		}
	}

	r.data.orderSeq++
	order.ID = r.data.orderSeq
	r.data.orders[order.ID] = *order

	for _, entry := range entries {
		r.data.orderItemSeq++
		r.data.orderItems[r.data.orderItemSeq] = models.OrderLineItem{
			ID:            r.data.orderItemSeq,
			OrderID:       order.ID,
			CatalogItemID: entry.CatalogItemID,
			Quantity:      entry.Quantity,
			PricePerItem:  entry.Item.Price,
			CreatedAt:     order.CreatedAt,
		}

		item := r.data.catalog[entry.CatalogItemID]
		item.StockQuantity -= entry.Quantity
		item.UpdatedAt = order.CreatedAt
		r.data.catalog[entry.CatalogItemID] = item
	}

	for id, line := range r.data.cartItems {
		if line.SessionID == sessionID {
			delete(r.data.cartItems, id)
		}
	}
	return nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id int64) (*models.OrderDetail, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	order, ok := r.data.orders[id]
	if !ok {
		return nil, nil
	}
	detail := r.data.orderDetailLocked(order)
	return &detail, nil
}

func (r *MemoryOrderRepository) List(_ context.Context, customerID *int64, limit, offset int) ([]models.OrderDetail, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	keys := make([]sortKey, 0, len(r.data.orders))
	for _, order := range r.data.orders {
		if customerID != nil && order.CustomerID != *customerID {
			continue
		}
		keys = append(keys, sortKey{id: order.ID, created: order.CreatedAt})
	}
	details := make([]models.OrderDetail, 0)
	for _, id := range pageIDs(keys, limit, offset) {
		details = append(details, r.data.orderDetailLocked(r.data.orders[id]))
	}
	return details, nil
}

func (d *memoryData) orderDetailLocked(order models.Order) models.OrderDetail {
	detail := models.OrderDetail{
		Order:    order,
		Customer: d.customers[order.CustomerID],
		Items:    make([]models.OrderItemDetail, 0),
	}
	keys := make([]sortKey, 0)
	for _, line := range d.orderItems {
		if line.OrderID == order.ID {
			keys = append(keys, sortKey{id: line.ID, created: line.CreatedAt})
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].id < keys[j].id })
	for _, k := range keys {
		line := d.orderItems[k.id]
		detail.Items = append(detail.Items, models.OrderItemDetail{
			OrderLineItem: line,
			Item:          d.catalog[line.CatalogItemID],
		})
	}
	return detail
}

func (r *MemoryOrderRepository) Update(_ context.Context, id int64, upd OrderUpdate) (*models.Order, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	order, ok := r.data.orders[id]
	if !ok {
		return nil, nil
	}
	if upd.Status != nil {
		order.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		order.PaymentStatus = *upd.PaymentStatus
	}
	if upd.PaymentMethod != nil {
		order.PaymentMethod = upd.PaymentMethod
	}
	order.UpdatedAt = time.Now()
	r.data.orders[id] = order
	return &order, nil
}

type MemoryInquiryRepository struct {
	data *memoryData
}

func (r *MemoryInquiryRepository) Create(_ context.Context, inquiry *models.Inquiry) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	r.data.inquirySeq++
	inquiry.ID = r.data.inquirySeq
	r.data.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *MemoryInquiryRepository) List(_ context.Context, limit, offset int) ([]models.Inquiry, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	keys := make([]sortKey, 0, len(r.data.inquiries))
	for _, inquiry := range r.data.inquiries {
		keys = append(keys, sortKey{id: inquiry.ID, created: inquiry.CreatedAt})
	}
	inquiries := make([]models.Inquiry, 0)
	for _, id := range pageIDs(keys, limit, offset) {
		inquiries = append(inquiries, r.data.inquiries[id])
	}
	return inquiries, nil
}

func (r *MemoryInquiryRepository) UpdateStatus(_ context.Context, id int64, status string) (*models.Inquiry, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	inquiry, ok := r.data.inquiries[id]
	if !ok {
		return nil, nil
	}
	inquiry.Status = status
	inquiry.UpdatedAt = time.Now()
	r.data.inquiries[id] = inquiry
	return &inquiry, nil
}
