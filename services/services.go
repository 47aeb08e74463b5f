package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/metrics"
)

// Collection names. The human-facing id of a document is "<name>_<hex id>".
const (
	MenuCollection      = "menu"
	FoodCollection      = "food"
	TableCollection     = "table"
	OrderCollection     = "order"
	OrderItemCollection = "order_item"
	InvoiceCollection   = "invoice"
)

// Clock returns the time stamped on created_at / updated_at.
type Clock func() time.Time

var (
	clockMu   sync.Mutex
	lastStamp time.Time
)

// UTCClock is the default clock. Times are truncated to the store's millisecond
// precision and strictly increase between calls, so an update never shares its
// created_at instant.
func UTCClock() time.Time {
	now := time.Now().UTC().Truncate(time.Millisecond)

	clockMu.Lock()
	defer clockMu.Unlock()
	if !now.After(lastStamp) {
		now = lastStamp.Add(time.Millisecond)
	}
	lastStamp = now
	return now
}

var (
	newestFirst = []database.SortField{{Field: "created_at", Direction: database.Descending}}
	byTableNo   = []database.SortField{{Field: "table_number", Direction: database.Ascending}}
)

func sortOrDefault(sort, def []database.SortField) []database.SortField {
	if len(sort) == 0 {
		return def
	}
	return sort
}

// Services groups every entity service over one store.
type Services struct {
	Menus      *MenuService
	Foods      *FoodService
	Tables     *TableService
	Orders     *OrderService
	OrderItems *OrderItemService
	Invoices   *InvoiceService
}

func New(store database.Store, m *metrics.StoreMetrics, clock Clock) *Services {
	if clock == nil {
		clock = UTCClock
	}
	return &Services{
		Menus:      NewMenuService(database.NewBaseModel(store, MenuCollection, m), clock),
		Foods:      NewFoodService(database.NewBaseModel(store, FoodCollection, m), clock),
		Tables:     NewTableService(database.NewBaseModel(store, TableCollection, m), clock),
		Orders:     NewOrderService(database.NewBaseModel(store, OrderCollection, m), clock),
		OrderItems: NewOrderItemService(database.NewBaseModel(store, OrderItemCollection, m), clock),
		Invoices:   NewInvoiceService(database.NewBaseModel(store, InvoiceCollection, m), clock),
	}
}
