package services

import (
	"context"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/utils"
	"go.mongodb.org/mongo-driver/bson"
)

// OrderItemService attaches total_price to every item it reads.
type OrderItemService struct {
	model *database.BaseModel
	now   Clock
}

func NewOrderItemService(model *database.BaseModel, clock Clock) *OrderItemService {
	if clock == nil {
		clock = UTCClock
	}
	return &OrderItemService{model: model, now: clock}
}

func (s *OrderItemService) CreateOrderItem(ctx context.Context, item *models.OrderItem) (string, error) {
	unitPrice, err := utils.RoundMoney("unit_price", item.UnitPrice)
	if err != nil {
		return "", err
	}
	item.UnitPrice = unitPrice
	item.Stamp(s.now())
	return s.model.Create(ctx, item)
}

func (s *OrderItemService) GetOrderItem(ctx context.Context, orderItemID string) (*models.OrderItem, error) {
	var item models.OrderItem
	found, err := s.model.FindOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(orderItemID)}, &item)
	if err != nil || !found {
		return nil, err
	}
	item.ComputeTotal()
	return &item, nil
}

func (s *OrderItemService) GetOrderItems(ctx context.Context, skip, limit int64, sort []database.SortField) ([]models.OrderItem, error) {
	return s.find(ctx, nil, database.FindOptions{
		Skip:  skip,
		Limit: limit,
		Sort:  sortOrDefault(sort, newestFirst),
	})
}

// GetOrderItemsByOrder returns every item referencing orderID, newest first.
func (s *OrderItemService) GetOrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return s.find(ctx, bson.M{"order_id": orderID}, database.FindOptions{Sort: newestFirst})
}

func (s *OrderItemService) CountOrderItems(ctx context.Context) (int64, error) {
	return s.model.Count(ctx, nil)
}

func (s *OrderItemService) UpdateOrderItem(ctx context.Context, orderItemID string, update models.OrderItemUpdate) (bool, error) {
	if update.UnitPrice != nil {
		unitPrice, err := utils.RoundMoney("unit_price", *update.UnitPrice)
		if err != nil {
			return false, err
		}
		update.UnitPrice = &unitPrice
	}
	update.UpdatedAt = s.now()
	return s.model.UpdateOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(orderItemID)}, update)
}

func (s *OrderItemService) find(ctx context.Context, filter bson.M, opts database.FindOptions) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	if err := s.model.FindMany(ctx, filter, opts, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ComputeTotal()
	}
	return items, nil
}
