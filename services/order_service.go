package services

import (
	"context"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"go.mongodb.org/mongo-driver/bson"
)

type OrderService struct {
	model *database.BaseModel
	now   Clock
}

func NewOrderService(model *database.BaseModel, clock Clock) *OrderService {
	if clock == nil {
		clock = UTCClock
	}
	return &OrderService{model: model, now: clock}
}

func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	order.Stamp(s.now())
	return s.model.Create(ctx, order)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	found, err := s.model.FindOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(orderID)}, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetOrders(ctx context.Context, skip, limit int64, sort []database.SortField) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.model.FindMany(ctx, nil, database.FindOptions{
		Skip:  skip,
		Limit: limit,
		Sort:  sortOrDefault(sort, newestFirst),
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.model.Count(ctx, nil)
}

func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, update models.OrderUpdate) (bool, error) {
	update.UpdatedAt = s.now()
	return s.model.UpdateOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(orderID)}, update)
}
