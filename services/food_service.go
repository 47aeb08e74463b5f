package services

import (
	"context"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/utils"
	"go.mongodb.org/mongo-driver/bson"
)

type FoodService struct {
	model *database.BaseModel
	now   Clock
}

func NewFoodService(model *database.BaseModel, clock Clock) *FoodService {
	if clock == nil {
		clock = UTCClock
	}
	return &FoodService{model: model, now: clock}
}

func (s *FoodService) CreateFood(ctx context.Context, food *models.Food) (string, error) {
	price, err := utils.RoundMoney("price", food.Price)
	if err != nil {
		return "", err
	}
	food.Price = price
	food.Stamp(s.now())
	return s.model.Create(ctx, food)
}

func (s *FoodService) GetFood(ctx context.Context, foodID string) (*models.Food, error) {
	var food models.Food
	found, err := s.model.FindOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(foodID)}, &food)
	if err != nil || !found {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) GetFoods(ctx context.Context, skip, limit int64, sort []database.SortField) ([]models.Food, error) {
	foods := []models.Food{}
	err := s.model.FindMany(ctx, nil, database.FindOptions{
		Skip:  skip,
		Limit: limit,
		Sort:  sortOrDefault(sort, newestFirst),
	}, &foods)
	if err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *FoodService) CountFoods(ctx context.Context) (int64, error) {
	return s.model.Count(ctx, nil)
}

func (s *FoodService) UpdateFood(ctx context.Context, foodID string, update models.FoodUpdate) (bool, error) {
	if update.Price != nil {
		price, err := utils.RoundMoney("price", *update.Price)
		if err != nil {
			return false, err
		}
		update.Price = &price
	}
	update.UpdatedAt = s.now()
	return s.model.UpdateOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(foodID)}, update)
}
