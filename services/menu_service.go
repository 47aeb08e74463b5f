package services

import (
	"context"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"go.mongodb.org/mongo-driver/bson"
)

type MenuService struct {
	model *database.BaseModel
	now   Clock
}

func NewMenuService(model *database.BaseModel, clock Clock) *MenuService {
	if clock == nil {
		clock = UTCClock
	}
	return &MenuService{model: model, now: clock}
}

func (s *MenuService) CreateMenu(ctx context.Context, menu *models.Menu) (string, error) {
	menu.Stamp(s.now())
	return s.model.Create(ctx, menu)
}

// GetMenu returns nil, nil when no menu has the given id.
func (s *MenuService) GetMenu(ctx context.Context, menuID string) (*models.Menu, error) {
	var menu models.Menu
	found, err := s.model.FindOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(menuID)}, &menu)
	if err != nil || !found {
		return nil, err
	}
	return &menu, nil
}

func (s *MenuService) GetMenus(ctx context.Context, skip, limit int64, sort []database.SortField) ([]models.Menu, error) {
	menus := []models.Menu{}
	err := s.model.FindMany(ctx, nil, database.FindOptions{
		Skip:  skip,
		Limit: limit,
		Sort:  sortOrDefault(sort, newestFirst),
	}, &menus)
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (s *MenuService) CountMenus(ctx context.Context) (int64, error) {
	return s.model.Count(ctx, nil)
}

func (s *MenuService) UpdateMenu(ctx context.Context, menuID string, update models.MenuUpdate) (bool, error) {
	update.UpdatedAt = s.now()
	return s.model.UpdateOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(menuID)}, update)
}
