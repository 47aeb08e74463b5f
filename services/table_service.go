package services

import (
	"context"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"go.mongodb.org/mongo-driver/bson"
)

type TableService struct {
	model *database.BaseModel
	now   Clock
}

func NewTableService(model *database.BaseModel, clock Clock) *TableService {
	if clock == nil {
		clock = UTCClock
	}
	return &TableService{model: model, now: clock}
}

func (s *TableService) CreateTable(ctx context.Context, table *models.Table) (string, error) {
	table.Stamp(s.now())
	return s.model.Create(ctx, table)
}

func (s *TableService) GetTable(ctx context.Context, tableID string) (*models.Table, error) {
	var table models.Table
	found, err := s.model.FindOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(tableID)}, &table)
	if err != nil || !found {
		return nil, err
	}
	return &table, nil
}

// GetTables defaults to ascending table number.
func (s *TableService) GetTables(ctx context.Context, skip, limit int64, sort []database.SortField) ([]models.Table, error) {
	tables := []models.Table{}
	err := s.model.FindMany(ctx, nil, database.FindOptions{
		Skip:  skip,
		Limit: limit,
		Sort:  sortOrDefault(sort, byTableNo),
	}, &tables)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *TableService) CountTables(ctx context.Context) (int64, error) {
	return s.model.Count(ctx, nil)
}

func (s *TableService) UpdateTable(ctx context.Context, tableID string, update models.TableUpdate) (bool, error) {
	update.UpdatedAt = s.now()
	return s.model.UpdateOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(tableID)}, update)
}
