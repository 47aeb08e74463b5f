package services

import (
	"context"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"go.mongodb.org/mongo-driver/bson"
)

type InvoiceService struct {
	model *database.BaseModel
	now   Clock
}

func NewInvoiceService(model *database.BaseModel, clock Clock) *InvoiceService {
	if clock == nil {
		clock = UTCClock
	}
	return &InvoiceService{model: model, now: clock}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, invoice *models.Invoice) (string, error) {
	invoice.Stamp(s.now())
	return s.model.Create(ctx, invoice)
}

func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var invoice models.Invoice
	found, err := s.model.FindOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(invoiceID)}, &invoice)
	if err != nil || !found {
		return nil, err
	}
	return &invoice, nil
}

func (s *InvoiceService) GetInvoices(ctx context.Context, skip, limit int64, sort []database.SortField) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := s.model.FindMany(ctx, nil, database.FindOptions{
		Skip:  skip,
		Limit: limit,
		Sort:  sortOrDefault(sort, newestFirst),
	}, &invoices)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceService) CountInvoices(ctx context.Context) (int64, error) {
	return s.model.Count(ctx, nil)
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, update models.InvoiceUpdate) (bool, error) {
	update.UpdatedAt = s.now()
	return s.model.UpdateOne(ctx, bson.M{s.model.IDField(): s.model.PublicID(invoiceID)}, update)
}
