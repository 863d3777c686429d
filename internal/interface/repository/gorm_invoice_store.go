package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceStore implements the InvoiceStore interface
type GormInvoiceStore struct {
	db *gorm.DB
}

// NewGormInvoiceStore creates a new GORM invoice store
func NewGormInvoiceStore(db *gorm.DB) repository.InvoiceStore {
	return &GormInvoiceStore{
		db: db,
	}
}

// Invoices GORM model for database mapping. Line items are stored as a JSON
// document; they are only ever read back as a whole.
type Invoices struct {
	ID          string     `gorm:"primaryKey;column:id"`
	BookingID   string     `gorm:"column:booking_id;uniqueIndex"`
	Items       string     `gorm:"column:items;type:text"`
	Subtotal    float64    `gorm:"column:subtotal"`
	Tax         float64    `gorm:"column:tax"`
	Total       float64    `gorm:"column:total"`
	Paid        bool       `gorm:"column:paid"`
	PaymentDate *time.Time `gorm:"column:payment_date"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

// TableName overrides the default table name
func (Invoices) TableName() string {
	return "invoices"
}

// Upsert creates or replaces an invoice
func (r *GormInvoiceStore) Upsert(ctx context.Context, invoice *entity.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return err
	}
	model := Invoices{
		ID:          invoice.ID,
		BookingID:   invoice.BookingID,
		Items:       string(items),
		Subtotal:    invoice.Subtotal,
		Tax:         invoice.Tax,
		Total:       invoice.Total,
		Paid:        invoice.Paid,
		PaymentDate: invoice.PaymentDate,
		CreatedAt:   invoice.CreatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model).Error
}

// FindByBookingID returns the invoice tied to a booking id
func (r *GormInvoiceStore) FindByBookingID(ctx context.Context, bookingID string) (*entity.Invoice, error) {
	var model Invoices
	result := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	invoice, err := toInvoiceEntity(model)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// All returns every invoice, newest first
func (r *GormInvoiceStore) All(ctx context.Context) ([]entity.Invoice, error) {
	var models []Invoices
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	invoices := make([]entity.Invoice, 0, len(models))
	for _, model := range models {
		invoice, err := toInvoiceEntity(model)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}
	return invoices, nil
}

func toInvoiceEntity(model Invoices) (*entity.Invoice, error) {
	var items []entity.InvoiceItem
	if model.Items != "" {
		if err := json.Unmarshal([]byte(model.Items), &items); err != nil {
			return nil, err
		}
	}
	return &entity.Invoice{
		ID:          model.ID,
		BookingID:   model.BookingID,
		Items:       items,
		Subtotal:    model.Subtotal,
		Tax:         model.Tax,
		Total:       model.Total,
		Paid:        model.Paid,
		PaymentDate: model.PaymentDate,
		CreatedAt:   model.CreatedAt,
	}, nil
}
