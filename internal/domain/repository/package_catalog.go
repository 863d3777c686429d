package repository

import (
	"valet-booking-service/internal/domain/entity"
)

// PackageCatalog resolves a valeting package plus any additional services
// into the tasks to perform and the priced line items to invoice.
type PackageCatalog interface {
	TasksFor(packageType string, additionalServiceIDs []string) []entity.TaskSpec
	ItemsFor(packageType string, additionalServiceIDs []string) []entity.InvoiceItem
}
