package repository

import (
	"fmt"
	"strings"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"
)

// packageDefinition describes one valeting package: the work it involves and
// what it costs.
type packageDefinition struct {
	Name  string
	Price float64
	Tasks []entity.TaskSpec
}

// serviceDefinition describes a bookable additional service
type serviceDefinition struct {
	Name            string
	Price           float64
	DurationMinutes int
}

var packageDefinitions = map[string]packageDefinition{
	"bronze": {
		Name:  "Bronze valet",
		Price: 45,
		Tasks: []entity.TaskSpec{
			{Name: "Exterior hand wash", DurationMinutes: 30},
			{Name: "Wheel and arch clean", DurationMinutes: 15},
			{Name: "Interior vacuum", DurationMinutes: 20},
		},
	},
	"silver": {
		Name:  "Silver valet",
		Price: 80,
		Tasks: []entity.TaskSpec{
			{Name: "Exterior hand wash", DurationMinutes: 30},
			{Name: "Wheel and arch clean", DurationMinutes: 15},
			{Name: "Interior vacuum", DurationMinutes: 20},
			{Name: "Dashboard and trim dressing", DurationMinutes: 20},
			{Name: "Glass polish inside and out", DurationMinutes: 20},
		},
	},
	"gold": {
		Name:  "Gold valet",
		Price: 140,
		Tasks: []entity.TaskSpec{
			{Name: "Snow foam pre-wash", DurationMinutes: 20},
			{Name: "Exterior hand wash", DurationMinutes: 30},
			{Name: "Clay bar treatment", DurationMinutes: 45},
			{Name: "Machine polish", DurationMinutes: 60},
			{Name: "Interior deep vacuum", DurationMinutes: 30},
			{Name: "Leather clean and feed", DurationMinutes: 30},
		},
	},
	"deep-clean": {
		Name:  "Interior deep clean",
		Price: 110,
		Tasks: []entity.TaskSpec{
			{Name: "Full interior strip-out", DurationMinutes: 20},
			{Name: "Upholstery shampoo extraction", DurationMinutes: 60},
			{Name: "Carpet shampoo extraction", DurationMinutes: 45},
			{Name: "Odour treatment", DurationMinutes: 15},
		},
	},
}

var serviceDefinitions = map[string]serviceDefinition{
	"pet-hair-removal":  {Name: "Pet hair removal", Price: 25, DurationMinutes: 30},
	"engine-bay-clean":  {Name: "Engine bay clean", Price: 30, DurationMinutes: 30},
	"headlight-restore": {Name: "Headlight restoration", Price: 35, DurationMinutes: 40},
	"ceramic-top-up":    {Name: "Ceramic coating top-up", Price: 50, DurationMinutes: 45},
	"tar-removal":       {Name: "Tar and glue removal", Price: 20, DurationMinutes: 25},
}

// StaticPackageCatalog implements the PackageCatalog interface from the
// in-code valeting package definitions.
type StaticPackageCatalog struct{}

// NewStaticPackageCatalog creates a new static package catalog
func NewStaticPackageCatalog() repository.PackageCatalog {
	return &StaticPackageCatalog{}
}

// TasksFor expands a package plus additional services into task specs
func (c *StaticPackageCatalog) TasksFor(packageType string, additionalServiceIDs []string) []entity.TaskSpec {
	specs := make([]entity.TaskSpec, 0)
	if pkg, ok := packageDefinitions[normalizeKey(packageType)]; ok {
		specs = append(specs, pkg.Tasks...)
	} else {
		specs = append(specs, entity.TaskSpec{Name: "Standard valet", DurationMinutes: 60})
	}
	for _, id := range additionalServiceIDs {
		if svc, ok := serviceDefinitions[normalizeKey(id)]; ok {
			specs = append(specs, entity.TaskSpec{Name: svc.Name, DurationMinutes: svc.DurationMinutes})
		}
	}
	return specs
}

// ItemsFor prices a package plus additional services into invoice line items
func (c *StaticPackageCatalog) ItemsFor(packageType string, additionalServiceIDs []string) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0)
	if pkg, ok := packageDefinitions[normalizeKey(packageType)]; ok {
		items = append(items, entity.InvoiceItem{Description: pkg.Name, Amount: pkg.Price})
	} else {
		items = append(items, entity.InvoiceItem{Description: fmt.Sprintf("Valet service (%s)", packageType), Amount: 50})
	}
	for _, id := range additionalServiceIDs {
		if svc, ok := serviceDefinitions[normalizeKey(id)]; ok {
			items = append(items, entity.InvoiceItem{Description: svc.Name, Amount: svc.Price})
		}
	}
	return items
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
