package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"
	"valet-booking-service/pkg/logger"
	"valet-booking-service/pkg/metrics"

	"github.com/google/uuid"
)

// SideEffectDispatcher fires the side effects associated with each applied
// transition: customer notifications, invoice generation and task seeding.
// Notification failures are logged and swallowed; invoice and task failures
// are surfaced to the caller.
type SideEffectDispatcher struct {
	notifier repository.NotificationSender
	invoices repository.InvoiceStore
	tasks    repository.TaskStore
	catalog  repository.PackageCatalog
	mirror   repository.BookingMirror
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewSideEffectDispatcher creates a new dispatcher. mirror and metrics may be
// nil; invoice mirroring and instrumentation are then skipped.
func NewSideEffectDispatcher(
	notifier repository.NotificationSender,
	invoices repository.InvoiceStore,
	tasks repository.TaskStore,
	catalog repository.PackageCatalog,
	mirror repository.BookingMirror,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *SideEffectDispatcher {
	return &SideEffectDispatcher{
		notifier: notifier,
		invoices: invoices,
		tasks:    tasks,
		catalog:  catalog,
		mirror:   mirror,
		logger:   logger,
		metrics:  metrics,
	}
}

// Dispatch runs the side effects tied to the target status of an applied
// transition. The status change itself is already committed; a returned
// error tells the caller a downstream effect failed.
func (d *SideEffectDispatcher) Dispatch(ctx context.Context, booking *entity.Booking, target entity.Status) error {
	start := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.SideEffectTime.Observe(time.Since(start).Seconds())
		}
	}()

	switch target {
	case entity.StatusInspecting:
		d.notify(ctx, booking, entity.NotificationArrival)
		return nil
	case entity.StatusInProgress:
		_, err := d.SeedTasks(ctx, booking)
		return err
	case entity.StatusFinished:
		if _, err := d.GenerateInvoice(ctx, booking); err != nil {
			return err
		}
		d.notify(ctx, booking, entity.NotificationFinished)
		return nil
	default:
		return nil
	}
}

// NotifyArrival sends the "we have arrived" message to the customer
func (d *SideEffectDispatcher) NotifyArrival(ctx context.Context, booking *entity.Booking) {
	d.notify(ctx, booking, entity.NotificationArrival)
}

// NotifyFinished sends the "work is done" message to the customer
func (d *SideEffectDispatcher) NotifyFinished(ctx context.Context, booking *entity.Booking) {
	d.notify(ctx, booking, entity.NotificationFinished)
}

func (d *SideEffectDispatcher) notify(ctx context.Context, booking *entity.Booking, kind entity.NotificationKind) {
	if err := d.notifier.Send(ctx, booking, kind); err != nil {
		d.logger.Warn("Notification delivery failed",
			"bookingId", booking.ID,
			"kind", string(kind),
			"error", err)
		return
	}
	if d.metrics != nil {
		d.metrics.NotificationsSent.WithLabelValues(string(kind)).Inc()
	}
}

// GenerateInvoice computes an invoice from the booking's package and
// additional services. Idempotent: an invoice already associated with this
// booking id is returned unchanged, never recomputed.
func (d *SideEffectDispatcher) GenerateInvoice(ctx context.Context, booking *entity.Booking) (*entity.Invoice, error) {
	existing, err := d.invoices.FindByBookingID(ctx, booking.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, fmt.Errorf("invoice lookup for booking %s: %w", booking.ID, err)
	}

	invoice := &entity.Invoice{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Items:     d.catalog.ItemsFor(booking.PackageType, booking.AdditionalServices),
		CreatedAt: time.Now().UTC(),
	}
	invoice.Totalize()

	if err := d.invoices.Upsert(ctx, invoice); err != nil {
		return nil, fmt.Errorf("persist invoice for booking %s: %w", booking.ID, err)
	}
	if d.metrics != nil {
		d.metrics.InvoicesGenerated.Inc()
	}
	d.logger.Info("Invoice generated",
		"invoiceId", invoice.ID,
		"bookingId", booking.ID,
		"total", invoice.Total)

	d.mirrorInvoice(invoice)
	return invoice, nil
}

// mirrorInvoice pushes the invoice to the remote store without blocking the
// transition. Failure degrades.
func (d *SideEffectDispatcher) mirrorInvoice(invoice *entity.Invoice) {
	if d.mirror == nil {
		return
	}
	go func(inv entity.Invoice) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := d.mirror.UpsertInvoice(ctx, &inv); err != nil {
			d.logger.Warn("Remote invoice sync failed", "invoiceId", inv.ID, "error", err)
			if d.metrics != nil {
				d.metrics.SyncFailures.Inc()
			}
		}
	}(*invoice)
}

// SeedTasks expands the booking's package definition plus any additional
// services into completable task records tied to the booking id. A booking
// whose task list was already seeded keeps it.
func (d *SideEffectDispatcher) SeedTasks(ctx context.Context, booking *entity.Booking) ([]entity.Task, error) {
	existing, err := d.tasks.ByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("task lookup for booking %s: %w", booking.ID, err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	specs := d.catalog.TasksFor(booking.PackageType, booking.AdditionalServices)
	tasks := make([]entity.Task, 0, len(specs))
	now := time.Now().UTC()
	for _, spec := range specs {
		tasks = append(tasks, entity.Task{
			ID:               uuid.NewString(),
			BookingID:        booking.ID,
			Name:             spec.Name,
			AllocatedMinutes: spec.DurationMinutes,
			CreatedAt:        now,
		})
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	if err := d.tasks.SaveAll(ctx, tasks); err != nil {
		return nil, fmt.Errorf("seed tasks for booking %s: %w", booking.ID, err)
	}
	d.logger.Info("Task list seeded", "bookingId", booking.ID, "count", len(tasks))
	return tasks, nil
}
