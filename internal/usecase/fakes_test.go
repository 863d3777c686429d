package usecase

import (
	"context"
	"fmt"
	"sync"

	"valet-booking-service/internal/domain/entity"
)

// fakeBookingRepo is an in-memory BookingRepository for engine tests
type fakeBookingRepo struct {
	mu          sync.Mutex
	unscheduled map[string]entity.Booking
	scheduled   map[string]entity.Booking
	cancelled   []entity.Booking
}

func newFakeBookingRepo(bookings ...entity.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		unscheduled: make(map[string]entity.Booking),
		scheduled:   make(map[string]entity.Booking),
	}
	for _, b := range bookings {
		if b.Status == entity.StatusPending {
			repo.unscheduled[b.ID] = b
		} else {
			repo.scheduled[b.ID] = b
		}
	}
	return repo
}

func (r *fakeBookingRepo) Load(ctx context.Context) ([]entity.Booking, []entity.Booking, error) {
	u, _ := r.Unscheduled(ctx)
	s, _ := r.Scheduled(ctx)
	return u, s, nil
}

func (r *fakeBookingRepo) Unscheduled(context.Context) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Booking, 0, len(r.unscheduled))
	for _, b := range r.unscheduled {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) Scheduled(context.Context) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Booking, 0, len(r.scheduled))
	for _, b := range r.scheduled {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id string) (*entity.Booking, entity.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.unscheduled[id]; ok {
		return &b, entity.CollectionUnscheduled, nil
	}
	if b, ok := r.scheduled[id]; ok {
		return &b, entity.CollectionScheduled, nil
	}
	return nil, "", entity.ErrNotFound
}

func (r *fakeBookingRepo) CreateUnscheduled(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unscheduled[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.unscheduled[booking.ID]; ok {
		r.unscheduled[booking.ID] = *booking
		return nil
	}
	r.scheduled[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) MoveToScheduled(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.unscheduled, booking.ID)
	r.scheduled[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) ArchiveCancelled(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.unscheduled, booking.ID)
	delete(r.scheduled, booking.ID)
	r.cancelled = append(r.cancelled, *booking)
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.unscheduled, id)
	delete(r.scheduled, id)
	return nil
}

// fakeNotifier records sent notifications and optionally fails
type fakeNotifier struct {
	mu   sync.Mutex
	sent []entity.NotificationKind
	fail error
}

func (n *fakeNotifier) Send(_ context.Context, _ *entity.Booking, kind entity.NotificationKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, kind)
	return nil
}

// fakeInvoiceStore keeps invoices keyed by booking id
type fakeInvoiceStore struct {
	mu       sync.Mutex
	invoices map[string]entity.Invoice
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[string]entity.Invoice)}
}

func (s *fakeInvoiceStore) Upsert(_ context.Context, invoice *entity.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[invoice.BookingID] = *invoice
	return nil
}

func (s *fakeInvoiceStore) FindByBookingID(_ context.Context, bookingID string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.invoices[bookingID]; ok {
		return &inv, nil
	}
	return nil, entity.ErrNotFound
}

func (s *fakeInvoiceStore) All(context.Context) ([]entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	return out, nil
}

// fakeTaskStore keeps tasks in a slice and optionally fails on save
type fakeTaskStore struct {
	mu       sync.Mutex
	tasks    []entity.Task
	saveFail error
}

func (s *fakeTaskStore) SaveAll(_ context.Context, tasks []entity.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveFail != nil {
		return s.saveFail
	}
	s.tasks = append(s.tasks, tasks...)
	return nil
}

func (s *fakeTaskStore) ByBooking(_ context.Context, bookingID string) ([]entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Task, 0)
	for _, t := range s.tasks {
		if t.BookingID == bookingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) SetCompleted(_ context.Context, taskID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].Completed = completed
			return nil
		}
	}
	return entity.ErrNotFound
}

// fakeEventStore records applied transitions
type fakeEventStore struct {
	mu     sync.Mutex
	events []entity.StatusEvent
}

func (s *fakeEventStore) Record(_ context.Context, bookingID string, from, to entity.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, entity.StatusEvent{BookingID: bookingID, From: from, To: to})
	return nil
}

func (s *fakeEventStore) ByBooking(_ context.Context, bookingID string) ([]entity.StatusEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StatusEvent, 0)
	for _, e := range s.events {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeCatalog prices every package at 100 and every service at 25
type fakeCatalog struct{}

func (fakeCatalog) TasksFor(packageType string, additionalServiceIDs []string) []entity.TaskSpec {
	specs := []entity.TaskSpec{
		{Name: "Exterior wash", DurationMinutes: 30},
		{Name: "Interior vacuum", DurationMinutes: 20},
	}
	for _, id := range additionalServiceIDs {
		specs = append(specs, entity.TaskSpec{Name: fmt.Sprintf("Extra: %s", id), DurationMinutes: 15})
	}
	return specs
}

func (fakeCatalog) ItemsFor(packageType string, additionalServiceIDs []string) []entity.InvoiceItem {
	items := []entity.InvoiceItem{{Description: packageType, Amount: 100}}
	for _, id := range additionalServiceIDs {
		items = append(items, entity.InvoiceItem{Description: id, Amount: 25})
	}
	return items
}
