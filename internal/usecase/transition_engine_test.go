package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/pkg/logger"
)

type engineFixture struct {
	engine   *TransitionEngine
	repo     *fakeBookingRepo
	notifier *fakeNotifier
	invoices *fakeInvoiceStore
	tasks    *fakeTaskStore
	events   *fakeEventStore
}

func newEngineFixture(allowSkip bool, bookings ...entity.Booking) *engineFixture {
	repo := newFakeBookingRepo(bookings...)
	notifier := &fakeNotifier{}
	invoices := newFakeInvoiceStore()
	tasks := &fakeTaskStore{}
	events := &fakeEventStore{}
	log := logger.NewNop()

	dispatcher := NewSideEffectDispatcher(notifier, invoices, tasks, fakeCatalog{}, nil, log, nil)
	engine := NewTransitionEngine(repo, events, dispatcher, []string{"Alex", "Jordan", "Sam"}, allowSkip, log, nil)

	return &engineFixture{
		engine:   engine,
		repo:     repo,
		notifier: notifier,
		invoices: invoices,
		tasks:    tasks,
		events:   events,
	}
}

func pendingBooking(id string) entity.Booking {
	return entity.Booking{
		ID:        id,
		Status:    entity.StatusPending,
		Customer:  "Sarah Mitchell",
		Date:      time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:      "10:00",
		Condition: 5,
	}
}

func scheduledBooking(id string, status entity.Status) entity.Booking {
	b := pendingBooking(id)
	b.Status = status
	b.Staff = []string{"Alex", "Jordan"}
	b.TravelMinutes = entity.DefaultTravelMinutes
	return b
}

func TestConfirmMovesBookingToScheduled(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("PB-1"))

	booking, err := f.engine.Transition(context.Background(), "PB-1", entity.StatusConfirmed, &ConfirmOptions{
		Staff:         []string{"A", "B"},
		TravelMinutes: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, booking.Status)
	assert.Equal(t, []string{"A", "B"}, booking.Staff)
	assert.Equal(t, 20, booking.TravelMinutes)

	unscheduled, scheduled, _ := f.repo.Load(context.Background())
	assert.Empty(t, unscheduled, "confirmed booking must leave the unscheduled collection")
	require.Len(t, scheduled, 1)
	assert.Equal(t, "PB-1", scheduled[0].ID)
}

func TestConfirmAssignsRosterDefaults(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("PB-1"))

	booking, err := f.engine.Transition(context.Background(), "PB-1", entity.StatusConfirmed, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alex", "Jordan"}, booking.Staff, "first two roster members")
	assert.Equal(t, entity.DefaultTravelMinutes, booking.TravelMinutes)
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("PB-1"))

	first, err := f.engine.Transition(context.Background(), "PB-1", entity.StatusConfirmed, &ConfirmOptions{
		Staff:         []string{"A", "B"},
		TravelMinutes: 20,
	})
	require.NoError(t, err)

	second, err := f.engine.Transition(context.Background(), "PB-1", entity.StatusConfirmed, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Staff, second.Staff, "re-confirming must not reset staff")
	assert.Equal(t, first.TravelMinutes, second.TravelMinutes, "re-confirming must not reset travel minutes")

	_, scheduled, _ := f.repo.Load(context.Background())
	assert.Len(t, scheduled, 1, "no duplicate in the scheduled collection")
}

func TestReconfirmFillsMissingDefaults(t *testing.T) {
	// A confirmed booking can arrive from the remote store without staff or
	// a travel allowance. Re-confirming repairs the gaps without touching
	// anything already assigned.
	bare := pendingBooking("PB-1")
	bare.Status = entity.StatusConfirmed
	f := newEngineFixture(false, bare)

	booking, err := f.engine.Transition(context.Background(), "PB-1", entity.StatusConfirmed, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alex", "Jordan"}, booking.Staff)
	assert.Equal(t, entity.DefaultTravelMinutes, booking.TravelMinutes)
}

func TestTransitionRejectsSkippingStages(t *testing.T) {
	// The strict table forbids jumping confirmed -> finished. The original
	// system had call sites taking this shortcut; here it is only legal
	// when stage skipping is explicitly enabled (see the fixture below).
	f := newEngineFixture(false, scheduledBooking("PB-2", entity.StatusConfirmed))

	_, err := f.engine.Transition(context.Background(), "PB-2", entity.StatusFinished, nil)
	require.ErrorIs(t, err, entity.ErrInvalidTransition)

	booking, _, findErr := f.repo.FindByID(context.Background(), "PB-2")
	require.NoError(t, findErr)
	assert.Equal(t, entity.StatusConfirmed, booking.Status, "rejected transition leaves the booking unmodified")
}

func TestTransitionAllowsSkipWhenConfigured(t *testing.T) {
	f := newEngineFixture(true, scheduledBooking("PB-2", entity.StatusConfirmed))

	booking, err := f.engine.Transition(context.Background(), "PB-2", entity.StatusFinished, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFinished, booking.Status)
}

func TestTransitionUnknownTarget(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("PB-1"))

	_, err := f.engine.Transition(context.Background(), "PB-1", entity.Status("shipped"), nil)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestTransitionNotFound(t *testing.T) {
	f := newEngineFixture(false)

	_, err := f.engine.Transition(context.Background(), "missing", entity.StatusConfirmed, nil)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCancelArchivesPendingBooking(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("PB-1"))

	booking, err := f.engine.Transition(context.Background(), "PB-1", entity.StatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, booking.Status)

	unscheduled, scheduled, _ := f.repo.Load(context.Background())
	assert.Empty(t, unscheduled)
	assert.Empty(t, scheduled)
	require.Len(t, f.repo.cancelled, 1)
	assert.Equal(t, "PB-1", f.repo.cancelled[0].ID)
}

func TestInspectingTriggersArrivalNotification(t *testing.T) {
	f := newEngineFixture(false, scheduledBooking("B-1", entity.StatusConfirmed))

	_, err := f.engine.Transition(context.Background(), "B-1", entity.StatusInspecting, nil)
	require.NoError(t, err)
	assert.Equal(t, []entity.NotificationKind{entity.NotificationArrival}, f.notifier.sent)
}

func TestNotificationFailureDoesNotFailTransition(t *testing.T) {
	f := newEngineFixture(false, scheduledBooking("B-1", entity.StatusConfirmed))
	f.notifier.fail = errors.New("gateway down")

	booking, err := f.engine.Transition(context.Background(), "B-1", entity.StatusInspecting, nil)
	require.NoError(t, err, "notification failure is logged, not fatal")
	assert.Equal(t, entity.StatusInspecting, booking.Status)
}

func TestInProgressSeedsTasks(t *testing.T) {
	b := scheduledBooking("B-1", entity.StatusInspected)
	b.AdditionalServices = []string{"pet-hair-removal"}
	f := newEngineFixture(false, b)

	_, err := f.engine.Transition(context.Background(), "B-1", entity.StatusInProgress, nil)
	require.NoError(t, err)

	tasks, _ := f.tasks.ByBooking(context.Background(), "B-1")
	require.Len(t, tasks, 3, "package tasks plus one additional service")
	names := []string{tasks[0].Name, tasks[1].Name, tasks[2].Name}
	assert.Contains(t, names, "Extra: pet-hair-removal")
	for _, task := range tasks {
		assert.Equal(t, "B-1", task.BookingID)
		assert.False(t, task.Completed)
		assert.Positive(t, task.AllocatedMinutes)
	}
}

func TestTaskSeedingFailureIsSurfacedButStatusRetained(t *testing.T) {
	f := newEngineFixture(false, scheduledBooking("B-1", entity.StatusInspected))
	f.tasks.saveFail = errors.New("disk full")

	booking, err := f.engine.Transition(context.Background(), "B-1", entity.StatusInProgress, nil)
	require.Error(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, entity.StatusInProgress, booking.Status, "status change is not rolled back")

	persisted, _, findErr := f.repo.FindByID(context.Background(), "B-1")
	require.NoError(t, findErr)
	assert.Equal(t, entity.StatusInProgress, persisted.Status)
}

func TestFinishedGeneratesInvoiceAndNotifies(t *testing.T) {
	f := newEngineFixture(false, scheduledBooking("B-1", entity.StatusInProgress))

	_, err := f.engine.Transition(context.Background(), "B-1", entity.StatusFinished, nil)
	require.NoError(t, err)

	invoice, err := f.invoices.FindByBookingID(context.Background(), "B-1")
	require.NoError(t, err)
	assert.Equal(t, "B-1", invoice.BookingID)
	assert.Equal(t, []entity.NotificationKind{entity.NotificationFinished}, f.notifier.sent)
}

func TestMembershipInvariantHoldsThroughLifecycle(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("B-1"))
	ctx := context.Background()

	steps := []entity.Status{
		entity.StatusConfirmed,
		entity.StatusInspecting,
		entity.StatusInspected,
		entity.StatusInProgress,
		entity.StatusFinished,
		entity.StatusCompleted,
	}
	for _, target := range steps {
		_, err := f.engine.Transition(ctx, "B-1", target, nil)
		require.NoError(t, err, "transition to %s", target)

		unscheduled, scheduled, _ := f.repo.Load(ctx)
		for _, b := range unscheduled {
			assert.Equal(t, entity.StatusPending, b.Status)
		}
		for _, b := range scheduled {
			assert.NotEqual(t, entity.StatusPending, b.Status)
		}
	}

	booking, _, err := f.repo.FindByID(ctx, "B-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex", "Jordan"}, booking.Staff, "staff never silently cleared")

	events, _ := f.events.ByBooking(ctx, "B-1")
	assert.Len(t, events, len(steps))
}

func TestDeleteIsCollectionAware(t *testing.T) {
	f := newEngineFixture(false, pendingBooking("P-1"), scheduledBooking("S-1", entity.StatusConfirmed))
	ctx := context.Background()

	require.NoError(t, f.engine.Delete(ctx, "P-1"))
	require.NoError(t, f.engine.Delete(ctx, "S-1"))

	unscheduled, scheduled, _ := f.repo.Load(ctx)
	assert.Empty(t, unscheduled)
	assert.Empty(t, scheduled)

	assert.ErrorIs(t, f.engine.Delete(ctx, "P-1"), entity.ErrNotFound)
}
