package rest

import (
	"errors"
	"io"
	"net/http"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"
	"valet-booking-service/internal/usecase"
	"valet-booking-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const dateLayout = "2006-01-02"

// Handler exposes the booking lifecycle engine over HTTP
type Handler struct {
	engine    *usecase.TransitionEngine
	bookings  repository.BookingRepository
	invoices  repository.InvoiceStore
	tasks     repository.TaskStore
	events    repository.StatusEventStore
	projector usecase.ScheduleProjector
	logger    logger.Logger
}

// NewHandler creates a new REST handler
func NewHandler(
	engine *usecase.TransitionEngine,
	bookings repository.BookingRepository,
	invoices repository.InvoiceStore,
	tasks repository.TaskStore,
	events repository.StatusEventStore,
	logger logger.Logger,
) *Handler {
	return &Handler{
		engine:   engine,
		bookings: bookings,
		invoices: invoices,
		tasks:    tasks,
		events:   events,
		logger:   logger,
	}
}

// Register mounts all routes on the router
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/bookings", h.createBooking)
		api.GET("/bookings", h.listBookings)
		api.GET("/bookings/:id", h.getBooking)
		api.POST("/bookings/:id/transition", h.transition)
		api.DELETE("/bookings/:id", h.deleteBooking)
		api.GET("/bookings/:id/tasks", h.bookingTasks)
		api.GET("/bookings/:id/invoice", h.bookingInvoice)
		api.GET("/bookings/:id/history", h.bookingHistory)

		api.GET("/schedule/day", h.scheduleDay)
		api.GET("/schedule/week", h.scheduleWeek)
		api.GET("/schedule/staff", h.scheduleStaff)
		api.GET("/conflicts", h.conflicts)

		api.GET("/invoices", h.listInvoices)
		api.PATCH("/tasks/:id/complete", h.completeTask)
	}
}

type createBookingRequest struct {
	Customer           string   `json:"customer" binding:"required"`
	VehicleDescription string   `json:"vehicleDescription"`
	PackageType        string   `json:"packageType" binding:"required"`
	Date               string   `json:"date" binding:"required"`
	Time               string   `json:"time"`
	Location           string   `json:"location"`
	Contact            string   `json:"contact"`
	Email              string   `json:"email"`
	Notes              string   `json:"notes"`
	AdditionalServices []string `json:"additionalServices"`
	Condition          int      `json:"condition"`
}

func (h *Handler) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	booking := &entity.Booking{
		ID:                 uuid.NewString(),
		Status:             entity.StatusPending,
		Customer:           req.Customer,
		VehicleDescription: req.VehicleDescription,
		PackageType:        req.PackageType,
		Date:               date,
		Time:               req.Time,
		Location:           req.Location,
		Contact:            req.Contact,
		Email:              req.Email,
		Notes:              req.Notes,
		AdditionalServices: req.AdditionalServices,
		Condition:          req.Condition,
	}
	if err := h.bookings.CreateUnscheduled(c.Request.Context(), booking); err != nil {
		h.logger.Error("Failed to create booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *Handler) listBookings(c *gin.Context) {
	unscheduled, scheduled, err := h.bookings.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load bookings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"unscheduled": unscheduled,
		"scheduled":   scheduled,
	})
}

func (h *Handler) getBooking(c *gin.Context) {
	booking, collection, err := h.bookings.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "collection": collection})
}

type transitionRequest struct {
	Target        string   `json:"target" binding:"required"`
	Staff         []string `json:"staff"`
	TravelMinutes int      `json:"travelMinutes"`
}

func (h *Handler) transition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opts *usecase.ConfirmOptions
	if len(req.Staff) > 0 || req.TravelMinutes > 0 {
		opts = &usecase.ConfirmOptions{Staff: req.Staff, TravelMinutes: req.TravelMinutes}
	}

	booking, err := h.engine.Transition(c.Request.Context(), c.Param("id"), entity.Status(req.Target), opts)
	if err != nil {
		// A side-effect failure after the status change committed still
		// returns the booking; surface both.
		if booking != nil {
			c.JSON(http.StatusOK, gin.H{"booking": booking, "warning": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *Handler) deleteBooking(c *gin.Context) {
	if err := h.engine.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bookingTasks(c *gin.Context) {
	tasks, err := h.tasks.ByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) bookingInvoice(c *gin.Context) {
	invoice, err := h.invoices.FindByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) bookingHistory(c *gin.Context) {
	events, err := h.events.ByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *Handler) scheduleDay(c *gin.Context) {
	date, ok := h.parseDateQuery(c, "date")
	if !ok {
		return
	}
	scheduled, err := h.bookings.Scheduled(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     date.Format(dateLayout),
		"bookings": h.projector.ByDay(scheduled, date),
	})
}

func (h *Handler) scheduleWeek(c *gin.Context) {
	anchor, ok := h.parseDateQuery(c, "start")
	if !ok {
		return
	}
	scheduled, err := h.bookings.Scheduled(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": h.projector.ByWeek(scheduled, anchor)})
}

func (h *Handler) scheduleStaff(c *gin.Context) {
	scheduled, err := h.bookings.Scheduled(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": h.projector.ByStaff(scheduled)})
}

func (h *Handler) conflicts(c *gin.Context) {
	date, ok := h.parseDateQuery(c, "date")
	if !ok {
		return
	}
	scheduled, err := h.bookings.Scheduled(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conflict": usecase.HasConflict(date, c.Query("time"), scheduled),
	})
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.invoices.All(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

type completeTaskRequest struct {
	Completed *bool `json:"completed"`
}

func (h *Handler) completeTask(c *gin.Context) {
	var req completeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}
	if err := h.tasks.SetCompleted(c.Request.Context(), c.Param("id"), completed); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " query parameter is required (YYYY-MM-DD)"})
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, entity.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
