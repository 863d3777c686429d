package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"
	"valet-booking-service/pkg/logger"
	"valet-booking-service/templates"
)

// WebhookNotificationSender delivers customer messages through the external
// notification gateway.
type WebhookNotificationSender struct {
	logger      logger.Logger
	endpoint    string
	bearerToken string
	client      *http.Client
}

// NewWebhookNotificationSender creates a new webhook notification sender
func NewWebhookNotificationSender(endpoint, bearerToken string, logger logger.Logger) repository.NotificationSender {
	return &WebhookNotificationSender{
		logger:      logger,
		endpoint:    endpoint,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type notificationMessage struct {
	BookingID string `json:"bookingId"`
	Customer  string `json:"customer"`
	Contact   string `json:"contact,omitempty"`
	Email     string `json:"email,omitempty"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// Send posts a customer-facing message for the booking. Callers treat a
// returned error as a degraded delivery, not a fatal condition.
func (r *WebhookNotificationSender) Send(ctx context.Context, booking *entity.Booking, kind entity.NotificationKind) error {
	if r.endpoint == "" {
		r.logger.Debug("No notification endpoint configured, skipping",
			"bookingId", booking.ID,
			"kind", string(kind))
		return nil
	}

	msg := notificationMessage{
		BookingID: booking.ID,
		Customer:  booking.Customer,
		Contact:   booking.Contact,
		Email:     booking.Email,
		Kind:      string(kind),
		Message:   templates.MessageFor(booking, kind),
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications", r.endpoint)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("notification gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Notification sent",
		"bookingId", booking.ID,
		"kind", string(kind))
	return nil
}
