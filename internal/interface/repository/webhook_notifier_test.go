package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/pkg/logger"
)

func TestSendWithoutEndpointIsSkipped(t *testing.T) {
	sender := NewWebhookNotificationSender("", "", logger.NewNop())
	b := booking("B-1", entity.StatusInspecting, "Sarah Mitchell")

	err := sender.Send(context.Background(), &b, entity.NotificationArrival)
	assert.NoError(t, err, "unconfigured gateway is a no-op, not a delivery failure")
}

func TestSendPostsToGateway(t *testing.T) {
	var received notificationMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notifications", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewWebhookNotificationSender(server.URL, "secret", logger.NewNop())
	b := booking("B-1", entity.StatusFinished, "Sarah Mitchell")

	require.NoError(t, sender.Send(context.Background(), &b, entity.NotificationFinished))
	assert.Equal(t, "B-1", received.BookingID)
	assert.Equal(t, string(entity.NotificationFinished), received.Kind)
	assert.NotEmpty(t, received.Message)
}

func TestSendSurfacesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewWebhookNotificationSender(server.URL, "secret", logger.NewNop())
	b := booking("B-1", entity.StatusFinished, "Sarah Mitchell")

	err := sender.Send(context.Background(), &b, entity.NotificationFinished)
	assert.Error(t, err)
}
