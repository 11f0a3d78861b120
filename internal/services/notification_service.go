package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationService delivers outbound messages. Delivery failures are
// reported to callers but never roll back the business operation that
// triggered them.
type NotificationService interface {
	SendEmail(ctx context.Context, organizationID uuid.UUID, recipient, subject, body string) error
	SendInvitationEmail(ctx context.Context, organizationID uuid.UUID, recipient string, invitationID uuid.UUID) error
	SendLowStockAlert(ctx context.Context, organizationID uuid.UUID, itemName string, currentStock, minStock decimal.Decimal) error
	SendWebhook(ctx context.Context, organizationID uuid.UUID, eventType string, payload map[string]interface{}) error
}

type notificationService struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotificationService creates a notification service. webhookURL may be
// empty, in which case webhook events are dropped.
func NewNotificationService(webhookURL string) NotificationService {
	return &notificationService{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendEmail sends an email notification (placeholder implementation)
func (s *notificationService) SendEmail(ctx context.Context, organizationID uuid.UUID, recipient, subject, body string) error {
	// TODO: Integration with email service (SendGrid, SES, etc.)
	log.Printf("[EMAIL] Org=%s, To=%s, Subject=%s, Body=%s", organizationID.String(), recipient, subject, body)
	return nil
}

func (s *notificationService) SendInvitationEmail(ctx context.Context, organizationID uuid.UUID, recipient string, invitationID uuid.UUID) error {
	subject := "You have been invited to join an organization"
	body := fmt.Sprintf("You have been invited to join an organization on Vriddhi Book. Use invitation %s to accept.", invitationID)
	return s.SendEmail(ctx, organizationID, recipient, subject, body)
}

func (s *notificationService) SendLowStockAlert(ctx context.Context, organizationID uuid.UUID, itemName string, currentStock, minStock decimal.Decimal) error {
	payload := map[string]interface{}{
		"item_name":     itemName,
		"current_stock": currentStock.String(),
		"min_stock":     minStock.String(),
	}
	if err := s.SendWebhook(ctx, organizationID, "stock.low", payload); err != nil {
		log.Printf("[ALERT] Org=%s, Item=%s, Stock=%s below minimum %s (webhook failed: %v)",
			organizationID.String(), itemName, currentStock.String(), minStock.String(), err)
		return err
	}
	return nil
}

func (s *notificationService) SendWebhook(ctx context.Context, organizationID uuid.UUID, eventType string, payload map[string]interface{}) error {
	if s.webhookURL == "" {
		return nil
	}

	body := map[string]interface{}{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now(),
	}
	jsonPayload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Organization-ID", organizationID.String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}
	return nil
}
