package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/config"
	"github.com/spec-kit/hr-console/internal/events"
	"github.com/spec-kit/hr-console/internal/observability"
)

const (
	auditQueueSize      = 256
	auditWebhookTimeout = 5 * time.Second
)

// AuditService records session lifecycle events and forwards them to an optional webhook.
type AuditService struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	webhookURL string
	client     *http.Client
	queue      chan events.Event
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		webhookURL: strings.TrimSpace(cfg.WebhookURL),
		client:     &http.Client{Timeout: auditWebhookTimeout},
		queue:      make(chan events.Event, auditQueueSize),
	}
}

// RegisterHandlers subscribes to session events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionCreated, a.handleSessionEvent)
	a.dispatcher.Subscribe(events.EventSessionUpdated, a.handleSessionEvent)
	a.dispatcher.Subscribe(events.EventSessionDestroyed, a.handleSessionEvent)
}

// WebhookEnabled reports whether events are forwarded.
func (a *AuditService) WebhookEnabled() bool {
	return a.webhookURL != ""
}

// Run delivers queued events to the webhook until ctx is done.
func (a *AuditService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-a.queue:
			if err := a.deliver(ctx, event); err != nil {
				a.logger.Warn("audit webhook delivery failed",
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
		}
	}
}

func (a *AuditService) handleSessionEvent(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("email", event.Actor.Email),
		zap.String("role", event.Actor.Role.String()),
		zap.Any("payload", event.Payload))
	a.metrics.RecordSessionEvent(string(event.Type))

	if !a.WebhookEnabled() {
		return nil
	}
	select {
	case a.queue <- event:
	default:
		a.logger.Warn("audit queue full; dropping event", zap.String("event_id", event.ID))
	}
	return nil
}

func (a *AuditService) deliver(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("audit webhook answered %d", resp.StatusCode)
	}
	a.logger.Debug("audit event delivered", zap.String("event_id", event.ID))
	return nil
}
