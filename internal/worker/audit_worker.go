package worker

import (
	"context"

	"github.com/spec-kit/hr-console/internal/service"
)

// StartAuditWorker registers audit handlers and, when a webhook is configured, starts the
// delivery loop. The loop stops with ctx.
func StartAuditWorker(ctx context.Context, auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
	if auditService.WebhookEnabled() {
		go auditService.Run(ctx)
	}
}
