package worker

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/events"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/repository"
)

// StartAuditWorker subscribes the audit repository to every mutation event.
// With no Postgres pool configured the inserts are no-ops.
func StartAuditWorker(dispatcher events.Dispatcher, audit repository.AuditRepository, logger *zap.Logger) {
	if dispatcher == nil || audit == nil {
		return
	}

	record := func(action domain.AuditAction, build func(event events.Event, row *domain.AuditEvent)) events.EventHandler {
		return func(ctx context.Context, event events.Event) error {
			row := &domain.AuditEvent{
				ID:      uuid.NewString(),
				Action:  action,
				ActorID: event.ActorID,
			}
			build(event, row)
			if err := audit.Insert(ctx, row); err != nil {
				logger.Warn("audit insert failed", zap.String("action", string(action)), zap.Error(err))
			}
			return nil
		}
	}

	dispatcher.Subscribe(events.EventAccountClaimed, record(domain.AuditAccountClaimed,
		func(event events.Event, row *domain.AuditEvent) {
			if p, ok := event.Payload.(events.AccountClaimedPayload); ok {
				row.Category = p.Category
				row.Service = p.Service
				row.Quantity = 1
			}
		}))

	dispatcher.Subscribe(events.EventStockRestocked, record(domain.AuditStockRestocked,
		func(event events.Event, row *domain.AuditEvent) {
			if p, ok := event.Payload.(events.StockRestockedPayload); ok {
				row.Category = p.Category
				row.Service = p.Service
				row.Quantity = int64(p.Stored)
			}
		}))

	dispatcher.Subscribe(events.EventAccessGranted, record(domain.AuditAccessGranted,
		func(event events.Event, row *domain.AuditEvent) {
			if p, ok := event.Payload.(events.AccessGrantedPayload); ok {
				row.SubjectID = p.UserID
				row.Category = p.Category
				row.Quantity = p.ExpiryMillis
			}
		}))

	dispatcher.Subscribe(events.EventCooldownUpdated, record(domain.AuditCooldownUpdated,
		func(event events.Event, row *domain.AuditEvent) {
			if p, ok := event.Payload.(events.CooldownUpdatedPayload); ok {
				row.Category = p.Category
				row.Quantity = p.Millis
			}
		}))

	dispatcher.Subscribe(events.EventStockCleared, record(domain.AuditStockCleared,
		func(event events.Event, row *domain.AuditEvent) {
			if p, ok := event.Payload.(events.StockClearedPayload); ok {
				row.Category = p.Category
				row.Service = p.Service
				row.Quantity = int64(p.Deleted)
			}
		}))
}
