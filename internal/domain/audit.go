package domain

import "time"

// AuditAction enumerates recorded state mutations.
type AuditAction string

const (
	AuditAccountClaimed  AuditAction = "ACCOUNT_CLAIMED"
	AuditStockRestocked  AuditAction = "STOCK_RESTOCKED"
	AuditAccessGranted   AuditAction = "ACCESS_GRANTED"
	AuditCooldownUpdated AuditAction = "COOLDOWN_UPDATED"
	AuditStockCleared    AuditAction = "STOCK_CLEARED"
)

// AuditEvent is one row of the optional Postgres audit trail.
type AuditEvent struct {
	ID        string
	Action    AuditAction
	ActorID   string
	SubjectID string
	Category  Category
	Service   string
	Quantity  int64
	CreatedAt time.Time
}
