package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

// AuditRepository persists the optional claim/admin audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates the repository. A nil pool yields a
// repository whose writes are dropped, so callers need no feature checks.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if r.pool == nil {
		return nil
	}
	const query = `
        INSERT INTO audit_events (id, action, actor_id, subject_id, category, service, quantity)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.Action,
		event.ActorID,
		event.SubjectID,
		event.Category,
		event.Service,
		event.Quantity,
	).Scan(&event.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if r.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, action, actor_id, subject_id, category, service, quantity, created_at
        FROM audit_events ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		if err := rows.Scan(
			&event.ID,
			&event.Action,
			&event.ActorID,
			&event.SubjectID,
			&event.Category,
			&event.Service,
			&event.Quantity,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
