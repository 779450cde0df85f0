package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

func TestAuditRepositoryNilPoolIsNoop(t *testing.T) {
	repo := NewAuditRepository(nil)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.AuditEvent{
		ID:      "evt-1",
		Action:  domain.AuditAccountClaimed,
		ActorID: "u1",
	}))

	events, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, events)
}
