package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/repository"
)

type stubAuditRepository struct {
	events    []domain.AuditEvent
	lastLimit int
}

func (s *stubAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	return nil
}

func (s *stubAuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	s.lastLimit = limit
	return s.events, nil
}

func TestListAuditDisabledTrailReturnsEmptyList(t *testing.T) {
	app := fiber.New()
	h := NewAdminHandler(nil, repository.NewAuditRepository(nil), 0)
	app.Get("/admin/audit", h.ListAudit)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/audit", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"data":[]}`, string(body))
}

func TestListAuditReturnsRows(t *testing.T) {
	stub := &stubAuditRepository{events: []domain.AuditEvent{{
		ID:        "evt-1",
		Action:    domain.AuditAccountClaimed,
		ActorID:   "u1",
		Category:  domain.CategoryFree,
		Service:   "netflix",
		Quantity:  1,
		CreatedAt: time.UnixMilli(1_700_000_000_000).UTC(),
	}}}

	app := fiber.New()
	h := NewAdminHandler(nil, stub, 0)
	app.Get("/admin/audit", h.ListAudit)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/audit?limit=5", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 5, stub.lastLimit)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `"id":"evt-1"`)
	require.Contains(t, string(body), `"action":"ACCOUNT_CLAIMED"`)
	require.Contains(t, string(body), `"service":"netflix"`)
}
