package handlers

import (
	"bufio"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/api/dto"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/repository"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/service"
	apperrors "github.com/FFMGAMER/FFM-Gen-Bot/pkg/util/errorutil"
)

// AdminHandler exposes the admin-only stock and access operations.
type AdminHandler struct {
	accounts     *service.AccountService
	audit        repository.AuditRepository
	maxFileBytes int64
}

// NewAdminHandler constructs handler.
func NewAdminHandler(accounts *service.AccountService, audit repository.AuditRepository, maxFileBytes int64) *AdminHandler {
	return &AdminHandler{accounts: accounts, audit: audit, maxFileBytes: maxFileBytes}
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	principal, _ := auth.PrincipalFromContext(c)
	if principal == nil {
		return service.Actor{}
	}
	return service.Actor{ID: principal.SubjectID, IsAdmin: principal.IsAdmin()}
}

// Restock handles POST /admin/restock/:category/:service. Lines arrive as a
// .txt multipart upload or as a JSON body.
func (h *AdminHandler) Restock(c *fiber.Ctx) error {
	category, err := domain.ParseCategory(c.Params("category"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	svc := c.Params("service")

	lines, err := h.restockLines(c)
	if err != nil {
		return err
	}

	stored, err := h.accounts.Restock(c.UserContext(), actorFromContext(c), category, svc, lines)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.RestockResponse{
		Category: string(category),
		Service:  svc,
		Stored:   stored,
	}})
}

func (h *AdminHandler) restockLines(c *fiber.Ctx) ([]string, error) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".txt") {
			return nil, apperrors.NewValidationError("only .txt files are accepted", nil)
		}
		if h.maxFileBytes > 0 && fileHeader.Size > h.maxFileBytes {
			return nil, apperrors.NewValidationError("file too large", map[string]any{
				"max_bytes": h.maxFileBytes,
			})
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		defer file.Close()

		var lines []string
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		return lines, nil
	}

	var req dto.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.Lines) == 0 {
		return nil, apperrors.NewValidationError("a file upload or lines array is required", nil)
	}
	return req.Lines, nil
}

// Grant handles POST /admin/access.
func (h *AdminHandler) Grant(c *fiber.Ctx) error {
	var req dto.GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id is required", nil)
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	if err := h.accounts.Grant(c.UserContext(), actorFromContext(c), req.UserID, category, req.Time, service.TimeUnit(req.Unit)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user_id":  req.UserID,
		"category": category,
	}})
}

// SetCooldown handles PUT /admin/cooldowns/:category.
func (h *AdminHandler) SetCooldown(c *fiber.Ctx) error {
	category, err := domain.ParseCategory(c.Params("category"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	var req dto.CooldownRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	millis, err := h.accounts.SetCooldown(c.UserContext(), actorFromContext(c), category, req.Time, service.TimeUnit(req.Unit))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"category": category,
		"millis":   millis,
	}})
}

// ClearStock handles DELETE /admin/stock/:category with an optional service
// query.
func (h *AdminHandler) ClearStock(c *fiber.Ctx) error {
	category, err := domain.ParseCategory(c.Params("category"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	deleted, err := h.accounts.ClearStock(c.UserContext(), actorFromContext(c), category, c.Query("service"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.ClearStockResponse{
		Category: string(category),
		Service:  c.Query("service"),
		Deleted:  deleted,
	}})
}

// ListAudit handles GET /admin/audit with an optional limit query. Returns an
// empty list when the audit trail is disabled.
func (h *AdminHandler) ListAudit(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	events, err := h.audit.ListRecent(c.UserContext(), limit)
	if err != nil {
		return apperrors.NewStorageUnavailable(err)
	}

	rows := make([]dto.AuditEventResponse, 0, len(events))
	for _, event := range events {
		rows = append(rows, dto.AuditEventResponse{
			ID:        event.ID,
			Action:    string(event.Action),
			ActorID:   event.ActorID,
			SubjectID: event.SubjectID,
			Category:  string(event.Category),
			Service:   event.Service,
			Quantity:  event.Quantity,
			CreatedAt: event.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}
