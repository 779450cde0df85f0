package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/api/dto"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/service"
	apperrors "github.com/FFMGAMER/FFM-Gen-Bot/pkg/util/errorutil"
)

// AccountsHandler exposes stock lookups and the claim flow.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Stock handles GET /stock.
func (h *AccountsHandler) Stock(c *fiber.Ctx) error {
	counts, err := h.accounts.StockCounts(c.UserContext())
	if err != nil {
		return err
	}

	data := fiber.Map{}
	for category, count := range counts {
		data[string(category)] = count
	}
	return c.JSON(fiber.Map{"data": data})
}

// CategoryStock handles GET /stock/:category with an optional service query.
func (h *AccountsHandler) CategoryStock(c *fiber.Ctx) error {
	category, err := domain.ParseCategory(c.Params("category"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	count, err := h.accounts.ServiceStock(c.UserContext(), category, c.Query("service"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"category": category,
		"service":  c.Query("service"),
		"count":    count,
	}})
}

// Claim handles POST /claim. The caller identity comes from the bearer
// token. The free-tier eligibility predicate lives on the chat platform;
// over HTTP only admin-scoped tokens assert it.
func (h *AccountsHandler) Claim(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	credential, err := h.accounts.Claim(c.UserContext(), service.ClaimInput{
		UserID:       principal.SubjectID,
		Category:     category,
		Service:      req.Service,
		FreeEligible: principal.IsAdmin(),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.ClaimResponse{
		Category:   string(category),
		Service:    req.Service,
		Credential: credential,
	}})
}
