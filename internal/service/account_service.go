package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/events"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/observability"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/persistence"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/repository"
	apperrors "github.com/FFMGAMER/FFM-Gen-Bot/pkg/util/errorutil"
)

// Actor identifies the caller of an operation. IsAdmin carries the
// platform's role claim; the service trusts it as-is.
type Actor struct {
	ID      string
	IsAdmin bool
}

// ClaimInput describes a claim attempt. FreeEligible is the result of the
// platform-side eligibility predicate (status marker check) and is only
// consulted for the free category.
type ClaimInput struct {
	UserID       string
	Category     domain.Category
	Service      string
	FreeEligible bool
}

// AccountService coordinates entitlements, cooldowns and the credential
// pool for the claim and admin flows.
type AccountService struct {
	entitlements repository.EntitlementRepository
	cooldowns    repository.CooldownRepository
	inventory    repository.InventoryRepository
	dispatcher   events.Dispatcher
	cache        *persistence.Redis
	metrics      *observability.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// AccountDependencies bundles requirements for the account service.
type AccountDependencies struct {
	EntitlementRepo repository.EntitlementRepository
	CooldownRepo    repository.CooldownRepository
	InventoryRepo   repository.InventoryRepository
	Dispatcher      events.Dispatcher
	Cache           *persistence.Redis
	Metrics         *observability.Metrics
	Logger          *zap.Logger
	// Now overrides the clock; tests inject a simulated one.
	Now func() time.Time
}

// NewAccountService constructs the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		entitlements: deps.EntitlementRepo,
		cooldowns:    deps.CooldownRepo,
		inventory:    deps.InventoryRepo,
		dispatcher:   deps.Dispatcher,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		logger:       logger,
		now:          now,
	}
}

func (s *AccountService) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

// StockCounts returns the total pool size per category, served from the
// redis cache when warm.
func (s *AccountService) StockCounts(ctx context.Context) (map[domain.Category]int, error) {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, category := range domain.Categories {
		if cached, ok := s.cache.GetStockCount(ctx, category); ok {
			counts[category] = cached
			continue
		}
		count, err := s.inventory.Count(category, "")
		if err != nil {
			return nil, apperrors.NewStorageUnavailable(err)
		}
		s.cache.SetStockCount(ctx, category, count)
		counts[category] = count
	}
	return counts, nil
}

// ServiceStock returns the pool size for one (category, service) pair.
func (s *AccountService) ServiceStock(ctx context.Context, category domain.Category, service string) (int, error) {
	count, err := s.inventory.Count(category, service)
	if err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}
	return count, nil
}

// Claim runs the full gate sequence: free eligibility, access, cooldown,
// stock. Cooldown is recorded only after a successful draw, so a denial at
// any gate never burns the user's cooldown tick.
func (s *AccountService) Claim(ctx context.Context, input ClaimInput) (string, error) {
	if input.Service == "" {
		return "", apperrors.NewValidationError("service is required", nil)
	}
	if !input.Category.Valid() {
		return "", apperrors.NewValidationError("unknown category", nil)
	}

	outcome := func(name string) {
		s.metrics.RecordClaim(string(input.Category), name)
	}

	if input.Category == domain.CategoryFree {
		if !input.FreeEligible {
			outcome("access_denied")
			return "", apperrors.NewAccessDenied("free access requires the status marker")
		}
		if err := s.autoGrantFree(input.UserID); err != nil {
			outcome("error")
			return "", apperrors.NewStorageUnavailable(err)
		}
	}

	table, err := s.entitlements.Load()
	if err != nil {
		outcome("error")
		return "", apperrors.NewStorageUnavailable(err)
	}
	if !table.HasAccess(input.UserID, input.Category, s.nowMillis()) {
		outcome("access_denied")
		return "", apperrors.NewAccessDenied("no access to this category")
	}

	defaults, err := s.cooldowns.LoadDefaults()
	if err != nil {
		outcome("error")
		return "", apperrors.NewStorageUnavailable(err)
	}
	userCooldowns, err := s.cooldowns.LoadUser()
	if err != nil {
		outcome("error")
		return "", apperrors.NewStorageUnavailable(err)
	}
	if userCooldowns.OnCooldown(input.UserID, input.Category, defaults, s.nowMillis()) {
		remaining := userCooldowns.Remaining(input.UserID, input.Category, defaults, s.nowMillis())
		outcome("cooldown_active")
		return "", apperrors.NewCooldownActive(remaining)
	}

	credential, ok, err := s.inventory.Draw(input.Category, input.Service)
	if err != nil {
		outcome("error")
		return "", apperrors.NewStorageUnavailable(err)
	}
	if !ok {
		outcome("out_of_stock")
		return "", apperrors.NewOutOfStock("no accounts left for this service")
	}

	if err := s.cooldowns.UpdateUser(func(table domain.UserCooldownTable) error {
		table.RecordUse(input.UserID, input.Category, s.nowMillis())
		return nil
	}); err != nil {
		// The credential is already removed from the pool; hand it out
		// anyway and surface the cooldown bookkeeping failure in logs.
		s.logger.Error("record cooldown use failed", zap.Error(err))
	}

	s.cache.InvalidateStockCount(ctx, input.Category)
	s.publish(ctx, events.EventAccountClaimed, input.UserID, events.AccountClaimedPayload{
		Category: input.Category,
		Service:  input.Service,
	})
	outcome("delivered")
	s.logger.Info("account claimed",
		zap.String("user_id", input.UserID),
		zap.String("category", string(input.Category)),
		zap.String("service", input.Service),
	)
	return credential, nil
}

// autoGrantFree grants permanent free access only when no free record exists
// yet, skipping the save entirely otherwise.
func (s *AccountService) autoGrantFree(userID string) error {
	return s.entitlements.Update(func(table domain.EntitlementTable) (domain.EntitlementTable, error) {
		grants, ok := table[userID]
		if ok {
			if grants.Legacy != nil {
				for _, c := range grants.Legacy {
					if c == domain.CategoryFree {
						return nil, nil
					}
				}
			} else if _, exists := grants.Records[domain.CategoryFree]; exists {
				return nil, nil
			}
		}
		table.Grant(userID, domain.CategoryFree, domain.PermanentAccess())
		return table, nil
	})
}

// Restock stores an uploaded credential list as a new batch.
func (s *AccountService) Restock(ctx context.Context, actor Actor, category domain.Category, service string, lines []string) (int, error) {
	if !actor.IsAdmin {
		return 0, apperrors.NewForbidden("administrator role required")
	}
	if !category.Valid() {
		return 0, apperrors.NewValidationError("unknown category", nil)
	}
	if service == "" {
		return 0, apperrors.NewValidationError("service is required", nil)
	}

	stored, err := s.inventory.AddBatch(category, service, lines)
	if err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}
	if stored > 0 {
		s.cache.InvalidateStockCount(ctx, category)
		s.publish(ctx, events.EventStockRestocked, actor.ID, events.StockRestockedPayload{
			Category: category,
			Service:  service,
			Stored:   stored,
		})
	}
	s.logger.Info("stock added",
		zap.String("category", string(category)),
		zap.String("service", service),
		zap.Int("stored", stored),
	)
	return stored, nil
}

// Grant gives a user access to a category, permanent when quantity is zero,
// expiring otherwise. The entitlement table is normalized before the write.
func (s *AccountService) Grant(ctx context.Context, actor Actor, userID string, category domain.Category, quantity int64, unit TimeUnit) error {
	if !actor.IsAdmin {
		return apperrors.NewForbidden("administrator role required")
	}
	if !category.Valid() {
		return apperrors.NewValidationError("unknown category", nil)
	}

	if quantity < 0 {
		return apperrors.NewValidationError("duration must not be negative", nil)
	}

	var record domain.AccessRecord
	var expiry int64
	if quantity == 0 {
		record = domain.PermanentAccess()
	} else {
		if unit == "" {
			return apperrors.NewValidationError("unit is required when a duration is given", nil)
		}
		expiry = s.nowMillis() + ToMilliseconds(quantity, unit)
		record = domain.ExpiringAccess(expiry)
	}

	if err := s.entitlements.Update(func(table domain.EntitlementTable) (domain.EntitlementTable, error) {
		cleaned := table.Normalize(s.nowMillis())
		cleaned.Grant(userID, category, record)
		return cleaned, nil
	}); err != nil {
		return apperrors.NewStorageUnavailable(err)
	}

	s.publish(ctx, events.EventAccessGranted, actor.ID, events.AccessGrantedPayload{
		UserID:       userID,
		Category:     category,
		ExpiryMillis: expiry,
	})
	s.logger.Info("access granted",
		zap.String("user_id", userID),
		zap.String("category", string(category)),
		zap.Int64("expiry_millis", expiry),
	)
	return nil
}

// SetCooldown updates the default cooldown for a category and returns the
// stored duration in milliseconds.
func (s *AccountService) SetCooldown(ctx context.Context, actor Actor, category domain.Category, quantity int64, unit TimeUnit) (int64, error) {
	if !actor.IsAdmin {
		return 0, apperrors.NewForbidden("administrator role required")
	}
	if !category.Valid() {
		return 0, apperrors.NewValidationError("unknown category", nil)
	}
	if quantity < 0 {
		return 0, apperrors.NewValidationError("duration must not be negative", nil)
	}
	if unit == "" {
		return 0, apperrors.NewValidationError("unit is required", nil)
	}

	millis := ToMilliseconds(quantity, unit)
	defaults, err := s.cooldowns.LoadDefaults()
	if err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}
	defaults.SetDefault(category, millis)
	if err := s.cooldowns.SaveDefaults(defaults); err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}

	s.publish(ctx, events.EventCooldownUpdated, actor.ID, events.CooldownUpdatedPayload{
		Category: category,
		Millis:   millis,
	})
	return millis, nil
}

// ClearStock deletes every batch for the service, or the whole category when
// service is empty, and returns how many batches were deleted.
func (s *AccountService) ClearStock(ctx context.Context, actor Actor, category domain.Category, service string) (int, error) {
	if !actor.IsAdmin {
		return 0, apperrors.NewForbidden("administrator role required")
	}
	if !category.Valid() {
		return 0, apperrors.NewValidationError("unknown category", nil)
	}

	deleted, err := s.inventory.Clear(category, service)
	if err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}
	s.cache.InvalidateStockCount(ctx, category)
	s.publish(ctx, events.EventStockCleared, actor.ID, events.StockClearedPayload{
		Category: category,
		Service:  service,
		Deleted:  deleted,
	})
	s.logger.Info("stock cleared",
		zap.String("category", string(category)),
		zap.String("service", service),
		zap.Int("deleted", deleted),
	)
	return deleted, nil
}
