package repository

import (
	"path/filepath"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/persistence"
)

// EntitlementRepository persists the user entitlement table.
type EntitlementRepository interface {
	Load() (domain.EntitlementTable, error)
	Save(table domain.EntitlementTable) error
	// Update runs fn over the freshly loaded table under the store's lock
	// and saves whatever fn returns.
	Update(fn func(table domain.EntitlementTable) (domain.EntitlementTable, error)) error
}

type entitlementRepository struct {
	path  string
	locks *KeyedMutex
}

// NewEntitlementRepository instantiates the file-backed repository.
func NewEntitlementRepository(dataDir string) EntitlementRepository {
	return &entitlementRepository{
		path:  filepath.Join(dataDir, persistence.UserAccessFileName),
		locks: NewKeyedMutex(),
	}
}

const entitlementLockKey = "user_access"

func (r *entitlementRepository) Load() (domain.EntitlementTable, error) {
	table := domain.EntitlementTable{}
	if err := persistence.ReadJSONFile(r.path, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (r *entitlementRepository) Save(table domain.EntitlementTable) error {
	return persistence.WriteJSONFile(r.path, table)
}

func (r *entitlementRepository) Update(fn func(table domain.EntitlementTable) (domain.EntitlementTable, error)) error {
	r.locks.Lock(entitlementLockKey)
	defer r.locks.Unlock(entitlementLockKey)

	table, err := r.Load()
	if err != nil {
		return err
	}
	updated, err := fn(table)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	return r.Save(updated)
}
