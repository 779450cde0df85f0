package repository

import (
	"path/filepath"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/persistence"
)

// CooldownRepository persists category cooldown defaults and per-user
// last-use timestamps.
type CooldownRepository interface {
	LoadDefaults() (domain.CooldownTable, error)
	SaveDefaults(table domain.CooldownTable) error
	LoadUser() (domain.UserCooldownTable, error)
	SaveUser(table domain.UserCooldownTable) error
	// UpdateUser runs fn over the user table under the store's lock.
	UpdateUser(fn func(table domain.UserCooldownTable) error) error
}

type cooldownRepository struct {
	defaultsPath string
	userPath     string
	locks        *KeyedMutex
}

// NewCooldownRepository instantiates the file-backed repository.
func NewCooldownRepository(dataDir string) CooldownRepository {
	return &cooldownRepository{
		defaultsPath: filepath.Join(dataDir, persistence.CooldownsFileName),
		userPath:     filepath.Join(dataDir, persistence.UserCooldownsFileName),
		locks:        NewKeyedMutex(),
	}
}

const (
	cooldownDefaultsLockKey = "cooldowns"
	cooldownUserLockKey     = "user_cooldowns"
)

func (r *cooldownRepository) LoadDefaults() (domain.CooldownTable, error) {
	table := domain.NewCooldownTable()
	if err := persistence.ReadJSONFile(r.defaultsPath, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (r *cooldownRepository) SaveDefaults(table domain.CooldownTable) error {
	r.locks.Lock(cooldownDefaultsLockKey)
	defer r.locks.Unlock(cooldownDefaultsLockKey)
	return persistence.WriteJSONFile(r.defaultsPath, table)
}

func (r *cooldownRepository) LoadUser() (domain.UserCooldownTable, error) {
	table := domain.UserCooldownTable{}
	if err := persistence.ReadJSONFile(r.userPath, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (r *cooldownRepository) SaveUser(table domain.UserCooldownTable) error {
	return persistence.WriteJSONFile(r.userPath, table)
}

func (r *cooldownRepository) UpdateUser(fn func(table domain.UserCooldownTable) error) error {
	r.locks.Lock(cooldownUserLockKey)
	defer r.locks.Unlock(cooldownUserLockKey)

	table, err := r.LoadUser()
	if err != nil {
		return err
	}
	if err := fn(table); err != nil {
		return err
	}
	return r.SaveUser(table)
}
