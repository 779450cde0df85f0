package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

// File names under the data directory.
const (
	AccountsDirName       = "accounts"
	UserAccessFileName    = "user_access.json"
	CooldownsFileName     = "cooldowns.json"
	UserCooldownsFileName = "user_cooldowns.json"
)

// InitDataDir creates the data directory layout and seeds the JSON state
// files when absent: one accounts subdirectory per category, empty tables
// otherwise.
func InitDataDir(dataDir string) error {
	for _, category := range domain.Categories {
		dir := filepath.Join(dataDir, AccountsDirName, string(category))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create accounts dir: %w", err)
		}
	}

	if err := seedJSON(filepath.Join(dataDir, UserAccessFileName), domain.EntitlementTable{}); err != nil {
		return err
	}
	if err := seedJSON(filepath.Join(dataDir, CooldownsFileName), domain.NewCooldownTable()); err != nil {
		return err
	}
	return seedJSON(filepath.Join(dataDir, UserCooldownsFileName), domain.UserCooldownTable{})
}

func seedJSON(path string, value any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return WriteJSONFile(path, value)
}

// ReadJSONFile decodes a JSON state file into out. A missing file leaves out
// untouched so callers fall back to their zero table.
func ReadJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// WriteJSONFile persists value as JSON, replacing prior content. The write
// goes to a temp file first and is moved into place so a crash mid-write
// cannot truncate existing state.
func WriteJSONFile(path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data via a sibling temp file and rename.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
