package repository

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/persistence"
)

const batchExt = ".txt"

// InventoryRepository manages the consumable credential pool stored as
// line-delimited batch files under accounts/<category>/<service>/.
type InventoryRepository interface {
	// Count sums non-empty lines across all batches for the category,
	// restricted to one service when given. Missing paths count as zero.
	Count(category domain.Category, service string) (int, error)
	// Draw removes and returns one credential chosen uniformly at random,
	// first across non-empty batches, then across lines within the batch.
	// ok is false when the pool is empty.
	Draw(category domain.Category, service string) (credential string, ok bool, err error)
	// AddBatch stores the non-empty trimmed lines as a new uniquely-named
	// batch and returns how many lines were kept. No batch is created when
	// every line is blank.
	AddBatch(category domain.Category, service string, lines []string) (int, error)
	// Clear deletes all batches for the service, or for every service in
	// the category when service is empty. Returns batches deleted.
	Clear(category domain.Category, service string) (int, error)
}

type inventoryRepository struct {
	root  string
	locks *KeyedMutex

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewInventoryRepository instantiates the file-backed pool. The random
// source is injected so tests can seed it.
func NewInventoryRepository(dataDir string, rng *rand.Rand) InventoryRepository {
	return &inventoryRepository{
		root:  filepath.Join(dataDir, persistence.AccountsDirName),
		locks: NewKeyedMutex(),
		rng:   rng,
	}
}

func (r *inventoryRepository) servicePath(category domain.Category, service string) string {
	return filepath.Join(r.root, string(category), service)
}

func (r *inventoryRepository) lockKey(category domain.Category, service string) string {
	return string(category) + "/" + service
}

func (r *inventoryRepository) intn(n int) int {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Intn(n)
}

// splitLines returns the non-empty trimmed credential lines of a batch body,
// tolerating CRLF and lone CR line endings.
func splitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func listBatches(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var batches []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), batchExt) {
			continue
		}
		batches = append(batches, filepath.Join(dir, entry.Name()))
	}
	return batches, nil
}

func countDir(dir string) (int, error) {
	batches, err := listBatches(dir)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, batch := range batches {
		content, err := os.ReadFile(batch)
		if err != nil {
			return 0, err
		}
		total += len(splitLines(string(content)))
	}
	return total, nil
}

func (r *inventoryRepository) Count(category domain.Category, service string) (int, error) {
	if service != "" {
		return countDir(r.servicePath(category, service))
	}

	categoryDir := filepath.Join(r.root, string(category))
	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	total := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count, err := countDir(filepath.Join(categoryDir, entry.Name()))
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func (r *inventoryRepository) Draw(category domain.Category, service string) (string, bool, error) {
	key := r.lockKey(category, service)
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	dir := r.servicePath(category, service)
	batches, err := listBatches(dir)
	if err != nil {
		return "", false, err
	}

	type loadedBatch struct {
		path  string
		lines []string
	}
	var candidates []loadedBatch
	for _, batch := range batches {
		content, err := os.ReadFile(batch)
		if err != nil {
			return "", false, err
		}
		lines := splitLines(string(content))
		if len(lines) == 0 {
			// Exhausted batch left behind; heal by deleting it.
			_ = os.Remove(batch)
			continue
		}
		candidates = append(candidates, loadedBatch{path: batch, lines: lines})
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	chosen := candidates[r.intn(len(candidates))]
	idx := r.intn(len(chosen.lines))
	credential := chosen.lines[idx]

	remaining := append(chosen.lines[:idx:idx], chosen.lines[idx+1:]...)
	if len(remaining) == 0 {
		if err := os.Remove(chosen.path); err != nil {
			return "", false, err
		}
	} else {
		if err := persistence.WriteFileAtomic(chosen.path, []byte(strings.Join(remaining, "\n"))); err != nil {
			return "", false, err
		}
	}

	return credential, true, nil
}

func (r *inventoryRepository) AddBatch(category domain.Category, service string, lines []string) (int, error) {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return 0, nil
	}

	key := r.lockKey(category, service)
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	dir := r.servicePath(category, service)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	name := fmt.Sprintf("accounts_%s%s", uuid.NewString(), batchExt)
	if err := persistence.WriteFileAtomic(filepath.Join(dir, name), []byte(strings.Join(kept, "\n"))); err != nil {
		return 0, err
	}
	return len(kept), nil
}

func (r *inventoryRepository) Clear(category domain.Category, service string) (int, error) {
	if service != "" {
		return r.clearService(category, service)
	}

	categoryDir := filepath.Join(r.root, string(category))
	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	deleted := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count, err := r.clearService(category, entry.Name())
		if err != nil {
			return deleted, err
		}
		deleted += count
	}
	return deleted, nil
}

func (r *inventoryRepository) clearService(category domain.Category, service string) (int, error) {
	key := r.lockKey(category, service)
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	batches, err := listBatches(r.servicePath(category, service))
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, batch := range batches {
		if err := os.Remove(batch); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
