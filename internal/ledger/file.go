package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

type usageRecord struct {
	LastDraw time.Time `json:"last_draw"`
}

// FileLedger persists last-draw timestamps as a JSON object keyed by user
// id. A missing or corrupt file reads as empty — eligibility fails open
// rather than taking the bot down over a broken lock file.
type FileLedger struct {
	path string
	mu   sync.Mutex
}

func NewFileLedger(path string) (*FileLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure usage dir: %w", err)
		}
	}
	return &FileLedger{path: path}, nil
}

func (l *FileLedger) CanDraw(userID int64, now time.Time) (bool, time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load()
	rec, ok := records[key(userID)]
	if !ok {
		return true, time.Time{}, nil
	}
	eligibleNow, retryAt := eligible(rec.LastDraw, now)
	return eligibleNow, retryAt, nil
}

func (l *FileLedger) RecordDraw(userID int64, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load()
	records[key(userID)] = usageRecord{LastDraw: now.UTC()}
	return l.save(records)
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (l *FileLedger) load() map[string]usageRecord {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return map[string]usageRecord{}
	}
	records := map[string]usageRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return map[string]usageRecord{}
	}
	return records
}

func (l *FileLedger) save(records map[string]usageRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode usage: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}
