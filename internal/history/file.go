package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository holds the ledger in memory and rewrites one JSON file
// per append. A failed persist drops the appended record again so the
// file and memory stay in sync.
type FileRepository struct {
	path    string
	mu      sync.Mutex
	records []Record
}

func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if err := json.Unmarshal(data, &r.records); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}

	return r, nil
}

func (r *FileRepository) Append(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)

	if err := r.persist(); err != nil {
		r.records = r.records[:len(r.records)-1]
		return err
	}

	return nil
}

func (r *FileRepository) ListAll(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *FileRepository) persist() error {
	data, err := json.Marshal(r.records)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	dir := filepath.Dir(r.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}
