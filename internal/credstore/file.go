package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository keeps all credentials in memory and mirrors every
// mutation to a single JSON file keyed by username. The whole structure
// is rewritten on each change, so one mutex serializes readers and
// writers. A failed persist rolls the in-memory change back; memory and
// disk never diverge.
type FileRepository struct {
	path  string
	mu    sync.Mutex
	creds map[string]Credential
}

func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{
		path:  path,
		creds: make(map[string]Credential),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if err := json.Unmarshal(data, &r.creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return r, nil
}

func (r *FileRepository) Create(ctx context.Context, cred Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.creds[cred.Username]; exists {
		return ErrUsernameExists
	}

	r.creds[cred.Username] = cred

	if err := r.persist(); err != nil {
		delete(r.creds, cred.Username)
		return err
	}

	return nil
}

func (r *FileRepository) FindByUsername(ctx context.Context, username string) (Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.creds[username]
	if !ok {
		return Credential{}, ErrNotFound
	}

	cred.Username = username
	return cred, nil
}

func (r *FileRepository) persist() error {
	data, err := json.Marshal(r.creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	return writeFileAtomic(r.path, data)
}

// writeFileAtomic writes via a temp file in the same directory and
// renames it over the target, so a crash mid-write cannot leave a
// truncated store behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
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

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}
