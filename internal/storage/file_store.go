package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FileStore keeps one <key>.json file per logical key under the root dir.
// Writes go to a temp file first and get renamed over the target, so a
// snapshot on disk is either the old one or the new one, never a torn write.
type FileStore struct {
	root  string
	mutex sync.Mutex
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (fs *FileStore) keyPath(key string) string {
	return filepath.Join(fs.root, key+".json")
}

func (fs *FileStore) Load(_ context.Context, key string, dest interface{}) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	content, err := os.ReadFile(fs.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("read snapshot [%s]: %w", key, err)
	}

	if err := json.Unmarshal(content, dest); err != nil {
		// corrupt snapshots are treated the same as absent ones
		log.Warnf("snapshot [%s] unreadable, falling back to defaults: %s", key, err)
		return ErrNoSnapshot
	}

	return nil
}

func (fs *FileStore) Save(_ context.Context, key string, value interface{}) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	content, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot [%s]: %w", key, err)
	}

	tmpFile, err := os.CreateTemp(fs.root, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot [%s]: %w", key, err)
	}

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("write temp snapshot [%s]: %w", key, err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("close temp snapshot [%s]: %w", key, err)
	}

	if err := os.Rename(tmpFile.Name(), fs.keyPath(key)); err != nil {
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("swap snapshot [%s]: %w", key, err)
	}

	return nil
}

func (fs *FileStore) Delete(_ context.Context, key string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := os.Remove(fs.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot [%s]: %w", key, err)
	}
	return nil
}
