package store

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists each slot as <key>.json under a data directory. The
// mutex only serializes this process's accesses; there is no cross-process
// coordination, matching the single-writer model.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(key string, dst interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := ioutil.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "reading slot %s", key)
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *FileStore) Save(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// write-then-rename so a crashed write cannot truncate the slot
	tmp := s.path(key) + ".tmp"
	if err = ioutil.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrapf(err, "writing slot %s", key)
	}
	return errors.Wrapf(os.Rename(tmp, s.path(key)), "replacing slot %s", key)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing slot %s", key)
	}
	return nil
}
