package store

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// SQLStore keeps slots in a postgres table (see database/migrations). Each
// slot is still one JSON document; the database adds durability, not
// relational semantics.
type SQLStore struct {
	mu sync.RWMutex
	db *sqlx.DB
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(key string, dst interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw []byte
	err := s.db.Get(&raw, `SELECT data FROM slots WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "reading slot %s", key)
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *SQLStore) Save(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO slots (key, data) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data`,
		key, raw,
	)
	return errors.Wrapf(err, "writing slot %s", key)
}

func (s *SQLStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM slots WHERE key = $1`, key)
	return errors.Wrapf(err, "removing slot %s", key)
}
