// Package store implements the key-based slot persistence layer: every entity
// collection lives whole in one named slot, serialized as JSON. Each write
// replaces the full collection (last write wins); an absent slot reads as
// empty, never as an error.
package store

import (
	"fmt"
	"sync"
	"time"
)

// Slot keys, one per collection plus the two session slots.
const (
	KeyStudents    = "sk_students"
	KeyClasses     = "sk_classes"
	KeyPapers      = "sk_papers"
	KeyPayments    = "sk_payments"
	KeyOverrides   = "sk_overrides"
	KeyNotices     = "sk_notices"
	KeyLiveClasses = "sk_live_classes"
	KeyCurrentUser = "sk_current_user"
	KeyIsAdmin     = "sk_is_admin"
)

var NowFunc = time.Now // mockable

// Store is a durable key-value blob store.
type Store interface {
	// Load unmarshals the slot into dst. ok is false when the slot is absent;
	// dst is left untouched in that case.
	Load(key string, dst interface{}) (ok bool, err error)
	// Save marshals v and replaces the slot.
	Save(key string, v interface{}) error
	// Delete removes the slot; removing an absent slot is not an error.
	Delete(key string) error
}

var (
	idMu   sync.Mutex
	lastID int64
)

// nextID synthesizes a time-derived id, strictly increasing within this
// process. Single-writer only: two processes can still collide.
func nextID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()
	ms := NowFunc().UnixNano() / int64(time.Millisecond)
	if ms <= lastID {
		ms = lastID + 1
	}
	lastID = ms
	return fmt.Sprintf("%s-%d", prefix, ms)
}

// loadSlice fills dst (a pointer to a slice) from the slot, seeding and
// persisting defaults on first read when seed is non-nil.
func loadSlice(s Store, key string, dst interface{}, seed func() interface{}) error {
	ok, err := s.Load(key, dst)
	if err != nil {
		return err
	}
	if !ok && seed != nil {
		v := seed()
		if err = s.Save(key, v); err != nil {
			return err
		}
		_, err = s.Load(key, dst)
		return err
	}
	return nil
}
