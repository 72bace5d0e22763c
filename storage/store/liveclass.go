package store

import (
	"github.com/sciencewithkalana/portal/core/liveclass"
)

// LiveClassRepository persists scheduled sessions in the sk_live_classes slot.
// The first read of an empty slot seeds the built-in schedule.
type LiveClassRepository struct {
	store Store
}

var _ liveclass.Repository = (*LiveClassRepository)(nil)

func NewLiveClassRepository(s Store) *LiveClassRepository {
	return &LiveClassRepository{store: s}
}

func (repo *LiveClassRepository) load() ([]liveclass.LiveClass, error) {
	sessions := []liveclass.LiveClass{}
	err := loadSlice(repo.store, KeyLiveClasses, &sessions, func() interface{} { return seedLiveClasses() })
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (repo *LiveClassRepository) CreateLiveClass(lc liveclass.LiveClass) (liveclass.LiveClass, error) {
	sessions, err := repo.load()
	if err != nil {
		return liveclass.LiveClass{}, err
	}
	lc.ID = nextID("live")
	sessions = append(sessions, lc)
	return lc, repo.store.Save(KeyLiveClasses, sessions)
}

func (repo *LiveClassRepository) QueryAllLiveClasses() ([]liveclass.LiveClass, error) {
	return repo.load()
}

func (repo *LiveClassRepository) DeleteLiveClassesByID(ids ...string) error {
	sessions, err := repo.load()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := sessions[:0]
	for _, lc := range sessions {
		if !drop[lc.ID] {
			kept = append(kept, lc)
		}
	}
	return repo.store.Save(KeyLiveClasses, kept)
}
