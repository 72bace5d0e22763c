package store

import (
	"github.com/sciencewithkalana/portal/core/notice"
)

// NoticeRepository persists notices in the sk_notices slot. The first read of
// an empty slot seeds the built-in notices.
type NoticeRepository struct {
	store Store
}

var _ notice.Repository = (*NoticeRepository)(nil)

func NewNoticeRepository(s Store) *NoticeRepository {
	return &NoticeRepository{store: s}
}

func (repo *NoticeRepository) load() ([]notice.Notice, error) {
	notices := []notice.Notice{}
	err := loadSlice(repo.store, KeyNotices, &notices, func() interface{} { return seedNotices() })
	if err != nil {
		return nil, err
	}
	return notices, nil
}

func (repo *NoticeRepository) CreateNotice(ntc notice.Notice) (notice.Notice, error) {
	notices, err := repo.load()
	if err != nil {
		return notice.Notice{}, err
	}
	ntc.ID = nextID("not")
	notices = append(notices, ntc)
	return ntc, repo.store.Save(KeyNotices, notices)
}

func (repo *NoticeRepository) QueryAllNotices() ([]notice.Notice, error) {
	return repo.load()
}

func (repo *NoticeRepository) DeleteNoticesByID(ids ...string) error {
	notices, err := repo.load()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := notices[:0]
	for _, ntc := range notices {
		if !drop[ntc.ID] {
			kept = append(kept, ntc)
		}
	}
	return repo.store.Save(KeyNotices, kept)
}
