package notice

import (
	"errors"
	"time"
)

var (
	NowFunc = time.Now // mockable

	ErrNotFound = errors.New("notice not found")
)

type (
	Repository interface {
		CreateNotice(n Notice) (Notice, error)
		QueryAllNotices() ([]Notice, error)
		DeleteNoticesByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nn NewNotice) (Notice, error) {
	nn.Clean()
	return svc.repo.CreateNotice(Notice{
		Title:     nn.Title,
		Message:   nn.Message,
		Type:      nn.Type,
		CreatedAt: NowFunc().UTC(),
		ExpiresAt: nn.ExpiresAt,
	})
}

// QueryCurrent lists notices that have not expired. Filtering happens here on
// every read; expired notices are kept, never swept.
func (svc *Service) QueryCurrent() ([]Notice, error) {
	notices, err := svc.repo.QueryAllNotices()
	if err != nil {
		return nil, err
	}
	now := NowFunc()
	current := make([]Notice, 0, len(notices))
	for _, n := range notices {
		if n.ExpiresAt == nil || n.ExpiresAt.After(now) {
			current = append(current, n)
		}
	}
	return current, nil
}

// QueryAll includes expired notices; the admin console shows everything.
func (svc *Service) QueryAll() ([]Notice, error) {
	return svc.repo.QueryAllNotices()
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteNoticesByID(ids...)
}
