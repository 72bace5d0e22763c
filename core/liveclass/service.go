package liveclass

import (
	"errors"
	"sort"
	"time"
)

var (
	NowFunc = time.Now // mockable

	ErrNotFound = errors.New("live class not found")
)

type (
	Repository interface {
		CreateLiveClass(lc LiveClass) (LiveClass, error)
		QueryAllLiveClasses() ([]LiveClass, error)
		DeleteLiveClassesByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nl NewLiveClass) (LiveClass, error) {
	nl.Clean()
	return svc.repo.CreateLiveClass(LiveClass{
		ClassID:     nl.ClassID,
		Title:       nl.Title,
		Date:        nl.Date,
		Time:        nl.Time,
		Duration:    nl.Duration,
		MeetingLink: nl.MeetingLink,
		IsActive:    true,
	})
}

// QueryActive lists active sessions in start order.
func (svc *Service) QueryActive() ([]LiveClass, error) {
	all, err := svc.repo.QueryAllLiveClasses()
	if err != nil {
		return nil, err
	}
	active := make([]LiveClass, 0, len(all))
	for _, lc := range all {
		if lc.IsActive {
			active = append(active, lc)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartsAt().Before(active[j].StartsAt())
	})
	return active, nil
}

// Upcoming lists active sessions that have not started yet.
func (svc *Service) Upcoming() ([]LiveClass, error) {
	active, err := svc.QueryActive()
	if err != nil {
		return nil, err
	}
	now := NowFunc()
	upcoming := make([]LiveClass, 0, len(active))
	for _, lc := range active {
		if lc.StartsAt().After(now) {
			upcoming = append(upcoming, lc)
		}
	}
	return upcoming, nil
}

func (svc *Service) QueryAll() ([]LiveClass, error) {
	return svc.repo.QueryAllLiveClasses()
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteLiveClassesByID(ids...)
}
