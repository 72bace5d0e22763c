package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	// errors
	ErrNotFound       = errors.New("class not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type (
	Repository interface {
		CreateClass(c Class) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id string) (Class, error)
		// UpdateClass merges set fields into the stored record.
		UpdateClass(c Class, isActive *bool) (Class, error)
		DeleteClassesByID(ids ...string) error

		// AddLesson appends and re-sorts the class's lessons by Order.
		AddLesson(classID string, l Lesson) (Lesson, error)
		UpdateLesson(classID string, l Lesson, isActive, isFree *bool) (Lesson, error)
		DeleteLesson(classID, lessonID string) error

		// EnrollStudent adds studentID to the class's membership cache.
		// It never duplicates an existing entry.
		EnrollStudent(classID, studentID string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewClass) (Class, error) {
	nc.Clean()
	cls := Class{
		Grade:              nc.Grade,
		Name:               nc.Name,
		NameSinhala:        nc.NameSinhala,
		Description:        nc.Description,
		DescriptionSinhala: nc.DescriptionSinhala,
		Price:              nc.Price,
		Type:               nc.Type,
		IsActive:           true,
		Lessons:            []Lesson{},
		EnrolledStudents:   []string{},
		CreatedAt:          time.Now().UTC(),
	}
	return svc.repo.CreateClass(cls)
}

func (svc *Service) QueryAll() ([]Class, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) GetByID(id string) (Class, error) {
	return svc.repo.GetClassByID(id)
}

// Filter applies AND operation on the available QueryFilter fields over the
// in-memory class list. Expected volumes are tens of classes; no index needed.
func (svc *Service) Filter(filter QueryFilter) ([]Class, error) {
	filter.Clean()
	classes, err := svc.repo.QueryAllClasses()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return classes, nil
	}

	search := strings.ToLower(filter.Search)
	matches := make([]Class, 0, len(classes))
	for _, cls := range classes {
		if filter.ActiveOnly && !cls.IsActive {
			continue
		}
		if filter.Grade != 0 && cls.Grade != filter.Grade {
			continue
		}
		if filter.Type != "" && cls.Type != filter.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(cls.Name), search) &&
			!strings.Contains(strings.ToLower(cls.NameSinhala), search) {
			continue
		}
		matches = append(matches, cls)
	}
	return matches, nil
}

// ByGrade lists active classes for a grade.
func (svc *Service) ByGrade(grade int) ([]Class, error) {
	return svc.Filter(QueryFilter{Grade: grade, ActiveOnly: true})
}

func (svc *Service) Update(id string, uc UpdateClass) (Class, error) {
	cls := Class{
		ID:                 id,
		Name:               uc.Name,
		NameSinhala:        uc.NameSinhala,
		Description:        uc.Description,
		DescriptionSinhala: uc.DescriptionSinhala,
	}
	if uc.Price != nil {
		cls.Price = *uc.Price
	}
	return svc.repo.UpdateClass(cls, uc.IsActive)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteClassesByID(ids...)
}

func (svc *Service) AddLesson(nl NewLesson) (Lesson, error) {
	nl.Clean()
	lsn := Lesson{
		ClassID:      nl.ClassID,
		Title:        nl.Title,
		TitleSinhala: nl.TitleSinhala,
		Description:  nl.Description,
		YoutubeURL:   nl.YoutubeURL,
		Duration:     nl.Duration,
		Order:        nl.Order,
		IsActive:     true,
		IsFree:       nl.IsFree,
	}
	return svc.repo.AddLesson(nl.ClassID, lsn)
}

func (svc *Service) UpdateLesson(classID string, l Lesson, isActive, isFree *bool) (Lesson, error) {
	return svc.repo.UpdateLesson(classID, l, isActive, isFree)
}

func (svc *Service) DeleteLesson(classID, lessonID string) error {
	return svc.repo.DeleteLesson(classID, lessonID)
}
