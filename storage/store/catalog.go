package store

import (
	"sort"

	"github.com/sciencewithkalana/portal/core/catalog"
)

// ClassRepository persists the catalog in the sk_classes slot. The first read
// of an empty slot seeds the built-in classes and writes them back.
type ClassRepository struct {
	store Store
}

var _ catalog.Repository = (*ClassRepository)(nil)

func NewClassRepository(s Store) *ClassRepository {
	return &ClassRepository{store: s}
}

func (repo *ClassRepository) load() ([]catalog.Class, error) {
	classes := []catalog.Class{}
	err := loadSlice(repo.store, KeyClasses, &classes, func() interface{} { return seedClasses() })
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *ClassRepository) CreateClass(cls catalog.Class) (catalog.Class, error) {
	classes, err := repo.load()
	if err != nil {
		return catalog.Class{}, err
	}
	cls.ID = nextID("cls")
	classes = append(classes, cls)
	return cls, repo.store.Save(KeyClasses, classes)
}

func (repo *ClassRepository) QueryAllClasses() ([]catalog.Class, error) {
	return repo.load()
}

func (repo *ClassRepository) GetClassByID(id string) (catalog.Class, error) {
	classes, err := repo.load()
	if err != nil {
		return catalog.Class{}, err
	}
	for _, cls := range classes {
		if cls.ID == id {
			return cls, nil
		}
	}
	return catalog.Class{}, catalog.ErrNotFound
}

func (repo *ClassRepository) UpdateClass(cls catalog.Class, isActive *bool) (catalog.Class, error) {
	classes, err := repo.load()
	if err != nil {
		return catalog.Class{}, err
	}
	for i := range classes {
		if classes[i].ID != cls.ID {
			continue
		}
		if cls.Name != "" {
			classes[i].Name = cls.Name
		}
		if cls.NameSinhala != "" {
			classes[i].NameSinhala = cls.NameSinhala
		}
		if cls.Description != "" {
			classes[i].Description = cls.Description
		}
		if cls.DescriptionSinhala != "" {
			classes[i].DescriptionSinhala = cls.DescriptionSinhala
		}
		if cls.Price != 0 {
			classes[i].Price = cls.Price
		}
		if isActive != nil {
			classes[i].IsActive = *isActive
		}
		return classes[i], repo.store.Save(KeyClasses, classes)
	}
	return catalog.Class{}, catalog.ErrNotFound
}

func (repo *ClassRepository) DeleteClassesByID(ids ...string) error {
	classes, err := repo.load()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := classes[:0]
	for _, cls := range classes {
		if !drop[cls.ID] {
			kept = append(kept, cls)
		}
	}
	return repo.store.Save(KeyClasses, kept)
}

func (repo *ClassRepository) AddLesson(classID string, lsn catalog.Lesson) (catalog.Lesson, error) {
	classes, err := repo.load()
	if err != nil {
		return catalog.Lesson{}, err
	}
	for i := range classes {
		if classes[i].ID != classID {
			continue
		}
		lsn.ID = nextID("les")
		lsn.ClassID = classID
		classes[i].Lessons = append(classes[i].Lessons, lsn)
		// ascending by Order on every insert; equal orders keep insertion order
		sort.SliceStable(classes[i].Lessons, func(a, b int) bool {
			return classes[i].Lessons[a].Order < classes[i].Lessons[b].Order
		})
		return lsn, repo.store.Save(KeyClasses, classes)
	}
	return catalog.Lesson{}, catalog.ErrNotFound
}

func (repo *ClassRepository) UpdateLesson(classID string, lsn catalog.Lesson, isActive, isFree *bool) (catalog.Lesson, error) {
	classes, err := repo.load()
	if err != nil {
		return catalog.Lesson{}, err
	}
	for i := range classes {
		if classes[i].ID != classID {
			continue
		}
		for j := range classes[i].Lessons {
			if classes[i].Lessons[j].ID != lsn.ID {
				continue
			}
			if lsn.Title != "" {
				classes[i].Lessons[j].Title = lsn.Title
			}
			if lsn.TitleSinhala != "" {
				classes[i].Lessons[j].TitleSinhala = lsn.TitleSinhala
			}
			if lsn.Description != "" {
				classes[i].Lessons[j].Description = lsn.Description
			}
			if lsn.YoutubeURL != "" {
				classes[i].Lessons[j].YoutubeURL = lsn.YoutubeURL
			}
			if lsn.Duration != "" {
				classes[i].Lessons[j].Duration = lsn.Duration
			}
			if lsn.Order != 0 {
				classes[i].Lessons[j].Order = lsn.Order
			}
			if isActive != nil {
				classes[i].Lessons[j].IsActive = *isActive
			}
			if isFree != nil {
				classes[i].Lessons[j].IsFree = *isFree
			}
			updated := classes[i].Lessons[j]
			sort.SliceStable(classes[i].Lessons, func(a, b int) bool {
				return classes[i].Lessons[a].Order < classes[i].Lessons[b].Order
			})
			return updated, repo.store.Save(KeyClasses, classes)
		}
		return catalog.Lesson{}, catalog.ErrLessonNotFound
	}
	return catalog.Lesson{}, catalog.ErrNotFound
}

func (repo *ClassRepository) DeleteLesson(classID, lessonID string) error {
	classes, err := repo.load()
	if err != nil {
		return err
	}
	for i := range classes {
		if classes[i].ID != classID {
			continue
		}
		kept := classes[i].Lessons[:0]
		for _, lsn := range classes[i].Lessons {
			if lsn.ID != lessonID {
				kept = append(kept, lsn)
			}
		}
		classes[i].Lessons = kept
		return repo.store.Save(KeyClasses, classes)
	}
	return nil
}

func (repo *ClassRepository) EnrollStudent(classID, studentID string) error {
	classes, err := repo.load()
	if err != nil {
		return err
	}
	for i := range classes {
		if classes[i].ID != classID {
			continue
		}
		for _, id := range classes[i].EnrolledStudents {
			if id == studentID {
				return nil // already a member
			}
		}
		classes[i].EnrolledStudents = append(classes[i].EnrolledStudents, studentID)
		return repo.store.Save(KeyClasses, classes)
	}
	return catalog.ErrNotFound
}
