package store

import (
	"fmt"
	"strings"

	"github.com/sciencewithkalana/portal/core/student"
)

// StudentRepository persists students in the sk_students slot.
type StudentRepository struct {
	store Store
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(s Store) *StudentRepository {
	return &StudentRepository{store: s}
}

// studentRecord is the stored form of a Student. The credential only
// serializes here; student.Student keeps it out of API payloads.
type studentRecord struct {
	student.Student
	Password string `json:"password,omitempty"`
}

func newStudentRecord(usr student.Student) studentRecord {
	rec := studentRecord{Student: usr, Password: usr.Password}
	rec.Student.Password = ""
	return rec
}

func (rec studentRecord) toStudent() student.Student {
	usr := rec.Student
	usr.Password = rec.Password
	return usr
}

func (repo *StudentRepository) load() ([]student.Student, error) {
	records := []studentRecord{}
	if err := loadSlice(repo.store, KeyStudents, &records, nil); err != nil {
		return nil, err
	}
	students := make([]student.Student, len(records))
	for i, rec := range records {
		students[i] = rec.toStudent()
	}
	return students, nil
}

func (repo *StudentRepository) save(students []student.Student) error {
	records := make([]studentRecord, len(students))
	for i, usr := range students {
		records[i] = newStudentRecord(usr)
	}
	return repo.store.Save(KeyStudents, records)
}

func (repo *StudentRepository) CreateStudent(usr student.Student) (student.Student, error) {
	students, err := repo.load()
	if err != nil {
		return student.Student{}, err
	}
	usr.ID = fmt.Sprintf("SK-%d-%04d", NowFunc().Year(), len(students)+1)
	students = append(students, usr)
	return usr, repo.save(students)
}

func (repo *StudentRepository) QueryAllStudents() ([]student.Student, error) {
	return repo.load()
}

func (repo *StudentRepository) GetStudentByID(id string) (student.Student, error) {
	students, err := repo.load()
	if err != nil {
		return student.Student{}, err
	}
	for _, usr := range students {
		if usr.ID == id {
			return usr, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) GetStudentByMobile(mobile string) (student.Student, error) {
	students, err := repo.load()
	if err != nil {
		return student.Student{}, err
	}
	for _, usr := range students {
		if usr.MobileNumber == mobile {
			return usr, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) GetStudentByNIC(nic string) (student.Student, error) {
	students, err := repo.load()
	if err != nil {
		return student.Student{}, err
	}
	for _, usr := range students {
		if usr.NICNumber != "" && strings.EqualFold(usr.NICNumber, nic) {
			return usr, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	students, err := repo.load()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return students, nil
	}

	search := strings.ToLower(filter.Search)
	matches := make([]student.Student, 0, len(students))
	for _, usr := range students {
		if filter.Grade != 0 && usr.Grade != filter.Grade {
			continue
		}
		if filter.IsActive != nil && usr.IsActive != *filter.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(usr.FullName), search) &&
			!strings.Contains(strings.ToLower(usr.ID), search) &&
			!strings.Contains(usr.MobileNumber, search) {
			continue
		}
		matches = append(matches, usr)
	}
	return matches, nil
}

func (repo *StudentRepository) UpdateStudent(usr student.Student, isActive *bool) (student.Student, error) {
	students, err := repo.load()
	if err != nil {
		return student.Student{}, err
	}

	// only save set fields; unknown id is a no-op
	for i := range students {
		if students[i].ID != usr.ID {
			continue
		}
		if usr.FullName != "" {
			students[i].FullName = usr.FullName
		}
		if usr.Email != "" {
			students[i].Email = usr.Email
		}
		if usr.Grade != 0 {
			students[i].Grade = usr.Grade
		}
		if usr.ParentName != "" {
			students[i].ParentName = usr.ParentName
		}
		if usr.ParentPhone != "" {
			students[i].ParentPhone = usr.ParentPhone
		}
		if usr.Password != "" {
			students[i].Password = usr.Password
		}
		if usr.PaymentStatus != "" {
			students[i].PaymentStatus = usr.PaymentStatus
		}
		if isActive != nil {
			students[i].IsActive = *isActive
		}
		return students[i], repo.save(students)
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) DeleteStudentsByID(ids ...string) error {
	students, err := repo.load()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := students[:0]
	for _, usr := range students {
		if !drop[usr.ID] {
			kept = append(kept, usr)
		}
	}
	return repo.save(kept)
}
