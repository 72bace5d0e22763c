package assessment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("paper not found")

type (
	Repository interface {
		CreatePaper(p Paper) (Paper, error)
		QueryAllPapers() ([]Paper, error)
		GetPaperByID(id string) (Paper, error)
		QueryPapersByClass(classID string) ([]Paper, error)
		UpdatePaper(p Paper) (Paper, error)
		DeletePapersByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(np NewPaper) (Paper, error) {
	np.Clean()
	return svc.repo.CreatePaper(Paper{
		ClassID:      np.ClassID,
		Name:         np.Name,
		MaxMarks:     np.MaxMarks,
		StudentMarks: []StudentMark{},
		CreatedAt:    time.Now().UTC(),
	})
}

func (svc *Service) QueryAll() ([]Paper, error) {
	return svc.repo.QueryAllPapers()
}

func (svc *Service) GetByID(id string) (Paper, error) {
	return svc.repo.GetPaperByID(id)
}

func (svc *Service) QueryByClass(classID string) ([]Paper, error) {
	return svc.repo.QueryPapersByClass(classID)
}

// RecordMark upserts a student's mark on a paper: an existing entry is
// overwritten, otherwise one is appended.
func (svc *Service) RecordMark(paperID, studentID string, marks int) (Paper, error) {
	ppr, err := svc.repo.GetPaperByID(paperID)
	if err != nil {
		return Paper{}, err
	}

	found := false
	for i := range ppr.StudentMarks {
		if ppr.StudentMarks[i].StudentID == studentID {
			ppr.StudentMarks[i].Marks = marks
			found = true
			break
		}
	}
	if !found {
		ppr.StudentMarks = append(ppr.StudentMarks, StudentMark{StudentID: studentID, Marks: marks})
	}
	return svc.repo.UpdatePaper(ppr)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeletePapersByID(ids...)
}
