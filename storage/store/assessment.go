package store

import (
	"github.com/sciencewithkalana/portal/core/assessment"
)

// PaperRepository persists papers and their marks in the sk_papers slot.
type PaperRepository struct {
	store Store
}

var _ assessment.Repository = (*PaperRepository)(nil)

func NewPaperRepository(s Store) *PaperRepository {
	return &PaperRepository{store: s}
}

func (repo *PaperRepository) load() ([]assessment.Paper, error) {
	papers := []assessment.Paper{}
	err := loadSlice(repo.store, KeyPapers, &papers, nil)
	if err != nil {
		return nil, err
	}
	return papers, nil
}

func (repo *PaperRepository) CreatePaper(ppr assessment.Paper) (assessment.Paper, error) {
	papers, err := repo.load()
	if err != nil {
		return assessment.Paper{}, err
	}
	ppr.ID = nextID("paper")
	papers = append(papers, ppr)
	return ppr, repo.store.Save(KeyPapers, papers)
}

func (repo *PaperRepository) QueryAllPapers() ([]assessment.Paper, error) {
	return repo.load()
}

func (repo *PaperRepository) GetPaperByID(id string) (assessment.Paper, error) {
	papers, err := repo.load()
	if err != nil {
		return assessment.Paper{}, err
	}
	for _, ppr := range papers {
		if ppr.ID == id {
			return ppr, nil
		}
	}
	return assessment.Paper{}, assessment.ErrNotFound
}

func (repo *PaperRepository) QueryPapersByClass(classID string) ([]assessment.Paper, error) {
	papers, err := repo.load()
	if err != nil {
		return nil, err
	}
	matched := []assessment.Paper{}
	for _, ppr := range papers {
		if ppr.ClassID == classID {
			matched = append(matched, ppr)
		}
	}
	return matched, nil
}

func (repo *PaperRepository) UpdatePaper(ppr assessment.Paper) (assessment.Paper, error) {
	papers, err := repo.load()
	if err != nil {
		return assessment.Paper{}, err
	}
	for i := range papers {
		if papers[i].ID == ppr.ID {
			papers[i] = ppr
			return ppr, repo.store.Save(KeyPapers, papers)
		}
	}
	return assessment.Paper{}, assessment.ErrNotFound
}

func (repo *PaperRepository) DeletePapersByID(ids ...string) error {
	papers, err := repo.load()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := papers[:0]
	for _, ppr := range papers {
		if !drop[ppr.ID] {
			kept = append(kept, ppr)
		}
	}
	return repo.store.Save(KeyPapers, kept)
}
