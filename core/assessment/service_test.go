package assessment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sciencewithkalana/portal/core/assessment"
	"github.com/sciencewithkalana/portal/storage/store"
	testutil "github.com/sciencewithkalana/portal/tests"
)

func setup(t *testing.T) *assessment.Service {
	st := testutil.NewStore(t)
	return assessment.NewService(store.NewPaperRepository(st))
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	ppr, err := svc.Create(assessment.NewPaper{ClassID: "cls-1", Name: "Term 1 Paper", MaxMarks: 100})
	assert.NoError(t, err)
	assert.NotEmpty(t, ppr.ID)
	assert.NotNil(t, ppr.StudentMarks)
	assert.Empty(t, ppr.StudentMarks)
}

func TestService_RecordMark(t *testing.T) {
	svc := setup(t)
	ppr, err := svc.Create(assessment.NewPaper{ClassID: "cls-1", Name: "Term 1 Paper", MaxMarks: 100})
	assert.NoError(t, err)

	// insert
	updated, err := svc.RecordMark(ppr.ID, "SK-2026-0001", 72)
	assert.NoError(t, err)
	assert.Equal(t, []assessment.StudentMark{{StudentID: "SK-2026-0001", Marks: 72}}, updated.StudentMarks)

	// second student appends
	updated, err = svc.RecordMark(ppr.ID, "SK-2026-0002", 64)
	assert.NoError(t, err)
	assert.Len(t, updated.StudentMarks, 2)

	// re-recording overwrites, never duplicates
	updated, err = svc.RecordMark(ppr.ID, "SK-2026-0001", 85)
	assert.NoError(t, err)
	assert.Len(t, updated.StudentMarks, 2)
	assert.Equal(t, 85, updated.StudentMarks[0].Marks)

	// unknown paper
	_, err = svc.RecordMark("paper-nope", "SK-2026-0001", 50)
	assert.Equal(t, assessment.ErrNotFound, err)
}

func TestService_QueryByClass(t *testing.T) {
	svc := setup(t)

	p1, err := svc.Create(assessment.NewPaper{ClassID: "cls-1", Name: "Term 1", MaxMarks: 100})
	assert.NoError(t, err)
	_, err = svc.Create(assessment.NewPaper{ClassID: "cls-2", Name: "Term 1", MaxMarks: 50})
	assert.NoError(t, err)

	papers, err := svc.QueryByClass("cls-1")
	assert.NoError(t, err)
	assert.Len(t, papers, 1)
	assert.Equal(t, p1.ID, papers[0].ID)

	papers, err = svc.QueryByClass("cls-nope")
	assert.NoError(t, err)
	assert.Empty(t, papers)
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)

	p1, err := svc.Create(assessment.NewPaper{ClassID: "cls-1", Name: "Term 1", MaxMarks: 100})
	assert.NoError(t, err)
	p2, err := svc.Create(assessment.NewPaper{ClassID: "cls-1", Name: "Term 2", MaxMarks: 100})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(p1.ID, "paper-nope"))

	papers, err := svc.QueryAll()
	assert.NoError(t, err)
	assert.Len(t, papers, 1)
	assert.Equal(t, p2.ID, papers[0].ID)

	_, err = svc.GetByID(p1.ID)
	assert.Equal(t, assessment.ErrNotFound, err)
}
