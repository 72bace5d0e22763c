package assessment

import (
	"time"

	"github.com/sciencewithkalana/portal/core"
)

// Paper is a graded assessment scoped to one Class.
type Paper struct {
	ID           string        `json:"id"`
	ClassID      string        `json:"classId"`
	Name         string        `json:"name"`
	MaxMarks     int           `json:"maxMarks"`
	StudentMarks []StudentMark `json:"studentMarks"`
	CreatedAt    time.Time     `json:"createdAt"` // UTC
}

// StudentMark holds at most one mark per student per paper.
type StudentMark struct {
	StudentID string `json:"studentId"`
	Marks     int    `json:"marks"`
}

// NewPaper contains information needed to create a Paper.
type NewPaper struct {
	ClassID  string `json:"classId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	MaxMarks int    `json:"maxMarks" validate:"required,min=1"`
}

func (np *NewPaper) Clean() {
	np.Name = core.CleanString(np.Name)
}
