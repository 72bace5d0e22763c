package catalog

import (
	"time"

	"github.com/sciencewithkalana/portal/core"
)

// Class types.
const (
	TypeMonthly = "monthly"
	TypeSpecial = "special"
)

// Class is a catalog entry with embedded lessons.
// EnrolledStudents is a cache rebuilt from completed payments; access
// decisions never read it directly.
type Class struct {
	ID                 string    `json:"id"`
	Grade              int       `json:"grade"`
	Name               string    `json:"name"`
	NameSinhala        string    `json:"nameSinhala"`
	Description        string    `json:"description"`
	DescriptionSinhala string    `json:"descriptionSinhala"`
	Price              float64   `json:"price"`
	Type               string    `json:"type"`
	IsActive           bool      `json:"isActive"`
	Lessons            []Lesson  `json:"lessons"`
	EnrolledStudents   []string  `json:"enrolledStudents"`
	CreatedAt          time.Time `json:"createdAt"` // UTC
}

// Lesson belongs to exactly one Class, ordered within it by Order.
// A free lesson bypasses the payment and expiry checks entirely.
type Lesson struct {
	ID            string `json:"id"`
	ClassID       string `json:"classId"`
	Title         string `json:"title"`
	TitleSinhala  string `json:"titleSinhala"`
	Description   string `json:"description"`
	YoutubeURL    string `json:"youtubeUrl"`
	Duration      string `json:"duration"`
	Order         int    `json:"order"`
	IsActive      bool   `json:"isActive"`
	IsFree        bool   `json:"isFree"`
}

// NewClass contains information needed to create a catalog entry.
type NewClass struct {
	Grade              int     `json:"grade" validate:"required,min=1"`
	Name               string  `json:"name" validate:"required"`
	NameSinhala        string  `json:"nameSinhala"`
	Description        string  `json:"description"`
	DescriptionSinhala string  `json:"descriptionSinhala"`
	Price              float64 `json:"price" validate:"min=0"`
	Type               string  `json:"type" validate:"required,oneof=monthly special"`
}

func (nc *NewClass) Clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.NameSinhala = core.CleanString(nc.NameSinhala)
}

// UpdateClass defines what may be modified on an existing Class.
type UpdateClass struct {
	Name               string   `json:"name"`
	NameSinhala        string   `json:"nameSinhala"`
	Description        string   `json:"description"`
	DescriptionSinhala string   `json:"descriptionSinhala"`
	Price              *float64 `json:"price" validate:"omitempty,min=0"`
	IsActive           *bool    `json:"isActive"`
}

// NewLesson contains information needed to add a lesson to a class.
type NewLesson struct {
	ClassID      string `json:"classId" validate:"required"`
	Title        string `json:"title" validate:"required"`
	TitleSinhala string `json:"titleSinhala"`
	Description  string `json:"description"`
	YoutubeURL   string `json:"youtubeUrl" validate:"required,url"`
	Duration     string `json:"duration"`
	Order        int    `json:"order" validate:"min=0"`
	IsFree       bool   `json:"isFree"`
}

func (nl *NewLesson) Clean() {
	nl.Title = core.CleanString(nl.Title)
	nl.TitleSinhala = core.CleanString(nl.TitleSinhala)
	nl.YoutubeURL = core.CleanString(nl.YoutubeURL)
}

// QueryFilter narrows catalog listings.
// Search does a case-insensitive substring match on both name fields.
type QueryFilter struct {
	Grade      int    `query:"grade"`
	Type       string `query:"type"`
	Search     string `query:"search"`
	ActiveOnly bool   `query:"active_only"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Grade == 0 && qf.Type == "" && qf.Search == "" && !qf.ActiveOnly
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Type = core.CleanString(qf.Type, true /* lower */)
}
