package student

import (
	"time"

	"github.com/sciencewithkalana/portal/core"
)

// Payment approval states of a student account.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Student is a registered learner. IDs follow the SK-<year>-<seq> format.
type Student struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	MobileNumber  string    `json:"mobileNumber"`
	Email         string    `json:"email,omitempty"`
	NICNumber     string    `json:"nicNumber,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	ParentName    string    `json:"parentName,omitempty"`
	ParentPhone   string    `json:"parentPhone,omitempty"`
	Grade         int       `json:"grade"`
	Password      string    `json:"-"` // stored credential; scheme is the wired Verifier's concern
	BankSlipURL   string    `json:"bankSlipUrl,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	IsActive      bool      `json:"isActive"`
	RegisteredAt  time.Time `json:"registeredAt"` // UTC
}

// Registration contains information needed to register a new Student.
type Registration struct {
	FullName     string `json:"fullName" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required,lkmobile"`
	Email        string `json:"email" validate:"omitempty,email"`
	NICNumber    string `json:"nicNumber" validate:"omitempty,nic"`
	Gender       string `json:"gender"`
	ParentName   string `json:"parentName"`
	ParentPhone  string `json:"parentPhone"`
	Grade        int    `json:"grade" validate:"required,min=1"`
	Password     string `json:"password" validate:"required"`
	BankSlipURL  string `json:"bankSlipUrl"`
}

func (r *Registration) Clean() {
	r.FullName = core.CleanString(r.FullName)
	r.MobileNumber = core.StripSpaces(core.CleanString(r.MobileNumber))
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.NICNumber = core.CleanString(r.NICNumber)
	r.ParentPhone = core.StripSpaces(core.CleanString(r.ParentPhone))
}

// RegisterResult is Register's outcome. Failures are reported here,
// never raised.
type RegisterResult struct {
	Success   bool   `json:"success"`
	StudentID string `json:"studentId,omitempty"`
	Message   string `json:"message"`
}

// UpdateStudent defines what information may be provided to modify an
// existing Student.
type UpdateStudent struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Grade       int    `json:"grade" validate:"omitempty,min=1"`
	ParentName  string `json:"parentName"`
	ParentPhone string `json:"parentPhone"`
	IsActive    *bool  `json:"isActive"`
	Password    string `json:"password"`
}

type QueryFilter struct {
	Search   string `query:"search"` // case-insensitive match on name, mobile or id
	Grade    int    `query:"grade"`
	IsActive *bool  `query:"is_active"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Grade == 0 && qf.IsActive == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
