package enrollment

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/student"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("payment not found")
)

type (
	Repository interface {
		CreatePayment(p Payment) (Payment, error)
		QueryAllPayments() ([]Payment, error)
		GetPaymentByID(id string) (Payment, error)
		QueryPaymentsByStudent(studentID string) ([]Payment, error)
		QueryPendingPayments() ([]Payment, error)
		// UpdatePayment replaces the stored record matching p.ID.
		UpdatePayment(p Payment) (Payment, error)
	}

	OverrideRepository interface {
		CreateOverride(o Override) (Override, error)
		HasOverride(studentID, classID string) (bool, error)
		QueryAllOverrides() ([]Override, error)
	}

	Service struct {
		payments  Repository
		overrides OverrideRepository
		classes   catalog.Repository
		students  student.Repository
		mailSvc   core.EmailService
		conf      *core.Config
	}
)

func NewService(
	payments Repository,
	overrides OverrideRepository,
	classes catalog.Repository,
	students student.Repository,
	mailSvc core.EmailService,
	conf *core.Config,
) *Service {
	return &Service{
		payments:  payments,
		overrides: overrides,
		classes:   classes,
		students:  students,
		mailSvc:   mailSvc,
		conf:      conf,
	}
}

// Submit records a payment for a class. PayHere payments complete immediately
// (the gateway reports success client-side; it is not verified here) and
// enroll the student; bank transfers stay pending until an admin approves.
func (svc *Service) Submit(np NewPayment) (Payment, error) {
	cls, err := svc.classes.GetClassByID(np.ClassID)
	if err != nil {
		return Payment{}, err
	}
	if _, err = svc.students.GetStudentByID(np.StudentID); err != nil {
		return Payment{}, err
	}

	now := NowFunc().UTC()
	pmt := Payment{
		StudentID:   np.StudentID,
		ClassID:     np.ClassID,
		Amount:      cls.Price,
		Method:      np.Method,
		Status:      StatusPending,
		BankSlipURL: np.BankSlipURL,
		CreatedAt:   now,
	}
	if np.Method == MethodPayHere {
		pmt.Status = StatusCompleted
		pmt.TransactionID = uuid.New().String()
		pmt.PaidAt = &now
	}

	pmt, err = svc.payments.CreatePayment(pmt)
	if err != nil {
		return Payment{}, err
	}
	if pmt.Status == StatusCompleted {
		if err = svc.classes.EnrollStudent(pmt.ClassID, pmt.StudentID); err != nil {
			return Payment{}, err
		}
	}
	return pmt, nil
}

// Approve transitions a payment to completed, stamps PaidAt and enrolls the
// student. Approving an already-completed payment changes nothing; the enroll
// side effect is idempotent either way.
func (svc *Service) Approve(paymentID string) (Payment, error) {
	pmt, err := svc.payments.GetPaymentByID(paymentID)
	if err != nil {
		return Payment{}, err
	}
	if pmt.Status != StatusCompleted {
		now := NowFunc().UTC()
		pmt.Status = StatusCompleted
		pmt.PaidAt = &now
		if pmt, err = svc.payments.UpdatePayment(pmt); err != nil {
			return Payment{}, err
		}
		svc.sendApprovedEmail(pmt)
	}
	if err = svc.classes.EnrollStudent(pmt.ClassID, pmt.StudentID); err != nil {
		return Payment{}, err
	}
	return pmt, nil
}

// Reject transitions a payment to failed. It never touches the membership
// cache and never sets PaidAt.
func (svc *Service) Reject(paymentID string) (Payment, error) {
	pmt, err := svc.payments.GetPaymentByID(paymentID)
	if err != nil {
		return Payment{}, err
	}
	pmt.Status = StatusFailed
	return svc.payments.UpdatePayment(pmt)
}

// HasAccess reports whether the student currently has paid access to the
// class: a completed payment within the access window, or a manual override.
// Completed payments and overrides are the sole authority; the class's
// EnrolledStudents cache is never consulted.
func (svc *Service) HasAccess(studentID, classID string) (bool, error) {
	if ok, err := svc.overrides.HasOverride(studentID, classID); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}

	payments, err := svc.payments.QueryPaymentsByStudent(studentID)
	if err != nil {
		return false, err
	}
	for _, pmt := range payments {
		if pmt.ClassID == classID && pmt.Status == StatusCompleted && svc.withinWindow(pmt) {
			return true, nil
		}
	}
	return false, nil
}

// withinWindow checks whole days elapsed since payment against the window:
// exactly 40 days ago still grants access, 41 does not.
func (svc *Service) withinWindow(pmt Payment) bool {
	elapsed := NowFunc().UTC().Sub(pmt.accessRef())
	if elapsed < 0 {
		return true
	}
	days := int(math.Ceil(elapsed.Hours() / 24))
	return days <= svc.conf.AccessWindowDays
}

// AccessibleClasses lists the classes the student can currently view paid
// content for. Expiry is evaluated at read time; nothing is deleted when a
// payment ages out.
func (svc *Service) AccessibleClasses(studentID string) ([]catalog.Class, error) {
	payments, err := svc.payments.QueryPaymentsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	live := make(map[string]bool)
	for _, pmt := range payments {
		if pmt.Status == StatusCompleted && svc.withinWindow(pmt) {
			live[pmt.ClassID] = true
		}
	}

	classes, err := svc.classes.QueryAllClasses()
	if err != nil {
		return nil, err
	}
	accessible := make([]catalog.Class, 0, len(live))
	for _, cls := range classes {
		if live[cls.ID] {
			accessible = append(accessible, cls)
			continue
		}
		ok, err := svc.overrides.HasOverride(studentID, cls.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			accessible = append(accessible, cls)
		}
	}
	return accessible, nil
}

// VisibleLessons returns the class's lessons the student may play: all active
// lessons with access, free active lessons without. An empty studentID is an
// anonymous visitor.
func (svc *Service) VisibleLessons(studentID, classID string) ([]catalog.Lesson, error) {
	cls, err := svc.classes.GetClassByID(classID)
	if err != nil {
		return nil, err
	}

	hasAccess := false
	if studentID != "" {
		if hasAccess, err = svc.HasAccess(studentID, classID); err != nil {
			return nil, err
		}
	}

	visible := make([]catalog.Lesson, 0, len(cls.Lessons))
	for _, lsn := range cls.Lessons {
		if !lsn.IsActive {
			continue
		}
		if hasAccess || lsn.IsFree {
			visible = append(visible, lsn)
		}
	}
	return visible, nil
}

// ActivateManually records an override for the student/class pair and
// re-activates the student account. No Payment is fabricated.
func (svc *Service) ActivateManually(studentID, classID string) error {
	if _, err := svc.students.GetStudentByID(studentID); err != nil {
		return err
	}
	if _, err := svc.classes.GetClassByID(classID); err != nil {
		return err
	}

	if ok, err := svc.overrides.HasOverride(studentID, classID); err != nil {
		return err
	} else if !ok {
		if _, err = svc.overrides.CreateOverride(Override{
			StudentID:   studentID,
			ClassID:     classID,
			ActivatedAt: NowFunc().UTC(),
		}); err != nil {
			return err
		}
	}

	active := true
	_, err := svc.students.UpdateStudent(student.Student{ID: studentID}, &active)
	return err
}

// SyncEnrollments rebuilds every class's EnrolledStudents cache from the
// completed payments. The cache can drift when slots are edited out of band;
// this is the one true derivation.
func (svc *Service) SyncEnrollments() error {
	payments, err := svc.payments.QueryAllPayments()
	if err != nil {
		return err
	}
	for _, pmt := range payments {
		if pmt.Status != StatusCompleted {
			continue
		}
		if err = svc.classes.EnrollStudent(pmt.ClassID, pmt.StudentID); err != nil && err != catalog.ErrNotFound {
			return err
		}
	}
	return nil
}

func (svc *Service) QueryAll() ([]Payment, error) {
	return svc.payments.QueryAllPayments()
}

func (svc *Service) QueryByStudent(studentID string) ([]Payment, error) {
	return svc.payments.QueryPaymentsByStudent(studentID)
}

func (svc *Service) QueryPending() ([]Payment, error) {
	return svc.payments.QueryPendingPayments()
}

// ComputeStats recomputes the admin console aggregates from the live
// collections.
func (svc *Service) ComputeStats() (Stats, error) {
	var stats Stats

	students, err := svc.students.QueryAllStudents()
	if err != nil {
		return Stats{}, err
	}
	stats.TotalStudents = len(students)

	classes, err := svc.classes.QueryAllClasses()
	if err != nil {
		return Stats{}, err
	}
	for _, cls := range classes {
		if cls.IsActive {
			stats.ActiveClasses++
		}
	}

	payments, err := svc.payments.QueryAllPayments()
	if err != nil {
		return Stats{}, err
	}
	for _, pmt := range payments {
		switch pmt.Status {
		case StatusCompleted:
			stats.TotalRevenue += pmt.Amount
		case StatusPending:
			stats.PendingPayments++
		}
	}
	return stats, nil
}

func (svc *Service) sendApprovedEmail(pmt Payment) {
	if svc.mailSvc == nil {
		return
	}
	usr, err := svc.students.GetStudentByID(pmt.StudentID)
	if err != nil || usr.Email == "" {
		return
	}
	cls, err := svc.classes.GetClassByID(pmt.ClassID)
	if err != nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName, Address: usr.Email}},
		Subject: "Payment approved",
		TextContent: fmt.Sprintf(
			"Hi %s,\n\nYour payment of Rs. %.2f for %q has been approved. The class is now active on your account.\n",
			usr.FullName, pmt.Amount, cls.Name,
		),
	})
}
