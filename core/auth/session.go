package auth

import (
	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/student"
)

// FailureMessage is the single message for every login failure; it never
// reveals which check failed.
const FailureMessage = "Invalid credentials"

type (
	// Session is the single active identity: a student session or the admin
	// flag, never both.
	Session struct {
		Student *student.Student `json:"student,omitempty"`
		IsAdmin bool             `json:"isAdmin"`
	}

	Repository interface {
		GetSession() (Session, error)
		SetStudent(s student.Student) error
		SetAdmin() error
		ClearSession() error
	}

	Service struct {
		sessions Repository
		students student.Repository
		verifier student.Verifier
		conf     *core.Config
	}
)

func NewService(sessions Repository, students student.Repository, verifier student.Verifier, conf *core.Config) *Service {
	return &Service{
		sessions: sessions,
		students: students,
		verifier: verifier,
		conf:     conf,
	}
}

// Login authenticates a student and persists the session. It reports only
// success or failure; callers cannot tell which check failed.
func (svc *Service) Login(studentID, password string) (student.Student, bool) {
	usr, err := svc.students.GetStudentByID(core.CleanString(studentID))
	if err != nil {
		return student.Student{}, false
	}
	if err = svc.verifier.Verify(usr.Password, password); err != nil {
		return student.Student{}, false
	}
	if !usr.IsActive {
		return student.Student{}, false
	}
	if err = svc.sessions.SetStudent(usr); err != nil {
		return student.Student{}, false
	}
	return usr, true
}

// AdminLogin checks the configured console credential pair. Success replaces
// any student session with the admin flag.
func (svc *Service) AdminLogin(username, password string) bool {
	if svc.conf.Admin.Password == "" {
		return false
	}
	if username != svc.conf.Admin.Username || password != svc.conf.Admin.Password {
		return false
	}
	return svc.sessions.SetAdmin() == nil
}

// Logout clears both the student session and the admin flag unconditionally.
func (svc *Service) Logout() {
	_ = svc.sessions.ClearSession()
}

// Current returns the active student session (refreshed from storage) and the
// admin flag. An absent session yields (nil, false).
func (svc *Service) Current() (*student.Student, bool) {
	sess, err := svc.sessions.GetSession()
	if err != nil {
		return nil, false
	}
	if sess.IsAdmin {
		return nil, true
	}
	if sess.Student == nil {
		return nil, false
	}
	// re-read: the stored session may be stale against the student record
	usr, err := svc.students.GetStudentByID(sess.Student.ID)
	if err != nil {
		return nil, false
	}
	return &usr, false
}
