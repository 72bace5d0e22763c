package student

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/sciencewithkalana/portal/core"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrMobileExists = errors.New("Mobile number already registered")
	ErrNICExists    = errors.New("NIC number already registered")
)

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		GetStudentByMobile(mobile string) (Student, error)
		GetStudentByNIC(nic string) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		FilterStudents(filter QueryFilter) ([]Student, error)
		UpdateStudent(s Student, isActive *bool) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	Service struct {
		repo       Repository
		verifier   Verifier
		mailSvc    core.EmailService
		conf       *core.Config
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(
	repo Repository,
	verifier Verifier,
	mailSvc core.EmailService,
	conf *core.Config,
	validate *validator.Validate,
	translator ut.Translator,
) *Service {
	return &Service{
		repo:       repo,
		verifier:   verifier,
		mailSvc:    mailSvc,
		conf:       conf,
		validate:   validate,
		translator: translator,
	}
}

func (svc *Service) Verifier() Verifier { return svc.verifier }

// Register validates and creates a new Student. All failures are reported in
// the result; the error return is reserved for storage faults.
func (svc *Service) Register(reg Registration) (RegisterResult, error) {
	reg.Clean()

	if err := svc.validate.Struct(&reg); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return RegisterResult{Message: vErrs[0].Translate(svc.translator)}, nil
		}
		return RegisterResult{}, err
	}

	if _, err := svc.repo.GetStudentByMobile(reg.MobileNumber); err == nil {
		return RegisterResult{Message: ErrMobileExists.Error()}, nil
	} else if err != ErrNotFound {
		return RegisterResult{}, err
	}
	if reg.NICNumber != "" {
		if _, err := svc.repo.GetStudentByNIC(reg.NICNumber); err == nil {
			return RegisterResult{Message: ErrNICExists.Error()}, nil
		} else if err != ErrNotFound {
			return RegisterResult{}, err
		}
	}

	pwd, err := svc.verifier.Hash(reg.Password)
	if err != nil {
		return RegisterResult{}, err
	}

	usr := Student{
		FullName:      reg.FullName,
		MobileNumber:  reg.MobileNumber,
		Email:         reg.Email,
		NICNumber:     reg.NICNumber,
		Gender:        reg.Gender,
		ParentName:    reg.ParentName,
		ParentPhone:   reg.ParentPhone,
		Grade:         reg.Grade,
		Password:      pwd,
		BankSlipURL:   reg.BankSlipURL,
		PaymentStatus: PaymentStatusPending,
		IsActive:      true,
		RegisteredAt:  time.Now().UTC(),
	}
	usr, err = svc.repo.CreateStudent(usr)
	if err != nil {
		return RegisterResult{}, err
	}

	svc.sendWelcomeEmail(usr)

	return RegisterResult{
		Success:   true,
		StudentID: usr.ID,
		Message:   "Registration successful! Your Student ID: " + usr.ID,
	}, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	filter.Clean()
	return svc.repo.FilterStudents(filter)
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	usr := Student{
		ID:          id,
		FullName:    core.CleanString(us.FullName),
		Email:       core.CleanString(us.Email, true /* lower */),
		Grade:       us.Grade,
		ParentName:  core.CleanString(us.ParentName),
		ParentPhone: core.StripSpaces(core.CleanString(us.ParentPhone)),
	}
	if us.Password != "" {
		pwd, err := svc.verifier.Hash(us.Password)
		if err != nil {
			return Student{}, err
		}
		usr.Password = pwd
	}
	return svc.repo.UpdateStudent(usr, us.IsActive)
}

// Activate force-enables a deactivated account.
func (svc *Service) Activate(id string) (Student, error) {
	active := true
	return svc.repo.UpdateStudent(Student{ID: id}, &active)
}

func (svc *Service) SetPaymentStatus(id, status string) (Student, error) {
	return svc.repo.UpdateStudent(Student{ID: id, PaymentStatus: status}, nil)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}

func (svc *Service) sendWelcomeEmail(usr Student) {
	if svc.mailSvc == nil || usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName, Address: usr.Email}},
		Subject: "Welcome!",
		TextContent: fmt.Sprintf(
			"Hi %s,\n\nWelcome to %s. Your Student ID is %s. Use it to log in.\n",
			usr.FullName, svc.conf.AppName, usr.ID,
		),
	})
}
