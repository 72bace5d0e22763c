package testutil

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
	"github.com/sciencewithkalana/portal/core/student"
	"github.com/sciencewithkalana/portal/storage/store"
)

// NewStore returns a MemoryStore with the seeded collections pre-set to
// empty so tests start from a clean slate.
func NewStore(t *testing.T) *store.MemoryStore {
	st := store.NewMemoryStore()
	for _, save := range []error{
		st.Save(store.KeyClasses, []catalog.Class{}),
		st.Save(store.KeyNotices, []notice.Notice{}),
		st.Save(store.KeyLiveClasses, []liveclass.LiveClass{}),
	} {
		if save != nil {
			t.Fatalf("NewStore() failed: %v", save)
		}
	}
	return st
}

// NewConfig returns test configuration with a known admin credential pair.
func NewConfig() *core.Config {
	conf := &core.Config{
		AppName:          "Science with Kalana",
		Env:              "TEST",
		Debug:            false,
		TestMode:         true,
		SecretKey:        "test-secret",
		AccessWindowDays: 40,
	}
	conf.Admin.Username = "admin"
	conf.Admin.Password = "testpass"
	conf.Server.JWTExpirationDelta = 7 * 24 * time.Hour
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	return conf
}

// NewValidator returns an initialized validator and translator pair.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate, translator
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, mobile, email, pwd string,
	grade int,
	isActive bool,
) student.Student {
	usr := student.Student{
		FullName:      name,
		MobileNumber:  mobile,
		Email:         email,
		Grade:         grade,
		Password:      pwd,
		PaymentStatus: student.PaymentStatusPending,
		IsActive:      isActive,
		RegisteredAt:  time.Now().UTC(),
	}
	usr, err := repo.CreateStudent(usr)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return usr
}

func CreateClass(
	t *testing.T,
	repo catalog.Repository,
	grade int,
	name string,
	price float64,
	isActive bool,
) catalog.Class {
	cls := catalog.Class{
		Grade:     grade,
		Name:      name,
		Price:     price,
		Type:      catalog.TypeMonthly,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}
	cls, err := repo.CreateClass(cls)
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreatePayment(
	t *testing.T,
	repo enrollment.Repository,
	studentID, classID, status string,
	amount float64,
	paidAt ...time.Time,
) enrollment.Payment {
	pmt := enrollment.Payment{
		StudentID: studentID,
		ClassID:   classID,
		Amount:    amount,
		Method:    enrollment.MethodBankTransfer,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if len(paidAt) > 0 {
		at := paidAt[0].UTC()
		pmt.PaidAt = &at
	}
	pmt, err := repo.CreatePayment(pmt)
	if err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}
	return pmt
}
