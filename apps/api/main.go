package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/sciencewithkalana/portal/apps/api/echo"
	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/assessment"
	"github.com/sciencewithkalana/portal/core/auth"
	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
	"github.com/sciencewithkalana/portal/core/student"
	"github.com/sciencewithkalana/portal/database"
	emailsvc "github.com/sciencewithkalana/portal/services/email"
	logsvc "github.com/sciencewithkalana/portal/services/logger"
	"github.com/sciencewithkalana/portal/storage/store"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage
	st, closeStore, err := setUpStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer closeStore()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	studentRepo := store.NewStudentRepository(st)
	classRepo := store.NewClassRepository(st)
	paymentRepo := store.NewPaymentRepository(st)
	overrideRepo := store.NewOverrideRepository(st)

	verifier := student.PlainVerifier{}
	studentSvc := student.NewService(studentRepo, verifier, mailSvc, conf, validate, translator)
	authSvc := auth.NewService(store.NewSessionRepository(st), studentRepo, verifier, conf)
	catalogSvc := catalog.NewService(classRepo)
	enrollmentSvc := enrollment.NewService(paymentRepo, overrideRepo, classRepo, studentRepo, mailSvc, conf)
	assessmentSvc := assessment.NewService(store.NewPaperRepository(st))
	noticeSvc := notice.NewService(store.NewNoticeRepository(st))
	liveClassSvc := liveclass.NewService(store.NewLiveClassRepository(st))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("%s initializing : env %q", conf.AppName, conf.Env))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Conf:          conf,
		Logger:        logger,
		StudentSvc:    studentSvc,
		AuthSvc:       authSvc,
		CatalogSvc:    catalogSvc,
		EnrollmentSvc: enrollmentSvc,
		AssessmentSvc: assessmentSvc,
		NoticeSvc:     noticeSvc,
		LiveClassSvc:  liveClassSvc,
		Validate:      validate,
		Translator:    translator,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

// setUpStore selects the slot store backend from configuration.
func setUpStore(conf *core.Config) (store.Store, func(), error) {
	switch conf.Storage.Backend {
	case "postgres":
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store.NewSQLStore(db), func() { _ = db.Close() }, nil
	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	default:
		fst, err := store.NewFileStore(conf.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fst, func() {}, nil
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
